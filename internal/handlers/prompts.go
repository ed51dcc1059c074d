package handlers

import (
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/middleware"
	"github.com/mohi-devhub/genie/internal/models"
)

const (
	SortNew = "NEW"
	SortTop = "TOP"

	titleMaxLen      = 200
	promptTextMinLen = 10
	promptTextMaxLen = 5000
)

type PromptHandler struct {
	db *gorm.DB
}

func NewPromptHandler(db *gorm.DB) *PromptHandler {
	return &PromptHandler{db: db}
}

// voteScore reduces a prompt's vote rows to up-count minus down-count.
func voteScore(votes []models.Vote) int {
	score := 0
	for _, v := range votes {
		if v.Type == models.VoteUp {
			score++
		} else {
			score--
		}
	}
	return score
}

// viewerVote surfaces the viewer's own vote type, nil when unauthenticated
// or the viewer has not voted. At most one vote exists per (user, prompt).
func viewerVote(votes []models.Vote, viewerID int, authenticated bool) *string {
	if !authenticated {
		return nil
	}
	for _, v := range votes {
		if v.UserID == viewerID {
			t := v.Type
			return &t
		}
	}
	return nil
}

// promptResponse builds the API shape for one prompt. The raw vote rows
// never leave this function; only the derived score and the viewer's own
// vote are exposed.
func promptResponse(prompt models.Prompt, viewerID int, authenticated bool) gin.H {
	return gin.H{
		"id":          prompt.ID,
		"title":       prompt.Title,
		"prompt_text": prompt.PromptText,
		"author": gin.H{
			"id":       prompt.Author.ID,
			"username": prompt.Author.Username,
			"avatar":   prompt.Author.Avatar,
		},
		"category":          gin.H{"id": prompt.Category.ID, "name": prompt.Category.Name},
		"model":             gin.H{"id": prompt.Model.ID, "name": prompt.Model.Name},
		"vote_score":        voteScore(prompt.Votes),
		"current_user_vote": viewerVote(prompt.Votes, viewerID, authenticated),
		"created_at":        prompt.CreatedAt,
	}
}

func (h *PromptHandler) promptQuery() *gorm.DB {
	return h.db.
		Preload("Author").
		Preload("Category").
		Preload("Model").
		Preload("Votes")
}

// GetPrompts returns the prompt feed. Filters are a conjunction; NEW sorts
// by creation time descending, TOP sorts by score descending and keeps only
// prompts with a strictly positive score.
func (h *PromptHandler) GetPrompts(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", SortNew)
	if sortBy != SortNew && sortBy != SortTop {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_by must be NEW or TOP"})
		return
	}

	query := h.promptQuery()
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if modelID := c.Query("model_id"); modelID != "" {
		query = query.Where("model_id = ?", modelID)
	}

	var prompts []models.Prompt
	if err := query.Order("created_at desc, id desc").Find(&prompts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prompts"})
		return
	}

	viewerID, authenticated := middleware.CurrentUserID(c)

	if sortBy == SortTop {
		top := prompts[:0]
		for _, p := range prompts {
			if voteScore(p.Votes) > 0 {
				top = append(top, p)
			}
		}
		prompts = top
		sort.SliceStable(prompts, func(i, j int) bool {
			return voteScore(prompts[i].Votes) > voteScore(prompts[j].Votes)
		})
	}

	responses := make([]gin.H, 0, len(prompts))
	for _, p := range prompts {
		responses = append(responses, promptResponse(p, viewerID, authenticated))
	}

	c.JSON(http.StatusOK, responses)
}

// GetPrompt returns a single prompt by ID
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	promptID := c.Param("id")

	var prompt models.Prompt
	if err := h.promptQuery().First(&prompt, "id = ?", promptID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
		return
	}

	viewerID, authenticated := middleware.CurrentUserID(c)
	c.JSON(http.StatusOK, promptResponse(prompt, viewerID, authenticated))
}

// CreatePrompt creates a new prompt (PROTECTED - requires authentication)
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	var input models.CreatePromptRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	title := strings.TrimSpace(input.Title)
	promptText := strings.TrimSpace(input.PromptText)

	switch {
	case title == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required", "field": "title"})
		return
	case utf8.RuneCountInString(title) > titleMaxLen:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be 200 characters or less", "field": "title"})
		return
	case utf8.RuneCountInString(promptText) < promptTextMinLen:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt must be at least 10 characters", "field": "prompt_text"})
		return
	case utf8.RuneCountInString(promptText) > promptTextMaxLen:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt must be 5000 characters or less", "field": "prompt_text"})
		return
	}

	// Verify category and model reference existing rows
	var category models.Category
	if err := h.db.First(&category, input.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "field": "category_id"})
		return
	}
	var model models.AIModel
	if err := h.db.First(&model, input.ModelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found", "field": "model_id"})
		return
	}

	prompt := models.Prompt{
		Title:      title,
		PromptText: promptText,
		AuthorID:   userID,
		CategoryID: category.ID,
		ModelID:    model.ID,
	}

	if err := h.db.Create(&prompt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prompt"})
		return
	}

	// Reload with relations
	h.promptQuery().First(&prompt, prompt.ID)

	c.JSON(http.StatusCreated, promptResponse(prompt, userID, true))
}
