package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/middleware"
	"github.com/mohi-devhub/genie/internal/models"
)

type VoteHandler struct {
	db *gorm.DB
}

func NewVoteHandler(db *gorm.DB) *VoteHandler {
	return &VoteHandler{db: db}
}

func (h *VoteHandler) calculateScore(promptID int) int {
	var upvotes, downvotes int64
	h.db.Model(&models.Vote{}).Where("prompt_id = ? AND type = ?", promptID, models.VoteUp).Count(&upvotes)
	h.db.Model(&models.Vote{}).Where("prompt_id = ? AND type = ?", promptID, models.VoteDown).Count(&downvotes)
	return int(upvotes - downvotes)
}

// CastVote applies one vote transition for the authenticated user:
// no existing vote creates one, a repeat of the same type removes it,
// a differing type flips it. Responds with the freshly recomputed score
// and the user's resulting vote (null after a toggle-off).
func (h *VoteHandler) CastVote(c *gin.Context) {
	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be UP or DOWN", "field": "type"})
		return
	}

	promptID := c.Param("id")
	var prompt models.Prompt
	if err := h.db.First(&prompt, "id = ?", promptID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
		return
	}

	// Users may not vote on their own prompts
	if prompt.AuthorID == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot vote on your own prompts"})
		return
	}

	var userVote *string

	var existingVote models.Vote
	err := h.db.Where("user_id = ? AND prompt_id = ?", userID, prompt.ID).First(&existingVote).Error

	switch {
	case err == nil && existingVote.Type == input.Type:
		// Same type clicked - remove the vote (toggle off)
		if err := h.db.Delete(&existingVote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
			return
		}
		userVote = nil

	case err == nil:
		// Different type clicked - flip the vote
		existingVote.Type = input.Type
		if err := h.db.Save(&existingVote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vote"})
			return
		}
		userVote = &input.Type

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{
			UserID:   userID,
			PromptID: prompt.ID,
			Type:     input.Type,
		}
		if err := h.db.Create(&vote).Error; err != nil {
			// A concurrent request created the row first; the unique index
			// on (user_id, prompt_id) caught it. Retry as an update.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := h.db.Model(&models.Vote{}).
					Where("user_id = ? AND prompt_id = ?", userID, prompt.ID).
					Update("type", input.Type).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
					return
				}
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
				return
			}
		}
		userVote = &input.Type

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"vote_score": h.calculateScore(prompt.ID),
		"user_vote":  userVote,
	})
}
