package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/middleware"
	"github.com/mohi-devhub/genie/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a user's public profile with their prompts
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID := c.Param("id")
	var user models.User

	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var prompts []models.Prompt
	h.db.
		Preload("Author").
		Preload("Category").
		Preload("Model").
		Preload("Votes").
		Where("author_id = ?", user.ID).
		Order("created_at desc, id desc").
		Find(&prompts)

	viewerID, authenticated := middleware.CurrentUserID(c)
	responses := make([]gin.H, 0, len(prompts))
	for _, p := range prompts {
		responses = append(responses, promptResponse(p, viewerID, authenticated))
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"bio":      user.Bio,
			"avatar":   user.Avatar,
		},
		"prompts":      responses,
		"prompt_count": len(responses),
	})
}
