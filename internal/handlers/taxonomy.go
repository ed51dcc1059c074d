package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/models"
)

type TaxonomyHandler struct {
	db *gorm.DB
}

func NewTaxonomyHandler(db *gorm.DB) *TaxonomyHandler {
	return &TaxonomyHandler{db: db}
}

// GetCategories returns all categories, alphabetical
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name asc").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetModels returns all target models, alphabetical
func (h *TaxonomyHandler) GetModels(c *gin.Context) {
	var aiModels []models.AIModel
	if err := h.db.Order("name asc").Find(&aiModels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models"})
		return
	}
	c.JSON(http.StatusOK, aiModels)
}
