package handlers

import (
	"gorm.io/gorm"

	"github.com/mohi-devhub/genie/internal/middleware"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Prompt   *PromptHandler
	Vote     *VoteHandler
	Taxonomy *TaxonomyHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, auth *middleware.Auth) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(db, auth),
		Prompt:   NewPromptHandler(db),
		Vote:     NewVoteHandler(db),
		Taxonomy: NewTaxonomyHandler(db),
		User:     NewUserHandler(db),
	}
}
