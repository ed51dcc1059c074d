package models

import "time"

// Prompt is a user submission. Prompts are never edited or deleted.
type Prompt struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	PromptText string    `gorm:"type:text;not null" json:"prompt_text"`
	AuthorID   int       `gorm:"index;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID int       `gorm:"index;not null" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"category"`
	ModelID    int       `gorm:"index;not null" json:"model_id"`
	Model      AIModel   `gorm:"foreignKey:ModelID" json:"model"`
	Votes      []Vote    `gorm:"foreignKey:PromptID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreatePromptRequest struct {
	Title      string `json:"title"`
	PromptText string `json:"prompt_text"`
	CategoryID int    `json:"category_id"`
	ModelID    int    `json:"model_id"`
}
