package models

import "time"

const (
	VoteUp   = "UP"
	VoteDown = "DOWN"
)

// Vote - tracks a single user's opinion on a prompt.
// The composite unique index enforces at most one vote per (user, prompt).
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_votes_user_prompt" json:"user_id"`
	PromptID  int       `gorm:"not null;uniqueIndex:idx_votes_user_prompt" json:"prompt_id"`
	Type      string    `gorm:"size:8;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CastVoteRequest struct {
	Type string `json:"type" binding:"required,oneof=UP DOWN"`
}
