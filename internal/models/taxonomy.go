package models

// Category is immutable reference data, seeded at startup.
type Category struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// AIModel is the target model tag for a prompt ("GPT-4", "Claude 3 Opus", ...).
// Same lifecycle as Category.
type AIModel struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

func (AIModel) TableName() string { return "models" }
