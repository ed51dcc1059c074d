package database

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mohi-devhub/genie/internal/models"
)

var referenceCategories = []string{
	"Writing",
	"Coding",
	"Marketing",
	"Education",
	"Business",
	"Creative",
	"Data Analysis",
	"Research",
}

var referenceModels = []string{
	"GPT-4",
	"GPT-3.5",
	"Claude 3 Opus",
	"Claude 3 Sonnet",
	"Claude 3 Haiku",
	"Gemini Pro",
	"Llama 3",
	"Mistral",
}

// SeedReferenceData upserts the category and model tags. Idempotent, runs
// on every startup so fresh databases are usable immediately.
func SeedReferenceData(db *gorm.DB) error {
	for _, name := range referenceCategories {
		c := models.Category{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	for _, name := range referenceModels {
		m := models.AIModel{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&m).Error; err != nil {
			return fmt.Errorf("failed to seed model %q: %w", name, err)
		}
	}

	return nil
}

// SeedDemoData populates a demo author, a handful of prompts, and randomized
// votes. Development only; skips if any prompt already exists.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Prompt{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	demo := models.User{
		Username:     "demo",
		Email:        "demo@example.com",
		Password:     string(hash),
		AuthProvider: "email",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	if demo.ID == 0 {
		if err := db.Where("email = ?", demo.Email).First(&demo).Error; err != nil {
			return err
		}
	}

	type demoPrompt struct {
		title    string
		text     string
		category string
		model    string
	}
	demoPrompts := []demoPrompt{
		{
			title:    "Professional Email Writer",
			text:     "You are a professional email writer. Write a clear, concise, and polite email based on the following context: [CONTEXT]. Maintain a professional tone while being friendly and approachable.",
			category: "Writing",
			model:    "GPT-4",
		},
		{
			title:    "Code Review Assistant",
			text:     "Review the following code for best practices, potential bugs, and performance improvements. Provide specific suggestions with explanations:\n\n[CODE]\n\nFocus on: 1) Code quality, 2) Security issues, 3) Performance optimizations, 4) Readability improvements.",
			category: "Coding",
			model:    "Claude 3 Opus",
		},
		{
			title:    "Social Media Caption Generator",
			text:     "Create 5 engaging social media captions for [PLATFORM] about [TOPIC]. Each caption should:\n- Be attention-grabbing\n- Include relevant hashtags\n- Encourage engagement\n- Match the brand voice: [BRAND_VOICE]",
			category: "Marketing",
			model:    "GPT-4",
		},
		{
			title:    "Explain Like I'm Five",
			text:     "Explain [COMPLEX_TOPIC] in simple terms that a 5-year-old would understand. Use analogies, simple language, and relatable examples. Break it down step by step.",
			category: "Education",
			model:    "Gemini Pro",
		},
		{
			title:    "Meeting Summary Generator",
			text:     "Summarize the following meeting notes into a clear, actionable format:\n\n[MEETING_NOTES]\n\nInclude:\n- Key decisions made\n- Action items with owners\n- Important discussion points\n- Next steps",
			category: "Business",
			model:    "GPT-4",
		},
		{
			title:    "Creative Story Starter",
			text:     "Write an engaging opening paragraph for a story with these elements:\n- Genre: [GENRE]\n- Setting: [SETTING]\n- Main character: [CHARACTER]\n- Conflict: [CONFLICT]\n\nMake it compelling and hook the reader immediately.",
			category: "Creative",
			model:    "Claude 3 Opus",
		},
	}

	for i, dp := range demoPrompts {
		var category models.Category
		if err := db.Where("name = ?", dp.category).First(&category).Error; err != nil {
			return fmt.Errorf("demo category %q missing: %w", dp.category, err)
		}
		var model models.AIModel
		if err := db.Where("name = ?", dp.model).First(&model).Error; err != nil {
			return fmt.Errorf("demo model %q missing: %w", dp.model, err)
		}

		prompt := models.Prompt{
			Title:      dp.title,
			PromptText: dp.text,
			AuthorID:   demo.ID,
			CategoryID: category.ID,
			ModelID:    model.ID,
		}
		if err := db.Create(&prompt).Error; err != nil {
			return fmt.Errorf("failed to seed demo prompt: %w", err)
		}

		// 3-17 voters per prompt, 70-90% upvotes
		voteCount := r.Intn(15) + 3
		upvoteRatio := 0.7 + r.Float64()*0.2
		for v := 0; v < voteCount; v++ {
			voter := models.User{
				Username:     fmt.Sprintf("voter%d_%d", i, v),
				Email:        fmt.Sprintf("voter%d_%d@example.com", i, v),
				Password:     string(hash),
				AuthProvider: "email",
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&voter).Error; err != nil {
				return err
			}
			if voter.ID == 0 {
				if err := db.Where("email = ?", voter.Email).First(&voter).Error; err != nil {
					return err
				}
			}

			voteType := models.VoteUp
			if r.Float64() >= upvoteRatio {
				voteType = models.VoteDown
			}
			vote := models.Vote{UserID: voter.ID, PromptID: prompt.ID, Type: voteType}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_id"}},
				DoNothing: true,
			}).Create(&vote).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
