package entity

import (
	"ShopAssist/internal/api/guideline"
	"time"
)

type GuidelineConditions struct {
	Intents  []string `json:"intents,omitempty"`
	Stages   []string `json:"stages,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

func (c GuidelineConditions) IsEmpty() bool {
	return len(c.Intents) == 0 && len(c.Stages) == 0 && len(c.Keywords) == 0
}

type Guideline struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Content    string              `json:"content"`
	Priority   int                 `json:"priority"`
	Category   string              `json:"category"`
	IsActive   bool                `json:"is_active"`
	Tags       []string            `json:"tags"`
	Conditions GuidelineConditions `json:"conditions"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func (g *Guideline) Validate() error {
	if g.Name == "" || g.Content == "" {
		return guideline.ErrInvalidGuideline
	}

	if g.Priority < 1 || g.Priority > 10 {
		return guideline.ErrInvalidPriority
	}

	return nil
}
