package assistant

import (
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/engine"
)

type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" validate:"required,min=1,max=2000"`
}

type MatchedGuidelineResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
	Category string `json:"category"`
}

type ChatResponse struct {
	ConversationID string                     `json:"conversation_id"`
	Context        engine.ConversationContext `json:"context"`
	Guidelines     []MatchedGuidelineResponse `json:"guidelines"`
	Suggestions    []engine.Suggestion        `json:"suggestions"`
	ReadinessScore int                        `json:"readiness_score"`
}

type ConversationResponse struct {
	ID        string               `json:"id"`
	Messages  []entity.Message     `json:"messages"`
	Context   entity.StoredContext `json:"context"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
}

type UpdateKeywordMappingRequest struct {
	SearchTerms []string `json:"search_terms"`
	Categories  []string `json:"categories"`
	Priority    int      `json:"priority" validate:"required,gte=1,lte=10"`
}

type UpdateIntentMappingRequest struct {
	Categories  []string `json:"categories"`
	SearchTerms []string `json:"search_terms"`
	Priority    string   `json:"priority" validate:"required,oneof=category search"`
	Confidence  float64  `json:"confidence" validate:"gte=0,lte=1"`
}

type UpdateStageMappingRequest struct {
	Strategy   string  `json:"strategy" validate:"required,oneof=popular featured discounted top_rated mixed"`
	Reason     string  `json:"reason" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	Limit      int     `json:"limit" validate:"required,gte=1,lte=10"`
}

type MappingsResponse struct {
	Keywords map[string]engine.KeywordMapping                 `json:"keywords"`
	Intents  map[engine.UserIntent]engine.IntentMapping       `json:"intents"`
	Stages   map[engine.ConversationStage]engine.StageMapping `json:"stages"`
}
