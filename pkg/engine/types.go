package engine

import (
	"ShopAssist/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type UserIntent string

const (
	IntentGreeting              UserIntent = "greeting"
	IntentHelpRequest           UserIntent = "help_request"
	IntentPricingInquiry        UserIntent = "pricing_inquiry"
	IntentDemoRequest           UserIntent = "demo_request"
	IntentFeatureInquiry        UserIntent = "feature_inquiry"
	IntentComparisonRequest     UserIntent = "comparison_request"
	IntentPurchaseIntent        UserIntent = "purchase_intent"
	IntentObjectionHandling     UserIntent = "objection_handling"
	IntentReviewInquiry         UserIntent = "review_inquiry"
	IntentAvailabilityInquiry   UserIntent = "availability_inquiry"
	IntentServiceInquiry        UserIntent = "service_inquiry"
	IntentProductRecommendation UserIntent = "product_recommendation"
	IntentGeneralInquiry        UserIntent = "general_inquiry"
	IntentUnknown               UserIntent = "unknown"
)

type ShoppingIntent string

const (
	ShoppingIntentBrowsing  ShoppingIntent = "browsing"
	ShoppingIntentComparing ShoppingIntent = "comparing"
	ShoppingIntentBuying    ShoppingIntent = "buying"
	ShoppingIntentSupport   ShoppingIntent = "support"
)

type ConversationStage string

const (
	StageIntroduction      ConversationStage = "introduction"
	StageDiscovery         ConversationStage = "discovery"
	StageRecommendation    ConversationStage = "recommendation"
	StagePresentation      ConversationStage = "presentation"
	StageObjectionHandling ConversationStage = "objection_handling"
	StageClosing           ConversationStage = "closing"
)

type SuggestionType string

const (
	SuggestionTypeKeyword    SuggestionType = "keyword"
	SuggestionTypeIntent     SuggestionType = "intent"
	SuggestionTypeStage      SuggestionType = "stage"
	SuggestionTypeContextual SuggestionType = "contextual"
	SuggestionTypePopular    SuggestionType = "popular"
	SuggestionTypeRelated    SuggestionType = "related"
)

// ConversationContext is rebuilt from scratch for every inbound message.
type ConversationContext struct {
	UserIntent        UserIntent        `json:"user_intent"`
	Keywords          []string          `json:"keywords"`
	ShoppingIntent    ShoppingIntent    `json:"shopping_intent"`
	BudgetRange       string            `json:"budget_range,omitempty"`
	ConversationStage ConversationStage `json:"conversation_stage"`
	IsTopicChange     bool              `json:"is_topic_change"`
}

type Suggestion struct {
	Product    entity.Product `json:"product"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence"`
	Type       SuggestionType `json:"type"`
}

type SearchParams struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// CatalogAccessor is the engine's read-only view of the product catalog.
// A failing search surfaces as an error and is treated as zero candidates
// by the calling strategy.
type CatalogAccessor interface {
	Search(ctx context.Context, params SearchParams) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type IEngine interface {
	ExtractContext(message string, history []entity.Message) ConversationContext
	FilterGuidelines(guidelines []entity.Guideline, convCtx ConversationContext) []entity.Guideline
	GenerateSuggestions(ctx context.Context, message string, convCtx ConversationContext) ([]Suggestion, error)
	ScorePurchaseReadiness(history []entity.Message, suggestions []Suggestion) int

	UpdateKeywordMapping(key string, mapping KeywordMapping) error
	UpdateIntentMapping(intent UserIntent, mapping IntentMapping) error
	UpdateStageMapping(stage ConversationStage, mapping StageMapping) error
	Mappings() MappingSnapshot
}

type engine struct {
	log      *logrus.Logger
	catalog  CatalogAccessor
	mappings *MappingConfig
}

func New(log *logrus.Logger, catalog CatalogAccessor) IEngine {
	return &engine{
		log:      log,
		catalog:  catalog,
		mappings: NewMappingConfig(),
	}
}

func (e *engine) Mappings() MappingSnapshot {
	return e.mappings.Snapshot()
}

func (e *engine) UpdateKeywordMapping(key string, mapping KeywordMapping) error {
	return e.mappings.SetKeyword(key, mapping)
}

func (e *engine) UpdateIntentMapping(intent UserIntent, mapping IntentMapping) error {
	return e.mappings.SetIntent(intent, mapping)
}

func (e *engine) UpdateStageMapping(stage ConversationStage, mapping StageMapping) error {
	return e.mappings.SetStage(stage, mapping)
}
