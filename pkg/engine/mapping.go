package engine

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrEmptyMappingKey      = errors.New("mapping key must not be empty")
	ErrEmptyMappingTargets  = errors.New("mapping needs at least one search term or category")
	ErrInvalidConfidence    = errors.New("mapping confidence must be between 0 and 1")
	ErrInvalidPriority      = errors.New("keyword mapping priority must be between 1 and 10")
	ErrUnknownIntentKey     = errors.New("unknown user intent")
	ErrUnknownStageKey      = errors.New("unknown conversation stage")
	ErrUnknownLookupOrder   = errors.New("intent mapping priority must be category or search")
	ErrUnknownStageStrategy = errors.New("unknown stage strategy")
	ErrInvalidStageLimit    = errors.New("stage mapping limit must be positive")
)

type LookupOrder string

const (
	LookupCategoryFirst LookupOrder = "category"
	LookupSearchFirst   LookupOrder = "search"
)

type StageStrategy string

const (
	StrategyPopular    StageStrategy = "popular"
	StrategyFeatured   StageStrategy = "featured"
	StrategyDiscounted StageStrategy = "discounted"
	StrategyTopRated   StageStrategy = "top_rated"
	StrategyMixed      StageStrategy = "mixed"
)

type KeywordMapping struct {
	SearchTerms []string `json:"search_terms"`
	Categories  []string `json:"categories"`
	Priority    int      `json:"priority"`
}

type IntentMapping struct {
	Categories  []string    `json:"categories"`
	SearchTerms []string    `json:"search_terms"`
	Priority    LookupOrder `json:"priority"`
	Confidence  float64     `json:"confidence"`
}

type StageMapping struct {
	Strategy   StageStrategy `json:"strategy"`
	Reason     string        `json:"reason"`
	Confidence float64       `json:"confidence"`
	Limit      int           `json:"limit"`
}

// MappingSnapshot is an immutable view of the mapping tables. Updates never
// mutate a published snapshot; they clone the table and swap it in, so a
// reader that grabbed a snapshot keeps a consistent one for the whole turn.
type MappingSnapshot struct {
	Keywords map[string]KeywordMapping
	Intents  map[UserIntent]IntentMapping
	Stages   map[ConversationStage]StageMapping
}

type MappingConfig struct {
	mu       sync.RWMutex
	snapshot MappingSnapshot
}

func NewMappingConfig() *MappingConfig {
	return &MappingConfig{snapshot: defaultMappingSnapshot()}
}

func (m *MappingConfig) Snapshot() MappingSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

func (m *MappingConfig) SetKeyword(key string, mapping KeywordMapping) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ErrEmptyMappingKey
	}
	if len(mapping.SearchTerms) == 0 && len(mapping.Categories) == 0 {
		return ErrEmptyMappingTargets
	}
	if mapping.Priority < 1 || mapping.Priority > 10 {
		return ErrInvalidPriority
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	keywords := make(map[string]KeywordMapping, len(m.snapshot.Keywords)+1)
	for k, v := range m.snapshot.Keywords {
		keywords[k] = v
	}
	keywords[key] = mapping
	m.snapshot = MappingSnapshot{
		Keywords: keywords,
		Intents:  m.snapshot.Intents,
		Stages:   m.snapshot.Stages,
	}
	return nil
}

func (m *MappingConfig) SetIntent(intent UserIntent, mapping IntentMapping) error {
	if !isKnownIntent(intent) {
		return ErrUnknownIntentKey
	}
	if len(mapping.SearchTerms) == 0 && len(mapping.Categories) == 0 {
		return ErrEmptyMappingTargets
	}
	if mapping.Priority != LookupCategoryFirst && mapping.Priority != LookupSearchFirst {
		return ErrUnknownLookupOrder
	}
	if mapping.Confidence < 0 || mapping.Confidence > 1 {
		return ErrInvalidConfidence
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	intents := make(map[UserIntent]IntentMapping, len(m.snapshot.Intents)+1)
	for k, v := range m.snapshot.Intents {
		intents[k] = v
	}
	intents[intent] = mapping
	m.snapshot = MappingSnapshot{
		Keywords: m.snapshot.Keywords,
		Intents:  intents,
		Stages:   m.snapshot.Stages,
	}
	return nil
}

func (m *MappingConfig) SetStage(stage ConversationStage, mapping StageMapping) error {
	if !isKnownStage(stage) {
		return ErrUnknownStageKey
	}
	switch mapping.Strategy {
	case StrategyPopular, StrategyFeatured, StrategyDiscounted, StrategyTopRated, StrategyMixed:
	default:
		return ErrUnknownStageStrategy
	}
	if mapping.Confidence < 0 || mapping.Confidence > 1 {
		return ErrInvalidConfidence
	}
	if mapping.Limit <= 0 {
		return ErrInvalidStageLimit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stages := make(map[ConversationStage]StageMapping, len(m.snapshot.Stages)+1)
	for k, v := range m.snapshot.Stages {
		stages[k] = v
	}
	stages[stage] = mapping
	m.snapshot = MappingSnapshot{
		Keywords: m.snapshot.Keywords,
		Intents:  m.snapshot.Intents,
		Stages:   stages,
	}
	return nil
}

func isKnownIntent(intent UserIntent) bool {
	switch intent {
	case IntentGreeting, IntentHelpRequest, IntentPricingInquiry, IntentDemoRequest,
		IntentFeatureInquiry, IntentComparisonRequest, IntentPurchaseIntent,
		IntentObjectionHandling, IntentReviewInquiry, IntentAvailabilityInquiry,
		IntentServiceInquiry, IntentProductRecommendation, IntentGeneralInquiry, IntentUnknown:
		return true
	default:
		return false
	}
}

func isKnownStage(stage ConversationStage) bool {
	switch stage {
	case StageIntroduction, StageDiscovery, StageRecommendation,
		StagePresentation, StageObjectionHandling, StageClosing:
		return true
	default:
		return false
	}
}

func defaultMappingSnapshot() MappingSnapshot {
	return MappingSnapshot{
		Keywords: map[string]KeywordMapping{
			"smartphone": {SearchTerms: []string{"smartphone", "phone"}, Categories: []string{"smartphones"}, Priority: 8},
			"phone":      {SearchTerms: []string{"phone"}, Categories: []string{"smartphones"}, Priority: 7},
			"laptop":     {SearchTerms: []string{"laptop", "notebook"}, Categories: []string{"laptops"}, Priority: 8},
			"camera":     {SearchTerms: []string{"camera", "smartphone camera"}, Categories: []string{"smartphones"}, Priority: 6},
			"headphones": {SearchTerms: []string{"headphones", "earbuds"}, Categories: []string{"mobile-accessories"}, Priority: 6},
			"tablet":     {SearchTerms: []string{"tablet"}, Categories: []string{"tablets"}, Priority: 6},
			"watch":      {SearchTerms: []string{"watch", "smartwatch"}, Categories: []string{"mens-watches", "womens-watches"}, Priority: 5},
			"dress":      {SearchTerms: []string{"dress"}, Categories: []string{"womens-dresses"}, Priority: 6},
			"shoes":      {SearchTerms: []string{"shoes", "sneakers"}, Categories: []string{"mens-shoes", "womens-shoes"}, Priority: 6},
			"perfume":    {SearchTerms: []string{"perfume", "fragrance"}, Categories: []string{"fragrances"}, Priority: 5},
			"skincare":   {SearchTerms: []string{"skincare", "moisturizer"}, Categories: []string{"skin-care"}, Priority: 5},
			"furniture":  {SearchTerms: []string{"furniture", "sofa"}, Categories: []string{"furniture"}, Priority: 5},
			"grocery":    {SearchTerms: []string{"grocery"}, Categories: []string{"groceries"}, Priority: 4},
			"gift":       {SearchTerms: []string{"gift", "present"}, Priority: 4},
			"cheap":      {SearchTerms: []string{"budget"}, Priority: 3},
		},
		Intents: map[UserIntent]IntentMapping{
			IntentPricingInquiry: {
				Categories:  []string{"smartphones", "laptops"},
				SearchTerms: []string{"deal", "discount"},
				Priority:    LookupSearchFirst,
				Confidence:  0.6,
			},
			IntentFeatureInquiry: {
				Categories:  []string{"smartphones", "laptops"},
				SearchTerms: []string{"smartphone", "laptop"},
				Priority:    LookupCategoryFirst,
				Confidence:  0.65,
			},
			IntentComparisonRequest: {
				Categories:  []string{"smartphones"},
				SearchTerms: []string{"smartphone", "laptop"},
				Priority:    LookupCategoryFirst,
				Confidence:  0.6,
			},
			IntentPurchaseIntent: {
				Categories:  []string{"smartphones", "laptops"},
				SearchTerms: []string{"bestseller"},
				Priority:    LookupCategoryFirst,
				Confidence:  0.8,
			},
			IntentProductRecommendation: {
				Categories:  []string{"smartphones", "laptops", "fragrances"},
				SearchTerms: []string{"popular"},
				Priority:    LookupCategoryFirst,
				Confidence:  0.7,
			},
			IntentAvailabilityInquiry: {
				Categories:  []string{"smartphones"},
				SearchTerms: []string{"in stock"},
				Priority:    LookupSearchFirst,
				Confidence:  0.55,
			},
		},
		Stages: map[ConversationStage]StageMapping{
			StageIntroduction: {
				Strategy:   StrategyPopular,
				Reason:     "Popular picks to get you started",
				Confidence: 0.5,
				Limit:      3,
			},
			StageDiscovery: {
				Strategy:   StrategyMixed,
				Reason:     "A mix of options worth exploring",
				Confidence: 0.6,
				Limit:      4,
			},
			StageRecommendation: {
				Strategy:   StrategyTopRated,
				Reason:     "Top rated by our customers",
				Confidence: 0.7,
				Limit:      4,
			},
			StagePresentation: {
				Strategy:   StrategyFeatured,
				Reason:     "Featured products matching your interest",
				Confidence: 0.65,
				Limit:      3,
			},
			StageObjectionHandling: {
				Strategy:   StrategyDiscounted,
				Reason:     "Currently discounted, great value",
				Confidence: 0.7,
				Limit:      3,
			},
			StageClosing: {
				Strategy:   StrategyTopRated,
				Reason:     "Best choice to close on",
				Confidence: 0.75,
				Limit:      2,
			},
		},
	}
}
