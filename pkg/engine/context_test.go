package engine

import (
	"ShopAssist/internal/entity"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(catalog CatalogAccessor) *engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, catalog).(*engine)
}

func userMessage(content string) entity.Message {
	return entity.Message{Role: entity.MessageRoleUser, Content: content}
}

func assistantMessage(content string) entity.Message {
	return entity.Message{Role: entity.MessageRoleAssistant, Content: content}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected UserIntent
	}{
		{"greeting", "Hello there", IntentGreeting},
		{"greeting beats pricing when both match", "Hello, how much does this cost?", IntentGreeting},
		{"pricing", "How much does the Galaxy cost?", IntentPricingInquiry},
		{"comparison with vs", "iphone vs galaxy, which is better?", IntentComparisonRequest},
		{"purchase", "I want to buy this laptop", IntentPurchaseIntent},
		{"objection", "That seems too expensive for me", IntentPricingInquiry},
		{"recommendation", "I'm looking for a new tablet", IntentProductRecommendation},
		{"service", "What is your return policy?", IntentServiceInquiry},
		{"empty message", "", IntentUnknown},
		{"whitespace only", "   ", IntentUnknown},
		{"fallback", "the weather is nice today", IntentGeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyIntent(tt.message))
		})
	}
}

func TestClassifyShoppingIntent(t *testing.T) {
	assert.Equal(t, ShoppingIntentBuying, classifyShoppingIntent("I'll order it at checkout"))
	assert.Equal(t, ShoppingIntentComparing, classifyShoppingIntent("what is the difference between these two"))
	assert.Equal(t, ShoppingIntentSupport, classifyShoppingIntent("my charger is broken"))
	assert.Equal(t, ShoppingIntentBrowsing, classifyShoppingIntent("just having a look around"))
}

func TestExtractKeywords(t *testing.T) {
	t.Run("vocabulary currency and long tokens survive", func(t *testing.T) {
		keywords := extractKeywords("I need a cheap smartphone under $200")
		assert.Equal(t, []string{"cheap", "smartphone", "$200"}, keywords)
	})

	t.Run("model patterns emit underscored tokens", func(t *testing.T) {
		keywords := extractKeywords("is the iPhone 15 Pro worth it")
		assert.Contains(t, keywords, "iphone_15_pro")
		assert.Contains(t, keywords, "iphone")
	})

	t.Run("duplicates keep first occurrence", func(t *testing.T) {
		keywords := extractKeywords("laptop laptop laptop")
		assert.Equal(t, []string{"laptop"}, keywords)
	})

	t.Run("short tokens outside vocabulary are dropped", func(t *testing.T) {
		keywords := extractKeywords("is it ok for me")
		assert.Empty(t, keywords)
	})
}

func TestExtractBudgetRange(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"under with dollar sign", "something under $100 please", "under-100"},
		{"under without dollar sign", "keep it under 100", "under-100"},
		{"around qualifier buckets", "around $300 would be fine", "100-300"},
		{"explicit range verbatim", "between $200 to $450", "200-450"},
		{"dash range", "my budget is 150-600", "150-600"},
		{"bare amount buckets", "I have $750 to spend", "500-1000"},
		{"thousands with comma", "max $1,500", "1000-2000"},
		{"over two thousand", "around 2500", "over-2000"},
		{"qualitative cheap", "just something cheap", "budget-friendly"},
		{"qualitative premium", "only premium options", "premium"},
		{"no budget", "show me headphones", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractBudgetRange(tt.message))
		})
	}
}

func TestDeriveStage(t *testing.T) {
	tests := []struct {
		turns    int
		expected ConversationStage
	}{
		{1, StageIntroduction},
		{2, StageDiscovery},
		{3, StageDiscovery},
		{4, StageRecommendation},
		{5, StageRecommendation},
		{6, StagePresentation},
		{8, StageObjectionHandling},
		{10, StageClosing},
		{25, StageClosing},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, deriveStage(tt.turns), "turns=%d", tt.turns)
	}
}

func TestExtractContext(t *testing.T) {
	e := newTestEngine(nil)

	t.Run("first message is introduction", func(t *testing.T) {
		convCtx := e.ExtractContext("Hi there, I'm looking for a laptop", nil)
		assert.Equal(t, IntentGreeting, convCtx.UserIntent)
		assert.Equal(t, StageIntroduction, convCtx.ConversationStage)
		assert.False(t, convCtx.IsTopicChange)
		assert.Contains(t, convCtx.Keywords, "laptop")
	})

	t.Run("stage counts only user turns", func(t *testing.T) {
		history := []entity.Message{
			userMessage("hello"),
			assistantMessage("hi, how can I help?"),
			userMessage("show me laptops"),
			assistantMessage("sure"),
		}
		convCtx := e.ExtractContext("what about pricing?", history)
		assert.Equal(t, StageDiscovery, convCtx.ConversationStage)
	})

	t.Run("budget is carried in context", func(t *testing.T) {
		convCtx := e.ExtractContext("a smartphone under $500", nil)
		assert.Equal(t, "300-500", convCtx.BudgetRange)
	})
}
