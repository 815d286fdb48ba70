package engine

import (
	"ShopAssist/internal/entity"
	"strings"
)

var purchaseSignalKeywords = []string{
	"buy", "purchase", "order", "price", "cost", "shipping", "delivery", "warranty",
}

var detailSignalKeywords = []string{
	"specification", "spec", "review", "rating", "compare", "feature",
}

const (
	turnPoints        = 5
	turnPointsCap     = 30
	purchasePoints    = 5
	topSuggestionBump = 20
	detailPoints      = 10
	readinessCeiling  = 100
)

// ScorePurchaseReadiness estimates how close the user is to buying, as an
// additive score over conversation signals, clamped to [0, 100].
func (e *engine) ScorePurchaseReadiness(history []entity.Message, suggestions []Suggestion) int {
	score := 0

	turnScore := countUserTurns(history) * turnPoints
	if turnScore > turnPointsCap {
		turnScore = turnPointsCap
	}
	score += turnScore

	for _, m := range history {
		if m.Role != entity.MessageRoleUser {
			continue
		}
		text := strings.ToLower(m.Content)
		for _, keyword := range purchaseSignalKeywords {
			score += purchasePoints * strings.Count(text, keyword)
		}
		for _, keyword := range detailSignalKeywords {
			score += detailPoints * strings.Count(text, keyword)
		}
	}

	if len(suggestions) > 0 && suggestions[0].Confidence > 0.7 {
		score += topSuggestionBump
	}

	if score > readinessCeiling {
		score = readinessCeiling
	}
	return score
}
