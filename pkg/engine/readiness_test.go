package engine

import (
	"ShopAssist/internal/entity"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePurchaseReadiness(t *testing.T) {
	e := newTestEngine(nil)

	t.Run("empty conversation scores zero", func(t *testing.T) {
		assert.Equal(t, 0, e.ScorePurchaseReadiness(nil, nil))
	})

	t.Run("signals are additive", func(t *testing.T) {
		history := []entity.Message{
			userMessage("I want to buy a phone"),
			assistantMessage("sure, here are options"),
			userMessage("what is the price and shipping cost"),
		}
		suggestions := []Suggestion{{Confidence: 0.8}}

		// 2 user turns (10) + buy (5) + price (5) + shipping (5) + cost (5)
		// + confident top suggestion (20)
		assert.Equal(t, 50, e.ScorePurchaseReadiness(history, suggestions))
	})

	t.Run("assistant messages carry no signals", func(t *testing.T) {
		history := []entity.Message{
			userMessage("hello"),
			assistantMessage("you should buy this, the price is great"),
		}
		assert.Equal(t, 5, e.ScorePurchaseReadiness(history, nil))
	})

	t.Run("low confidence suggestion gets no bump", func(t *testing.T) {
		history := []entity.Message{userMessage("hello")}
		withBump := e.ScorePurchaseReadiness(history, []Suggestion{{Confidence: 0.71}})
		withoutBump := e.ScorePurchaseReadiness(history, []Suggestion{{Confidence: 0.7}})
		assert.Equal(t, 25, withBump)
		assert.Equal(t, 5, withoutBump)
	})

	t.Run("turn points are capped", func(t *testing.T) {
		var history []entity.Message
		for i := 0; i < 20; i++ {
			history = append(history, userMessage("hello"))
		}
		assert.Equal(t, 30, e.ScorePurchaseReadiness(history, nil))
	})

	t.Run("score is clamped to 100", func(t *testing.T) {
		history := []entity.Message{
			userMessage(strings.Repeat("buy purchase order warranty ", 10)),
		}
		assert.Equal(t, 100, e.ScorePurchaseReadiness(history, nil))
	})
}
