package engine

import (
	"ShopAssist/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTopicChange(t *testing.T) {
	tests := []struct {
		name     string
		history  []entity.Message
		message  string
		expected bool
	}{
		{
			name:     "first message never counts",
			history:  nil,
			message:  "looking for a red dress",
			expected: false,
		},
		{
			name: "electronics to fashion",
			history: []entity.Message{
				userMessage("I need a new smartphone"),
				assistantMessage("here are some options"),
				userMessage("does the laptop have a good screen?"),
			},
			expected: true,
			message:  "actually, I'm looking for a red dress",
		},
		{
			name: "staying within electronics",
			history: []entity.Message{
				userMessage("I need a new smartphone"),
			},
			message:  "what about a tablet instead?",
			expected: false,
		},
		{
			name: "no category on either side",
			history: []entity.Message{
				userMessage("hello there"),
			},
			message:  "can you help me?",
			expected: false,
		},
		{
			name: "new message without category",
			history: []entity.Message{
				userMessage("show me laptops"),
			},
			message:  "what about the second one?",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keywords := extractKeywords(tt.message)
			assert.Equal(t, tt.expected, detectTopicChange(keywords, tt.history))
		})
	}
}

func TestRecentUserKeywordsWindow(t *testing.T) {
	history := []entity.Message{
		userMessage("old message about a sofa"),
		userMessage("I want a smartphone"),
		assistantMessage("sure"),
		userMessage("with a good camera"),
		userMessage("and decent battery"),
	}

	keywords := recentUserKeywords(history)
	assert.Contains(t, keywords, "smartphone")
	assert.NotContains(t, keywords, "sofa", "only the last three user turns are considered")
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "electronics", categoryOf([]string{"laptop"}))
	assert.Equal(t, "fashion", categoryOf([]string{"dress"}))
	assert.Equal(t, "", categoryOf([]string{"mysterything"}))
	assert.Equal(t, "electronics", categoryOf([]string{"dress", "laptop", "smartphone"}),
		"taxonomy order decides when keywords span categories")
}
