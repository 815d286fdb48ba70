package entity

import "time"

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// StoredContext is the slice of the per-turn conversation context that is
// folded into the conversation record after each turn.
type StoredContext struct {
	UserIntent        string   `json:"user_intent"`
	Keywords          []string `json:"keywords"`
	ShoppingIntent    string   `json:"shopping_intent"`
	BudgetRange       string   `json:"budget_range,omitempty"`
	ConversationStage string   `json:"conversation_stage"`
	ReadinessScore    int      `json:"readiness_score"`
}

type Conversation struct {
	ID        string        `json:"id"`
	Messages  []Message     `json:"messages"`
	Context   StoredContext `json:"context"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *Conversation) UserTurns() int {
	count := 0
	for _, m := range c.Messages {
		if m.Role == MessageRoleUser {
			count++
		}
	}
	return count
}

func (c *Conversation) UserMessages() []string {
	var messages []string
	for _, m := range c.Messages {
		if m.Role == MessageRoleUser {
			messages = append(messages, m.Content)
		}
	}
	return messages
}
