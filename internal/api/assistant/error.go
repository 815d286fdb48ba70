package assistant

import "ShopAssist/pkg/response"

var (
	ErrConversationNotFound = response.NewError(404, "conversation not found")
	ErrProcessTurn          = response.NewError(500, "failed to process chat turn")
	ErrSaveConversation     = response.NewError(500, "failed to save conversation")
	ErrLoadGuidelines       = response.NewError(500, "failed to load guidelines")
)
