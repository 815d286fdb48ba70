package assistantService

import (
	"ShopAssist/internal/api/assistant"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ProcessChat runs one conversational turn end to end. The extracted context,
// matched guidelines and suggestions are computed before the user message is
// appended, so the turn sees the history as it was when the message arrived.
// A persistence failure aborts the turn so the stored history never drifts
// from what the caller was told.
func (s *assistantService) ProcessChat(c context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.assistantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return assistant.ChatResponse{}, err
	}

	isNew := req.ConversationID == ""

	var conversation entity.Conversation
	if isNew {
		now := time.Now().UTC()
		id, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate conversation ID")
			return assistant.ChatResponse{}, err
		}
		conversation = entity.Conversation{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		}
	} else {
		conversation, err = repo.Conversation.GetConversationByID(c, req.ConversationID)
		if err != nil {
			return assistant.ChatResponse{}, err
		}
	}

	convCtx := s.engine.ExtractContext(req.Message, conversation.Messages)

	guidelines, err := s.guidelineService.GetActiveGuidelines(c)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load active guidelines for chat turn")
		return assistant.ChatResponse{}, assistant.ErrLoadGuidelines
	}
	matched := s.engine.FilterGuidelines(guidelines, convCtx)

	suggestions, err := s.engine.GenerateSuggestions(c, req.Message, convCtx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate suggestions")
		return assistant.ChatResponse{}, assistant.ErrProcessTurn
	}

	conversation.Messages = append(conversation.Messages, entity.Message{
		Role:      entity.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: time.Now().UTC(),
	})

	readiness := s.engine.ScorePurchaseReadiness(conversation.Messages, suggestions)

	conversation.Context = entity.StoredContext{
		UserIntent:        string(convCtx.UserIntent),
		Keywords:          convCtx.Keywords,
		ShoppingIntent:    string(convCtx.ShoppingIntent),
		BudgetRange:       convCtx.BudgetRange,
		ConversationStage: string(convCtx.ConversationStage),
		ReadinessScore:    readiness,
	}
	conversation.UpdatedAt = time.Now().UTC()

	if isNew {
		err = repo.Conversation.CreateConversation(c, conversation)
	} else {
		err = repo.Conversation.UpdateConversation(c, conversation)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"conversation_id": conversation.ID,
			"error":           err.Error(),
		}).Error("Failed to persist conversation")
		return assistant.ChatResponse{}, assistant.ErrSaveConversation
	}

	matchedResponses := make([]assistant.MatchedGuidelineResponse, 0, len(matched))
	for _, g := range matched {
		matchedResponses = append(matchedResponses, assistant.MatchedGuidelineResponse{
			ID:       g.ID,
			Name:     g.Name,
			Content:  g.Content,
			Priority: g.Priority,
			Category: g.Category,
		})
	}

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"conversation_id": conversation.ID,
		"user_intent":     convCtx.UserIntent,
		"stage":           convCtx.ConversationStage,
		"suggestions":     len(suggestions),
		"readiness_score": readiness,
	}).Debug("Processed chat turn")

	return assistant.ChatResponse{
		ConversationID: conversation.ID,
		Context:        convCtx,
		Guidelines:     matchedResponses,
		Suggestions:    suggestions,
		ReadinessScore: readiness,
	}, nil
}

func (s *assistantService) GetConversationByID(c context.Context, id string) (entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.assistantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Conversation{}, err
	}

	return repo.Conversation.GetConversationByID(c, id)
}
