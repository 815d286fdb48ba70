package assistantService

import (
	"ShopAssist/internal/api/assistant"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/engine"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *assistantService) UpdateKeywordMapping(c context.Context, key string, req assistant.UpdateKeywordMappingRequest) error {
	requestID := contextPkg.GetRequestID(c)

	err := s.engine.UpdateKeywordMapping(key, engine.KeywordMapping{
		SearchTerms: req.SearchTerms,
		Categories:  req.Categories,
		Priority:    req.Priority,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Rejected keyword mapping update")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"key":        key,
	}).Info("Keyword mapping updated")
	return nil
}

func (s *assistantService) UpdateIntentMapping(c context.Context, intent string, req assistant.UpdateIntentMappingRequest) error {
	requestID := contextPkg.GetRequestID(c)

	err := s.engine.UpdateIntentMapping(engine.UserIntent(intent), engine.IntentMapping{
		Categories:  req.Categories,
		SearchTerms: req.SearchTerms,
		Priority:    engine.LookupOrder(req.Priority),
		Confidence:  req.Confidence,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     intent,
			"error":      err.Error(),
		}).Warn("Rejected intent mapping update")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intent":     intent,
	}).Info("Intent mapping updated")
	return nil
}

func (s *assistantService) UpdateStageMapping(c context.Context, stage string, req assistant.UpdateStageMappingRequest) error {
	requestID := contextPkg.GetRequestID(c)

	err := s.engine.UpdateStageMapping(engine.ConversationStage(stage), engine.StageMapping{
		Strategy:   engine.StageStrategy(req.Strategy),
		Reason:     req.Reason,
		Confidence: req.Confidence,
		Limit:      req.Limit,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"stage":      stage,
			"error":      err.Error(),
		}).Warn("Rejected stage mapping update")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"stage":      stage,
	}).Info("Stage mapping updated")
	return nil
}

func (s *assistantService) GetMappings(_ context.Context) assistant.MappingsResponse {
	snapshot := s.engine.Mappings()
	return assistant.MappingsResponse{
		Keywords: snapshot.Keywords,
		Intents:  snapshot.Intents,
		Stages:   snapshot.Stages,
	}
}
