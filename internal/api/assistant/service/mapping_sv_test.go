package assistantService

import (
	"ShopAssist/internal/api/assistant"
	"ShopAssist/pkg/engine"
	"ShopAssist/pkg/utils"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Mapping updates go through the real engine so validation errors surface
// unchanged to the handler layer.
func newMappingTestService() IAssistantService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	eng := engine.New(log, nil)
	return NewAssistantService(log, &stubAssistantRepository{conversation: newStubConversationRepo()}, &stubGuidelineService{}, eng, utils.New())
}

func TestUpdateKeywordMapping(t *testing.T) {
	svc := newMappingTestService()

	err := svc.UpdateKeywordMapping(context.Background(), "drone", assistant.UpdateKeywordMappingRequest{
		SearchTerms: []string{"drone"},
		Categories:  []string{"drones"},
		Priority:    6,
	})
	assert.NoError(t, err)

	mappings := svc.GetMappings(context.Background())
	assert.Equal(t, 6, mappings.Keywords["drone"].Priority)

	err = svc.UpdateKeywordMapping(context.Background(), "drone", assistant.UpdateKeywordMappingRequest{Priority: 6})
	assert.ErrorIs(t, err, engine.ErrEmptyMappingTargets)
}

func TestUpdateIntentMapping(t *testing.T) {
	svc := newMappingTestService()

	err := svc.UpdateIntentMapping(context.Background(), "pricing_inquiry", assistant.UpdateIntentMappingRequest{
		SearchTerms: []string{"deal"},
		Priority:    "search",
		Confidence:  0.7,
	})
	assert.NoError(t, err)

	err = svc.UpdateIntentMapping(context.Background(), "made_up_intent", assistant.UpdateIntentMappingRequest{
		SearchTerms: []string{"deal"},
		Priority:    "search",
		Confidence:  0.7,
	})
	assert.ErrorIs(t, err, engine.ErrUnknownIntentKey)
}

func TestUpdateStageMapping(t *testing.T) {
	svc := newMappingTestService()

	err := svc.UpdateStageMapping(context.Background(), "closing", assistant.UpdateStageMappingRequest{
		Strategy:   "discounted",
		Reason:     "sweeten the deal",
		Confidence: 0.8,
		Limit:      3,
	})
	assert.NoError(t, err)

	mappings := svc.GetMappings(context.Background())
	assert.Equal(t, engine.StrategyDiscounted, mappings.Stages[engine.StageClosing].Strategy)

	err = svc.UpdateStageMapping(context.Background(), "closing", assistant.UpdateStageMappingRequest{
		Strategy:   "alphabetical",
		Reason:     "nope",
		Confidence: 0.8,
		Limit:      3,
	})
	assert.ErrorIs(t, err, engine.ErrUnknownStageStrategy)
}
