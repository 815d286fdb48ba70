package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validKeywordMapping() KeywordMapping {
	return KeywordMapping{SearchTerms: []string{"drone"}, Categories: []string{"drones"}, Priority: 5}
}

func TestMappingConfig_SetKeyword(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		mapping KeywordMapping
		wantErr error
	}{
		{"valid", "drone", validKeywordMapping(), nil},
		{"empty key", "  ", validKeywordMapping(), ErrEmptyMappingKey},
		{"no targets", "drone", KeywordMapping{Priority: 5}, ErrEmptyMappingTargets},
		{"priority too low", "drone", KeywordMapping{SearchTerms: []string{"x"}, Priority: 0}, ErrInvalidPriority},
		{"priority too high", "drone", KeywordMapping{SearchTerms: []string{"x"}, Priority: 11}, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewMappingConfig()
			err := cfg.SetKeyword(tt.key, tt.mapping)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.mapping, cfg.Snapshot().Keywords["drone"])
		})
	}
}

func TestMappingConfig_SetKeywordNormalizesKey(t *testing.T) {
	cfg := NewMappingConfig()
	assert.NoError(t, cfg.SetKeyword("  Drone  ", validKeywordMapping()))

	_, ok := cfg.Snapshot().Keywords["drone"]
	assert.True(t, ok)
}

func TestMappingConfig_SetIntent(t *testing.T) {
	cfg := NewMappingConfig()

	err := cfg.SetIntent("not_an_intent", IntentMapping{SearchTerms: []string{"x"}, Priority: LookupSearchFirst, Confidence: 0.5})
	assert.ErrorIs(t, err, ErrUnknownIntentKey)

	err = cfg.SetIntent(IntentGreeting, IntentMapping{SearchTerms: []string{"x"}, Priority: "neither", Confidence: 0.5})
	assert.ErrorIs(t, err, ErrUnknownLookupOrder)

	err = cfg.SetIntent(IntentGreeting, IntentMapping{SearchTerms: []string{"x"}, Priority: LookupSearchFirst, Confidence: 1.5})
	assert.ErrorIs(t, err, ErrInvalidConfidence)

	err = cfg.SetIntent(IntentGreeting, IntentMapping{Priority: LookupSearchFirst, Confidence: 0.5})
	assert.ErrorIs(t, err, ErrEmptyMappingTargets)

	err = cfg.SetIntent(IntentGreeting, IntentMapping{SearchTerms: []string{"welcome"}, Priority: LookupSearchFirst, Confidence: 0.5})
	assert.NoError(t, err)
}

func TestMappingConfig_SetStage(t *testing.T) {
	cfg := NewMappingConfig()

	err := cfg.SetStage("not_a_stage", StageMapping{Strategy: StrategyPopular, Confidence: 0.5, Limit: 3})
	assert.ErrorIs(t, err, ErrUnknownStageKey)

	err = cfg.SetStage(StageClosing, StageMapping{Strategy: "weird", Confidence: 0.5, Limit: 3})
	assert.ErrorIs(t, err, ErrUnknownStageStrategy)

	err = cfg.SetStage(StageClosing, StageMapping{Strategy: StrategyPopular, Confidence: 0.5, Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidStageLimit)

	err = cfg.SetStage(StageClosing, StageMapping{Strategy: StrategyDiscounted, Reason: "deals", Confidence: 0.8, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, StrategyDiscounted, cfg.Snapshot().Stages[StageClosing].Strategy)
}

func TestMappingConfig_SnapshotIsolation(t *testing.T) {
	cfg := NewMappingConfig()
	before := cfg.Snapshot()
	beforeLen := len(before.Keywords)

	assert.NoError(t, cfg.SetKeyword("drone", validKeywordMapping()))

	assert.Len(t, before.Keywords, beforeLen, "published snapshot must not change under an update")
	_, ok := before.Keywords["drone"]
	assert.False(t, ok)

	after := cfg.Snapshot()
	_, ok = after.Keywords["drone"]
	assert.True(t, ok)
}

func TestDefaultMappings(t *testing.T) {
	snapshot := defaultMappingSnapshot()

	assert.NotEmpty(t, snapshot.Keywords["smartphone"].Categories)
	assert.Contains(t, snapshot.Intents, IntentPurchaseIntent)

	for _, stage := range []ConversationStage{
		StageIntroduction, StageDiscovery, StageRecommendation,
		StagePresentation, StageObjectionHandling, StageClosing,
	} {
		mapping, ok := snapshot.Stages[stage]
		assert.True(t, ok, "stage %s must have a default mapping", stage)
		assert.Greater(t, mapping.Limit, 0)
	}
}
