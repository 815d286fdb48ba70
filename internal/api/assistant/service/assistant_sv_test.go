package assistantService

import (
	"ShopAssist/internal/api/assistant"
	assistantRepository "ShopAssist/internal/api/assistant/repository"
	"ShopAssist/internal/api/guideline"
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/engine"
	"ShopAssist/pkg/utils"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversationRepo struct {
	conversations map[string]entity.Conversation
	createErr     error
	updateErr     error
	created       []entity.Conversation
	updated       []entity.Conversation
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{conversations: map[string]entity.Conversation{}}
}

func (s *stubConversationRepo) CreateConversation(_ context.Context, c entity.Conversation) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, c)
	s.conversations[c.ID] = c
	return nil
}

func (s *stubConversationRepo) GetConversationByID(_ context.Context, id string) (entity.Conversation, error) {
	c, ok := s.conversations[id]
	if !ok {
		return entity.Conversation{}, assistant.ErrConversationNotFound
	}
	return c, nil
}

func (s *stubConversationRepo) UpdateConversation(_ context.Context, c entity.Conversation) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, c)
	s.conversations[c.ID] = c
	return nil
}

type stubAssistantRepository struct {
	conversation *stubConversationRepo
}

func (s *stubAssistantRepository) NewClient(_ bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		Conversation: s.conversation,
		Commit:       func() error { return nil },
		Rollback:     func() error { return nil },
	}, nil
}

type stubGuidelineService struct {
	guidelines []entity.Guideline
	err        error
}

func (s *stubGuidelineService) CreateGuideline(_ context.Context, _ guideline.CreateGuidelineRequest) (entity.Guideline, error) {
	return entity.Guideline{}, nil
}
func (s *stubGuidelineService) GetGuidelineByID(_ context.Context, _ string) (entity.Guideline, error) {
	return entity.Guideline{}, nil
}
func (s *stubGuidelineService) GetAllGuidelines(_ context.Context) ([]entity.Guideline, error) {
	return s.guidelines, s.err
}
func (s *stubGuidelineService) GetActiveGuidelines(_ context.Context) ([]entity.Guideline, error) {
	return s.guidelines, s.err
}
func (s *stubGuidelineService) UpdateGuideline(_ context.Context, _ guideline.UpdateGuidelineRequest) error {
	return nil
}
func (s *stubGuidelineService) DeleteGuideline(_ context.Context, _ string) error {
	return nil
}

type stubEngine struct {
	convCtx        engine.ConversationContext
	filtered       []entity.Guideline
	suggestions    []engine.Suggestion
	suggestionsErr error
	readiness      int

	extractHistory []entity.Message
	scoredHistory  []entity.Message
}

func (s *stubEngine) ExtractContext(_ string, history []entity.Message) engine.ConversationContext {
	s.extractHistory = history
	return s.convCtx
}

func (s *stubEngine) FilterGuidelines(_ []entity.Guideline, _ engine.ConversationContext) []entity.Guideline {
	return s.filtered
}

func (s *stubEngine) GenerateSuggestions(_ context.Context, _ string, _ engine.ConversationContext) ([]engine.Suggestion, error) {
	return s.suggestions, s.suggestionsErr
}

func (s *stubEngine) ScorePurchaseReadiness(history []entity.Message, _ []engine.Suggestion) int {
	s.scoredHistory = history
	return s.readiness
}

func (s *stubEngine) UpdateKeywordMapping(_ string, _ engine.KeywordMapping) error {
	return nil
}
func (s *stubEngine) UpdateIntentMapping(_ engine.UserIntent, _ engine.IntentMapping) error {
	return nil
}
func (s *stubEngine) UpdateStageMapping(_ engine.ConversationStage, _ engine.StageMapping) error {
	return nil
}
func (s *stubEngine) Mappings() engine.MappingSnapshot { return engine.MappingSnapshot{} }

func newTestAssistantService(repo *stubConversationRepo, gs *stubGuidelineService, eng *stubEngine) IAssistantService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAssistantService(log, &stubAssistantRepository{conversation: repo}, gs, eng, utils.New())
}

func TestProcessChat_NewConversation(t *testing.T) {
	repo := newStubConversationRepo()
	eng := &stubEngine{
		convCtx: engine.ConversationContext{
			UserIntent:        engine.IntentProductRecommendation,
			Keywords:          []string{"laptop"},
			ShoppingIntent:    engine.ShoppingIntentBrowsing,
			ConversationStage: engine.StageIntroduction,
		},
		filtered: []entity.Guideline{{ID: "g1", Name: "lead", Content: "be helpful", Priority: 5}},
		suggestions: []engine.Suggestion{
			{Product: entity.Product{ID: "p1"}, Confidence: 0.9, Type: engine.SuggestionTypeKeyword},
		},
		readiness: 15,
	}
	svc := newTestAssistantService(repo, &stubGuidelineService{}, eng)

	resp, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{Message: "I'm looking for a laptop"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, engine.IntentProductRecommendation, resp.Context.UserIntent)
	require.Len(t, resp.Guidelines, 1)
	assert.Equal(t, "g1", resp.Guidelines[0].ID)
	assert.Len(t, resp.Suggestions, 1)
	assert.Equal(t, 15, resp.ReadinessScore)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, entity.MessageRoleUser, stored.Messages[0].Role)
	assert.Equal(t, "I'm looking for a laptop", stored.Messages[0].Content)
	assert.Equal(t, "product_recommendation", stored.Context.UserIntent)
	assert.Equal(t, 15, stored.Context.ReadinessScore)
}

func TestProcessChat_ExistingConversation(t *testing.T) {
	repo := newStubConversationRepo()
	repo.conversations["conv1"] = entity.Conversation{
		ID: "conv1",
		Messages: []entity.Message{
			{Role: entity.MessageRoleUser, Content: "hello"},
			{Role: entity.MessageRoleAssistant, Content: "hi!"},
		},
	}
	eng := &stubEngine{convCtx: engine.ConversationContext{ConversationStage: engine.StageDiscovery}}
	svc := newTestAssistantService(repo, &stubGuidelineService{}, eng)

	resp, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{
		ConversationID: "conv1",
		Message:        "show me laptops",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv1", resp.ConversationID)

	assert.Len(t, eng.extractHistory, 2, "context extraction sees the history before the new message")
	assert.Len(t, eng.scoredHistory, 3, "readiness scoring sees the appended message")

	require.Len(t, repo.updated, 1)
	assert.Len(t, repo.updated[0].Messages, 3)
}

func TestProcessChat_UnknownConversation(t *testing.T) {
	svc := newTestAssistantService(newStubConversationRepo(), &stubGuidelineService{}, &stubEngine{})

	_, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{
		ConversationID: "missing",
		Message:        "hello",
	})
	assert.ErrorIs(t, err, assistant.ErrConversationNotFound)
}

func TestProcessChat_GuidelineLoadFailureAborts(t *testing.T) {
	repo := newStubConversationRepo()
	gs := &stubGuidelineService{err: errors.New("db down")}
	svc := newTestAssistantService(repo, gs, &stubEngine{})

	_, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, assistant.ErrLoadGuidelines)
	assert.Empty(t, repo.created, "a failed turn must not persist anything")
}

func TestProcessChat_PersistFailureAborts(t *testing.T) {
	repo := newStubConversationRepo()
	repo.createErr = errors.New("disk full")
	svc := newTestAssistantService(repo, &stubGuidelineService{}, &stubEngine{})

	_, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, assistant.ErrSaveConversation)
}

func TestProcessChat_SuggestionFailureAborts(t *testing.T) {
	repo := newStubConversationRepo()
	eng := &stubEngine{suggestionsErr: errors.New("engine broke")}
	svc := newTestAssistantService(repo, &stubGuidelineService{}, eng)

	_, err := svc.ProcessChat(context.Background(), assistant.ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, assistant.ErrProcessTurn)
	assert.Empty(t, repo.created)
}

func TestGetConversationByID(t *testing.T) {
	repo := newStubConversationRepo()
	repo.conversations["conv1"] = entity.Conversation{ID: "conv1"}
	svc := newTestAssistantService(repo, &stubGuidelineService{}, &stubEngine{})

	c, err := svc.GetConversationByID(context.Background(), "conv1")
	assert.NoError(t, err)
	assert.Equal(t, "conv1", c.ID)

	_, err = svc.GetConversationByID(context.Background(), "nope")
	assert.ErrorIs(t, err, assistant.ErrConversationNotFound)
}
