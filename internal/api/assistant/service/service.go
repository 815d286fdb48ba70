package assistantService

import (
	"ShopAssist/internal/api/assistant"
	assistantRepository "ShopAssist/internal/api/assistant/repository"
	guidelineService "ShopAssist/internal/api/guideline/service"
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/engine"
	"ShopAssist/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAssistantService interface {
	ProcessChat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error)
	GetConversationByID(ctx context.Context, id string) (entity.Conversation, error)

	UpdateKeywordMapping(ctx context.Context, key string, req assistant.UpdateKeywordMappingRequest) error
	UpdateIntentMapping(ctx context.Context, intent string, req assistant.UpdateIntentMappingRequest) error
	UpdateStageMapping(ctx context.Context, stage string, req assistant.UpdateStageMappingRequest) error
	GetMappings(ctx context.Context) assistant.MappingsResponse
}

type assistantService struct {
	log                 *logrus.Logger
	assistantRepository assistantRepository.Repository
	guidelineService    guidelineService.IGuidelineService
	engine              engine.IEngine
	utils               utils.IUtils
}

func NewAssistantService(
	log *logrus.Logger,
	ar assistantRepository.Repository,
	gs guidelineService.IGuidelineService,
	eng engine.IEngine,
	utils utils.IUtils,
) IAssistantService {
	return &assistantService{
		log:                 log,
		assistantRepository: ar,
		guidelineService:    gs,
		engine:              eng,
		utils:               utils,
	}
}
