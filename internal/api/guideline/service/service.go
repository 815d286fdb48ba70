package guidelineService

import (
	"ShopAssist/internal/api/guideline"
	guidelineRepository "ShopAssist/internal/api/guideline/repository"
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IGuidelineService interface {
	CreateGuideline(ctx context.Context, req guideline.CreateGuidelineRequest) (entity.Guideline, error)
	GetGuidelineByID(ctx context.Context, id string) (entity.Guideline, error)
	GetAllGuidelines(ctx context.Context) ([]entity.Guideline, error)
	GetActiveGuidelines(ctx context.Context) ([]entity.Guideline, error)
	UpdateGuideline(ctx context.Context, req guideline.UpdateGuidelineRequest) error
	DeleteGuideline(ctx context.Context, id string) error
}

type guidelineService struct {
	log                 *logrus.Logger
	guidelineRepository guidelineRepository.Repository
	utils               utils.IUtils
}

func NewGuidelineService(log *logrus.Logger, gr guidelineRepository.Repository, utils utils.IUtils) IGuidelineService {
	return &guidelineService{
		log:                 log,
		guidelineRepository: gr,
		utils:               utils,
	}
}
