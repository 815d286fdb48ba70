package guidelineService

import (
	"ShopAssist/internal/api/guideline"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *guidelineService) CreateGuideline(ctx context.Context, req guideline.CreateGuidelineRequest) (entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Guideline{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Guideline{}, err
	}

	g := entity.Guideline{
		ID:       id,
		Name:     req.Name,
		Content:  req.Content,
		Priority: req.Priority,
		Category: req.Category,
		IsActive: req.IsActive,
		Tags:     req.Tags,
		Conditions: entity.GuidelineConditions{
			Intents:  req.Conditions.Intents,
			Stages:   req.Conditions.Stages,
			Keywords: req.Conditions.Keywords,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := g.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid guideline data")
		return entity.Guideline{}, err
	}

	if err := repo.Guideline.CreateGuideline(ctx, g); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create guideline")
		return entity.Guideline{}, guideline.ErrCreateGuideline
	}

	return g, nil
}

func (s *guidelineService) GetGuidelineByID(ctx context.Context, id string) (entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Guideline{}, err
	}

	g, err := repo.Guideline.GetGuidelineByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get guideline by ID")
		return entity.Guideline{}, err
	}

	return g, nil
}

func (s *guidelineService) GetAllGuidelines(ctx context.Context) ([]entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	guidelines, err := repo.Guideline.GetAllGuidelines(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get guidelines")
		return nil, guideline.ErrListGuidelines
	}

	return guidelines, nil
}

func (s *guidelineService) GetActiveGuidelines(ctx context.Context) ([]entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	guidelines, err := repo.Guideline.GetActiveGuidelines(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get active guidelines")
		return nil, guideline.ErrListGuidelines
	}

	return guidelines, nil
}

func (s *guidelineService) UpdateGuideline(ctx context.Context, req guideline.UpdateGuidelineRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	g := entity.Guideline{
		ID:       req.ID,
		Name:     req.Name,
		Content:  req.Content,
		Priority: req.Priority,
		Category: req.Category,
		IsActive: req.IsActive,
		Tags:     req.Tags,
		Conditions: entity.GuidelineConditions{
			Intents:  req.Conditions.Intents,
			Stages:   req.Conditions.Stages,
			Keywords: req.Conditions.Keywords,
		},
		UpdatedAt: time.Now(),
	}

	if err := g.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid guideline data")
		return err
	}

	if err := repo.Guideline.UpdateGuideline(ctx, g); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         req.ID,
			"error":      err.Error(),
		}).Error("Failed to update guideline")
		return err
	}

	return nil
}

func (s *guidelineService) DeleteGuideline(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.guidelineRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Guideline.DeleteGuideline(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete guideline")
		return err
	}

	return nil
}
