package guidelineHandler

import (
	guidelineService "ShopAssist/internal/api/guideline/service"
	"ShopAssist/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GuidelineHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	guidelineService guidelineService.IGuidelineService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	guidelineService guidelineService.IGuidelineService,
) *GuidelineHandler {
	return &GuidelineHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		guidelineService: guidelineService,
	}
}

func (h *GuidelineHandler) Start(srv fiber.Router) {
	guidelines := srv.Group("/guidelines")

	guidelines.Post("/", h.middleware.NewTokenMiddleware, h.CreateGuideline)
	guidelines.Get("/", h.GetAllGuidelines)
	guidelines.Get("/active", h.GetActiveGuidelines)
	guidelines.Get("/:id", h.GetGuidelineByID)
	guidelines.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateGuideline)
	guidelines.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteGuideline)
}
