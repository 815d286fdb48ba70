package assistantHandler

import (
	assistantService "ShopAssist/internal/api/assistant/service"
	"ShopAssist/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	assistantService assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	assistant.Post("/chat", h.middleware.NewRateLimiter, h.Chat)
	assistant.Get("/conversations/:id", h.GetConversation)

	assistant.Get("/mappings", h.GetMappings)
	assistant.Put("/mappings/keywords/:key", h.middleware.NewTokenMiddleware, h.UpdateKeywordMapping)
	assistant.Put("/mappings/intents/:intent", h.middleware.NewTokenMiddleware, h.UpdateIntentMapping)
	assistant.Put("/mappings/stages/:stage", h.middleware.NewTokenMiddleware, h.UpdateStageMapping)
}
