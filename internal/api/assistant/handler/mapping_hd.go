package assistantHandler

import (
	"ShopAssist/internal/api/assistant"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/handlerUtil"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AssistantHandler) GetMappings(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	mappings := h.assistantService.GetMappings(c)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, mappings)
	}
}

func (h *AssistantHandler) UpdateKeywordMapping(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	key := ctx.Params("key")
	if key == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("mapping key is required"), ctx.Path())
	}

	var req assistant.UpdateKeywordMappingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.assistantService.UpdateKeywordMapping(c, key, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_keyword_mapping")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Keyword mapping updated successfully",
		})
	}
}

func (h *AssistantHandler) UpdateIntentMapping(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	intent := ctx.Params("intent")
	if intent == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("intent is required"), ctx.Path())
	}

	var req assistant.UpdateIntentMappingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.assistantService.UpdateIntentMapping(c, intent, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_intent_mapping")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Intent mapping updated successfully",
		})
	}
}

func (h *AssistantHandler) UpdateStageMapping(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	stage := ctx.Params("stage")
	if stage == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("stage is required"), ctx.Path())
	}

	var req assistant.UpdateStageMappingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.assistantService.UpdateStageMapping(c, stage, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_stage_mapping")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Stage mapping updated successfully",
		})
	}
}
