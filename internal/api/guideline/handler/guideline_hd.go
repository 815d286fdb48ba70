package guidelineHandler

import (
	"ShopAssist/internal/api/guideline"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/handlerUtil"
	"ShopAssist/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func toGuidelineResponse(g entity.Guideline) guideline.GuidelineResponse {
	return guideline.GuidelineResponse{
		ID:       g.ID,
		Name:     g.Name,
		Content:  g.Content,
		Priority: g.Priority,
		Category: g.Category,
		IsActive: g.IsActive,
		Tags:     g.Tags,
		Conditions: guideline.ConditionsRequest{
			Intents:  g.Conditions.Intents,
			Stages:   g.Conditions.Stages,
			Keywords: g.Conditions.Keywords,
		},
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *GuidelineHandler) CreateGuideline(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create guideline request")

	var req guideline.CreateGuidelineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	created, err := h.guidelineService.CreateGuideline(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_guideline")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, toGuidelineResponse(created))
	}
}

func (h *GuidelineHandler) GetGuidelineByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("guideline ID is required"), ctx.Path())
	}

	g, err := h.guidelineService.GetGuidelineByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_guideline")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, toGuidelineResponse(g))
	}
}

func (h *GuidelineHandler) GetAllGuidelines(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	guidelines, err := h.guidelineService.GetAllGuidelines(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_guidelines")
	}

	return h.respondGuidelineList(ctx, c, errHandler, guidelines)
}

func (h *GuidelineHandler) GetActiveGuidelines(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	guidelines, err := h.guidelineService.GetActiveGuidelines(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_active_guidelines")
	}

	return h.respondGuidelineList(ctx, c, errHandler, guidelines)
}

func (h *GuidelineHandler) respondGuidelineList(ctx *fiber.Ctx, c context.Context, errHandler *handlerUtil.ErrorHandler, guidelines []entity.Guideline) error {
	responses := make([]guideline.GuidelineResponse, 0, len(guidelines))
	for _, g := range guidelines {
		responses = append(responses, toGuidelineResponse(g))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, guideline.GuidelineListResponse{
			Guidelines: responses,
			Total:      len(responses),
		})
	}
}

func (h *GuidelineHandler) UpdateGuideline(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req guideline.UpdateGuidelineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}
	req.ID = ctx.Params("id")

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.guidelineService.UpdateGuideline(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_guideline")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Guideline updated successfully",
		})
	}
}

func (h *GuidelineHandler) DeleteGuideline(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("guideline ID is required"), ctx.Path())
	}

	if err := h.guidelineService.DeleteGuideline(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_guideline")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Guideline deleted successfully",
		})
	}
}
