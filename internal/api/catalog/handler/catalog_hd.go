package catalogHandler

import (
	"ShopAssist/internal/api/catalog"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/engine"
	"ShopAssist/pkg/handlerUtil"
	"ShopAssist/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CatalogHandler) SearchProducts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req catalog.SearchProductsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query_params")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"query":      req.Query,
		"category":   req.Category,
	}).Debug("Processing product search request")

	params := engine.SearchParams{
		Query:    req.Query,
		Category: req.Category,
		Limit:    req.Limit,
	}
	if req.MinPrice > 0 {
		params.MinPrice = &req.MinPrice
	}
	if req.MaxPrice > 0 {
		params.MaxPrice = &req.MaxPrice
	}

	products, err := h.catalogService.Search(c, params)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search_products")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, catalog.ProductListResponse{
			Products: products,
			Total:    len(products),
		})
	}
}

func (h *CatalogHandler) GetProductByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("product ID is required"), ctx.Path())
	}

	product, err := h.catalogService.GetByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_product")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, product)
	}
}

func (h *CatalogHandler) ListCategories(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	categories, err := h.catalogService.ListCategories(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_categories")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, catalog.CategoryListResponse{
			Categories: categories,
		})
	}
}
