package catalogService

import (
	catalogRepository "ShopAssist/internal/api/catalog/repository"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"ShopAssist/pkg/engine"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const searchCacheTTL = 5 * time.Minute

// Search serves catalog lookups through a short-lived redis cache so that
// repeated strategy lookups within a conversation do not hammer postgres.
func (s *catalogService) Search(ctx context.Context, params engine.SearchParams) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	cacheKey := searchCacheKey(params)

	if cached, err := s.cache.GetCache(ctx, cacheKey); err == nil {
		var products searchResult
		if err := jsoniter.UnmarshalFromString(cached, &products); err == nil {
			return products, nil
		}
	}

	repo, err := s.getClient()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	filter := catalogRepository.SearchFilter{
		Query:    params.Query,
		Category: params.Category,
		Limit:    params.Limit,
	}
	if params.MinPrice != nil {
		filter.MinPrice = *params.MinPrice
	}
	if params.MaxPrice != nil {
		filter.MaxPrice = *params.MaxPrice
	}

	products, err := repo.Product.SearchProducts(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"query":      params.Query,
			"category":   params.Category,
			"error":      err.Error(),
		}).Error("Failed to search products")
		return nil, err
	}

	if serialized, err := jsoniter.MarshalToString(products); err == nil {
		if err := s.cache.SetCache(ctx, cacheKey, serialized, searchCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache search result")
		}
	}

	return products, nil
}

func searchCacheKey(params engine.SearchParams) string {
	minPrice, maxPrice := -1.0, -1.0
	if params.MinPrice != nil {
		minPrice = *params.MinPrice
	}
	if params.MaxPrice != nil {
		maxPrice = *params.MaxPrice
	}
	return fmt.Sprintf("catalog:search:%s:%s:%g:%g:%d",
		params.Query, params.Category, minPrice, maxPrice, params.Limit)
}
