package catalog

import "ShopAssist/pkg/response"

var (
	ErrProductNotFound = response.NewError(404, "product not found")
	ErrSearchFailed    = response.NewError(500, "failed to search products")
	ErrListCategories  = response.NewError(500, "failed to list categories")
)
