package catalog

import "ShopAssist/internal/entity"

type SearchProductsRequest struct {
	Query    string  `query:"q"`
	Category string  `query:"category"`
	MinPrice float64 `query:"min_price" validate:"gte=0"`
	MaxPrice float64 `query:"max_price" validate:"gte=0"`
	Limit    int     `query:"limit" validate:"gte=0,lte=50"`
}

type ProductListResponse struct {
	Products []entity.Product `json:"products"`
	Total    int              `json:"total"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
