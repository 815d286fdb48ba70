package guideline

import "ShopAssist/pkg/response"

var (
	ErrGuidelineNotFound = response.NewError(404, "guideline not found")
	ErrInvalidGuideline  = response.NewError(400, "invalid guideline data")
	ErrInvalidPriority   = response.NewError(400, "guideline priority must be between 1 and 10")
	ErrCreateGuideline   = response.NewError(500, "failed to create guideline")
	ErrUpdateGuideline   = response.NewError(500, "failed to update guideline")
	ErrDeleteGuideline   = response.NewError(500, "failed to delete guideline")
	ErrListGuidelines    = response.NewError(500, "failed to list guidelines")
)
