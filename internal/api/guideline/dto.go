package guideline

type ConditionsRequest struct {
	Intents  []string `json:"intents"`
	Stages   []string `json:"stages"`
	Keywords []string `json:"keywords"`
}

type CreateGuidelineRequest struct {
	Name       string            `json:"name" validate:"required"`
	Content    string            `json:"content" validate:"required"`
	Priority   int               `json:"priority" validate:"required,gte=1,lte=10"`
	Category   string            `json:"category"`
	IsActive   bool              `json:"is_active"`
	Tags       []string          `json:"tags"`
	Conditions ConditionsRequest `json:"conditions"`
}

type UpdateGuidelineRequest struct {
	ID         string            `json:"-" validate:"required"`
	Name       string            `json:"name" validate:"required"`
	Content    string            `json:"content" validate:"required"`
	Priority   int               `json:"priority" validate:"required,gte=1,lte=10"`
	Category   string            `json:"category"`
	IsActive   bool              `json:"is_active"`
	Tags       []string          `json:"tags"`
	Conditions ConditionsRequest `json:"conditions"`
}

type GuidelineResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Content    string            `json:"content"`
	Priority   int               `json:"priority"`
	Category   string            `json:"category"`
	IsActive   bool              `json:"is_active"`
	Tags       []string          `json:"tags"`
	Conditions ConditionsRequest `json:"conditions"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

type GuidelineListResponse struct {
	Guidelines []GuidelineResponse `json:"guidelines"`
	Total      int                 `json:"total"`
}
