package engine

import (
	"ShopAssist/internal/entity"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	maxSuggestions     = 5
	defaultSearchLimit = 10
	popularSampleSize  = 12
	perKeywordLimit    = 2
	keywordLookupCap   = 3
	contextualLimit    = 3
	intentLimit        = 3
	minDiscount        = 10.0
	ratingTieEpsilon   = 0.2
)

type contextualRule struct {
	messagePatterns []string
	searchTerms     []string
	brandFilter     string
	categoryFilter  string
	reason          string
	confidence      float64
}

// Ordered: only the first matching rule is applied per message.
var contextualRules = []contextualRule{
	{
		messagePatterns: []string{"photography", "photo", "taking pictures", "camera"},
		searchTerms:     []string{"smartphone", "camera"},
		categoryFilter:  "smartphones",
		reason:          "Strong camera for photography",
		confidence:      0.9,
	},
	{
		messagePatterns: []string{"iphone", "apple"},
		searchTerms:     []string{"iphone"},
		brandFilter:     "Apple",
		reason:          "Matches your interest in Apple products",
		confidence:      0.9,
	},
	{
		messagePatterns: []string{"gaming", "gamer", "video games"},
		searchTerms:     []string{"gaming laptop", "laptop"},
		categoryFilter:  "laptops",
		reason:          "Performance that handles gaming well",
		confidence:      0.85,
	},
	{
		messagePatterns: []string{"work", "business", "office", "productivity"},
		searchTerms:     []string{"laptop"},
		categoryFilter:  "laptops",
		reason:          "Reliable pick for work and productivity",
		confidence:      0.8,
	},
	{
		messagePatterns: []string{"workout", "fitness", "running", "exercise"},
		searchTerms:     []string{"fitness", "sports"},
		reason:          "Good fit for your training routine",
		confidence:      0.8,
	},
	{
		messagePatterns: []string{"gift", "present", "birthday"},
		searchTerms:     []string{"gift", "perfume", "watch"},
		reason:          "A well reviewed gift choice",
		confidence:      0.75,
	},
}

type budgetBounds struct {
	min *float64
	max *float64
}

func (b budgetBounds) active() bool {
	return b.min != nil || b.max != nil
}

func (b budgetBounds) midpoint() (float64, bool) {
	switch {
	case b.min != nil && b.max != nil:
		return (*b.min + *b.max) / 2, true
	case b.max != nil:
		return *b.max, true
	case b.min != nil:
		return *b.min, true
	default:
		return 0, false
	}
}

func (b budgetBounds) contains(price float64) bool {
	if b.min != nil && price < *b.min {
		return false
	}
	if b.max != nil && price > *b.max {
		return false
	}
	return true
}

// GenerateSuggestions runs the strategy pipeline for one turn. A failing
// strategy contributes nothing; it never aborts the pipeline. On a topic
// change only the context-sensitive strategies run, so stale-category
// suggestions are not carried forward.
func (e *engine) GenerateSuggestions(ctx context.Context, message string, convCtx ConversationContext) ([]Suggestion, error) {
	snapshot := e.mappings.Snapshot()
	bounds := resolveBudgetBounds(convCtx.BudgetRange)

	var all []Suggestion
	run := func(name string, strategy func() ([]Suggestion, error)) {
		suggestions, err := strategy()
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"strategy": name,
				"error":    err.Error(),
			}).Warn("Suggestion strategy failed, continuing without it")
			return
		}
		all = append(all, suggestions...)
	}

	run("contextual", func() ([]Suggestion, error) {
		return e.contextualSuggestions(ctx, message, bounds)
	})
	run("keyword", func() ([]Suggestion, error) {
		return e.keywordSuggestions(ctx, convCtx.Keywords, snapshot, bounds)
	})
	run("intent", func() ([]Suggestion, error) {
		return e.intentSuggestions(ctx, convCtx.UserIntent, snapshot, bounds)
	})

	if !convCtx.IsTopicChange {
		run("stage", func() ([]Suggestion, error) {
			return e.stageSuggestions(ctx, convCtx.ConversationStage, snapshot)
		})
		if len(all) == 0 {
			run("popular", func() ([]Suggestion, error) {
				return e.popularFallback(ctx)
			})
		}
	}

	return mergeSuggestions(all), nil
}

func (e *engine) contextualSuggestions(ctx context.Context, message string, bounds budgetBounds) ([]Suggestion, error) {
	text := strings.ToLower(message)

	var rule *contextualRule
	for i := range contextualRules {
		for _, pattern := range contextualRules[i].messagePatterns {
			if strings.Contains(text, pattern) {
				rule = &contextualRules[i]
				break
			}
		}
		if rule != nil {
			break
		}
	}
	if rule == nil {
		return nil, nil
	}

	var candidates []entity.Product
	for _, term := range rule.searchTerms {
		products, err := e.catalog.Search(ctx, SearchParams{
			Query:    term,
			Category: rule.categoryFilter,
			Limit:    defaultSearchLimit,
		})
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"term":  term,
				"error": err.Error(),
			}).Warn("Contextual catalog lookup failed")
			continue
		}
		candidates = append(candidates, products...)
	}

	if rule.brandFilter != "" {
		var branded []entity.Product
		for _, p := range candidates {
			if strings.EqualFold(p.Brand, rule.brandFilter) {
				branded = append(branded, p)
			}
		}
		candidates = branded
	}

	filtered, annotation := applyBudget(candidates, bounds)
	ranked := rankProducts(filtered, bounds)

	var suggestions []Suggestion
	for _, p := range takeProducts(ranked, contextualLimit) {
		suggestions = append(suggestions, Suggestion{
			Product:    p,
			Reason:     rule.reason + annotation,
			Confidence: rule.confidence,
			Type:       SuggestionTypeContextual,
		})
	}
	return suggestions, nil
}

func (e *engine) keywordSuggestions(ctx context.Context, keywords []string, snapshot MappingSnapshot, bounds budgetBounds) ([]Suggestion, error) {
	var suggestions []Suggestion

	limit := keywordLookupCap
	if len(keywords) < limit {
		limit = len(keywords)
	}

	for _, keyword := range keywords[:limit] {
		mapping, mapped := snapshot.Keywords[keyword]

		var candidates []entity.Product
		var lookupErr error

		switch {
		case mapped && len(mapping.Categories) > 0:
			candidates, lookupErr = e.searchCategories(ctx, mapping.Categories)
			if lookupErr == nil && len(candidates) == 0 {
				candidates, lookupErr = e.searchTerms(ctx, mapping.SearchTerms)
			}
		case mapped:
			candidates, lookupErr = e.searchTerms(ctx, mapping.SearchTerms)
		default:
			// Unmapped keywords still get a direct free-text lookup; model
			// tokens like iphone_15_pro search as their spaced form.
			query := strings.ReplaceAll(keyword, "_", " ")
			candidates, lookupErr = e.catalog.Search(ctx, SearchParams{Query: query, Limit: defaultSearchLimit})
		}
		if lookupErr != nil {
			e.log.WithFields(logrus.Fields{
				"keyword": keyword,
				"error":   lookupErr.Error(),
			}).Warn("Keyword catalog lookup failed")
			continue
		}

		filtered, annotation := applyBudget(candidates, bounds)
		inStock := filtered[:0:0]
		for _, p := range filtered {
			if p.InStock() {
				inStock = append(inStock, p)
			}
		}
		sort.SliceStable(inStock, func(i, j int) bool {
			return inStock[i].Rating > inStock[j].Rating
		})

		confidence := 0.4
		if mapped {
			confidence = 0.5 + 0.05*float64(mapping.Priority)
			if confidence > 0.9 {
				confidence = 0.9
			}
		}

		for _, p := range takeProducts(inStock, perKeywordLimit) {
			suggestions = append(suggestions, Suggestion{
				Product:    p,
				Reason:     "Matches your interest in " + strings.ReplaceAll(keyword, "_", " ") + annotation,
				Confidence: confidence,
				Type:       SuggestionTypeKeyword,
			})
		}
	}

	return suggestions, nil
}

func (e *engine) intentSuggestions(ctx context.Context, intent UserIntent, snapshot MappingSnapshot, bounds budgetBounds) ([]Suggestion, error) {
	mapping, ok := snapshot.Intents[intent]
	if !ok {
		return nil, nil
	}

	var candidates []entity.Product
	var err error
	if mapping.Priority == LookupCategoryFirst {
		candidates, err = e.searchCategories(ctx, mapping.Categories)
		if err == nil && len(candidates) == 0 {
			candidates, err = e.searchTerms(ctx, mapping.SearchTerms)
		}
	} else {
		candidates, err = e.searchTerms(ctx, mapping.SearchTerms)
	}
	if err != nil {
		return nil, err
	}

	filtered, annotation := applyBudget(candidates, bounds)
	ranked := rankProducts(filtered, bounds)

	var suggestions []Suggestion
	for _, p := range takeProducts(ranked, intentLimit) {
		suggestions = append(suggestions, Suggestion{
			Product:    p,
			Reason:     "Fits what you are asking about" + annotation,
			Confidence: mapping.Confidence,
			Type:       SuggestionTypeIntent,
		})
	}
	return suggestions, nil
}

func (e *engine) stageSuggestions(ctx context.Context, stage ConversationStage, snapshot MappingSnapshot) ([]Suggestion, error) {
	mapping, ok := snapshot.Stages[stage]
	if !ok {
		return nil, nil
	}

	var suggestions []Suggestion
	var err error

	switch mapping.Strategy {
	case StrategyPopular:
		suggestions, err = e.popularProducts(ctx, mapping.Limit)
	case StrategyTopRated:
		suggestions, err = e.topRatedProducts(ctx, "", mapping.Limit)
	case StrategyDiscounted:
		suggestions, err = e.discountedProducts(ctx, mapping.Limit)
	case StrategyFeatured:
		half := mapping.Limit / 2
		var rated, popular []Suggestion
		rated, err = e.topRatedProducts(ctx, "", half)
		if err == nil {
			popular, err = e.popularProducts(ctx, mapping.Limit-len(rated))
			suggestions = append(rated, popular...)
		}
	case StrategyMixed:
		third := (mapping.Limit + 2) / 3
		var popular, rated, discounted []Suggestion
		popular, err = e.popularProducts(ctx, third)
		if err == nil {
			rated, err = e.topRatedProducts(ctx, "", third)
		}
		if err == nil {
			discounted, err = e.discountedProducts(ctx, third)
		}
		suggestions = append(append(popular, rated...), discounted...)
	}
	if err != nil {
		return nil, err
	}

	// The stage framing deliberately overrides item-level provenance: every
	// suggestion in the batch carries the stage's reason and confidence.
	for i := range suggestions {
		suggestions[i].Reason = mapping.Reason
		suggestions[i].Confidence = mapping.Confidence
		suggestions[i].Type = SuggestionTypeStage
	}
	if len(suggestions) > mapping.Limit {
		suggestions = suggestions[:mapping.Limit]
	}
	return suggestions, nil
}

func (e *engine) popularFallback(ctx context.Context) ([]Suggestion, error) {
	return e.popularProducts(ctx, contextualLimit)
}

func (e *engine) popularProducts(ctx context.Context, n int) ([]Suggestion, error) {
	products, err := e.catalog.Search(ctx, SearchParams{Limit: popularSampleSize})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating > products[j].Rating
	})

	var suggestions []Suggestion
	for _, p := range takeProducts(products, n) {
		suggestions = append(suggestions, Suggestion{
			Product:    p,
			Reason:     "Popular with our customers",
			Confidence: 0.4,
			Type:       SuggestionTypePopular,
		})
	}
	return suggestions, nil
}

func (e *engine) topRatedProducts(ctx context.Context, category string, n int) ([]Suggestion, error) {
	products, err := e.catalog.Search(ctx, SearchParams{Category: category, Limit: popularSampleSize})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating > products[j].Rating
	})

	var suggestions []Suggestion
	for _, p := range takeProducts(products, n) {
		suggestions = append(suggestions, Suggestion{
			Product:    p,
			Reason:     "Among our highest rated products",
			Confidence: 0.5,
			Type:       SuggestionTypeRelated,
		})
	}
	return suggestions, nil
}

func (e *engine) discountedProducts(ctx context.Context, n int) ([]Suggestion, error) {
	products, err := e.catalog.Search(ctx, SearchParams{Limit: popularSampleSize * 2})
	if err != nil {
		return nil, err
	}

	discounted := products[:0:0]
	for _, p := range products {
		if p.DiscountPercentage >= minDiscount {
			discounted = append(discounted, p)
		}
	}
	sort.SliceStable(discounted, func(i, j int) bool {
		return discounted[i].DiscountPercentage > discounted[j].DiscountPercentage
	})

	var suggestions []Suggestion
	for _, p := range takeProducts(discounted, n) {
		suggestions = append(suggestions, Suggestion{
			Product:    p,
			Reason:     "On discount right now",
			Confidence: 0.5,
			Type:       SuggestionTypeRelated,
		})
	}
	return suggestions, nil
}

func (e *engine) searchCategories(ctx context.Context, categories []string) ([]entity.Product, error) {
	var candidates []entity.Product
	for _, category := range categories {
		products, err := e.catalog.Search(ctx, SearchParams{Category: category, Limit: defaultSearchLimit})
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, products...)
	}
	return candidates, nil
}

func (e *engine) searchTerms(ctx context.Context, terms []string) ([]entity.Product, error) {
	var candidates []entity.Product
	for _, term := range terms {
		products, err := e.catalog.Search(ctx, SearchParams{Query: term, Limit: defaultSearchLimit})
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, products...)
	}
	return candidates, nil
}

// applyBudget filters candidates to the active budget bounds. When the filter
// would leave nothing, the closest one or two candidates outside the bounds
// are kept instead and the reason annotation says so.
func applyBudget(products []entity.Product, bounds budgetBounds) ([]entity.Product, string) {
	if !bounds.active() || len(products) == 0 {
		return products, ""
	}

	within := products[:0:0]
	for _, p := range products {
		if bounds.contains(p.Price) {
			within = append(within, p)
		}
	}
	if len(within) > 0 {
		return within, ", within your budget"
	}

	closest := closestToBudget(products, bounds, 2)
	annotation := ", closest option above budget"
	if mid, ok := bounds.midpoint(); ok && len(closest) > 0 && closest[0].Price < mid {
		annotation = ", closest option below budget"
	}
	return closest, annotation
}

func closestToBudget(products []entity.Product, bounds budgetBounds, n int) []entity.Product {
	mid, ok := bounds.midpoint()
	if !ok {
		return takeProducts(products, n)
	}

	sorted := append([]entity.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].Price-mid) < math.Abs(sorted[j].Price-mid)
	})
	return takeProducts(sorted, n)
}

// rankProducts orders candidates before truncation: in-stock first, then
// rating descending with ties within 0.2 broken by price, then price
// closeness to the budget midpoint, else ascending price.
func rankProducts(products []entity.Product, bounds budgetBounds) []entity.Product {
	mid, hasMid := bounds.midpoint()

	sorted := append([]entity.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.InStock() != b.InStock() {
			return a.InStock()
		}
		if diff := a.Rating - b.Rating; math.Abs(diff) > ratingTieEpsilon {
			return diff > 0
		}
		if hasMid {
			return math.Abs(a.Price-mid) < math.Abs(b.Price-mid)
		}
		return a.Price < b.Price
	})
	return sorted
}

// mergeSuggestions sorts by confidence descending, drops duplicate product
// ids keeping the first survivor, and caps the list.
func mergeSuggestions(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	seen := make(map[string]bool, len(suggestions))
	var merged []Suggestion
	for _, s := range suggestions {
		if seen[s.Product.ID] {
			continue
		}
		seen[s.Product.ID] = true
		merged = append(merged, s)
		if len(merged) == maxSuggestions {
			break
		}
	}
	return merged
}

func takeProducts(products []entity.Product, n int) []entity.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func resolveBudgetBounds(budgetRange string) budgetBounds {
	switch budgetRange {
	case "":
		return budgetBounds{}
	case "under-100":
		return budgetBounds{max: floatPtr(100)}
	case "100-300":
		return budgetBounds{min: floatPtr(100), max: floatPtr(300)}
	case "300-500":
		return budgetBounds{min: floatPtr(300), max: floatPtr(500)}
	case "500-1000":
		return budgetBounds{min: floatPtr(500), max: floatPtr(1000)}
	case "1000-2000":
		return budgetBounds{min: floatPtr(1000), max: floatPtr(2000)}
	case "over-2000":
		return budgetBounds{min: floatPtr(2000)}
	case "budget-friendly":
		return budgetBounds{max: floatPtr(300)}
	case "premium":
		return budgetBounds{min: floatPtr(800)}
	}

	// Explicit "min-max" ranges from the extractor.
	parts := strings.SplitN(budgetRange, "-", 2)
	if len(parts) == 2 {
		low, okLow := parseAmount(parts[0])
		high, okHigh := parseAmount(parts[1])
		if okLow && okHigh {
			return budgetBounds{min: &low, max: &high}
		}
	}
	return budgetBounds{}
}

func floatPtr(v float64) *float64 {
	return &v
}
