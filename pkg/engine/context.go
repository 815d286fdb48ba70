package engine

import (
	"ShopAssist/internal/entity"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minKeywordLength = 6

type intentRule struct {
	intent   UserIntent
	keywords []string
}

// Order matters: a message can match several rules and the earlier one wins.
var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", "hi ", "hi!", "hey", "good morning", "good afternoon", "good evening"}},
	{IntentHelpRequest, []string{"help", "assist", "how do i", "how can i", "guide me"}},
	{IntentPricingInquiry, []string{"price", "cost", "how much", "pricing", "expensive"}},
	{IntentDemoRequest, []string{"demo", "demonstration", "trial", "try it", "show me how"}},
	{IntentFeatureInquiry, []string{"feature", "spec", "specification", "does it", "can it", "battery", "screen", "camera quality"}},
	{IntentComparisonRequest, []string{"compare", "comparison", " vs ", "versus", "difference between", "which one", "better than"}},
	{IntentPurchaseIntent, []string{"buy", "purchase", "order", "checkout", "add to cart", "i'll take", "i will take"}},
	{IntentObjectionHandling, []string{"too expensive", "not sure", "worried", "concern", "hesitant", "doubt", "risky"}},
	{IntentReviewInquiry, []string{"review", "rating", "feedback", "what do people", "opinions"}},
	{IntentAvailabilityInquiry, []string{"in stock", "available", "availability", "when can i get", "delivery time"}},
	{IntentServiceInquiry, []string{"warranty", "repair", "return policy", "refund", "shipping", "delivery", "support plan"}},
	{IntentProductRecommendation, []string{"recommend", "suggest", "looking for", "i need a", "i need an", "i want a", "searching for"}},
}

var shoppingIntentRules = []struct {
	intent   ShoppingIntent
	keywords []string
}{
	{ShoppingIntentBuying, []string{"buy", "purchase", "order", "checkout", "take it", "add to cart"}},
	{ShoppingIntentComparing, []string{"compare", "versus", " vs ", "difference", "better", "which one"}},
	{ShoppingIntentSupport, []string{"help", "problem", "issue", "broken", "return", "not working", "complaint"}},
}

// Curated vocabulary for keyword extraction: sales terms plus product
// category terms. Short tokens outside this list are dropped.
var keywordVocabulary = map[string]bool{
	"price": true, "cost": true, "cheap": true, "deal": true, "discount": true,
	"sale": true, "offer": true, "budget": true, "premium": true, "luxury": true,
	"warranty": true, "shipping": true, "delivery": true, "stock": true,
	"review": true, "rating": true, "brand": true, "model": true, "spec": true,
	"phone": true, "smartphone": true, "laptop": true, "tablet": true,
	"camera": true, "watch": true, "headphones": true, "earbuds": true,
	"charger": true, "dress": true, "shirt": true, "shoes": true, "jeans": true,
	"jacket": true, "bag": true, "perfume": true, "makeup": true, "lipstick": true,
	"skincare": true, "sofa": true, "table": true, "chair": true, "mattress": true,
	"lamp": true, "bike": true, "yoga": true, "dumbbell": true, "book": true,
	"novel": true, "vitamin": true, "toy": true, "lego": true, "tire": true,
	"coffee": true, "snack": true, "gift": true,
}

// Fixed multi-word model patterns emitted as single underscored tokens.
var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`iphone\s+\d+(?:\s+pro(?:\s+max)?)?`),
	regexp.MustCompile(`galaxy\s+[sz]\d+(?:\s+ultra)?`),
	regexp.MustCompile(`macbook\s+(?:pro|air)`),
	regexp.MustCompile(`pixel\s+\d+(?:\s+pro)?`),
	regexp.MustCompile(`surface\s+(?:pro|laptop)`),
	regexp.MustCompile(`airpods\s+(?:pro|max)`),
}

var (
	numericTokenPattern  = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	currencyTokenPattern = regexp.MustCompile(`^\$\d[\d,]*(?:\.\d+)?$`)
)

func (e *engine) ExtractContext(message string, history []entity.Message) ConversationContext {
	keywords := extractKeywords(message)
	userTurns := countUserTurns(history) + 1

	convCtx := ConversationContext{
		UserIntent:        classifyIntent(message),
		Keywords:          keywords,
		ShoppingIntent:    classifyShoppingIntent(message),
		BudgetRange:       extractBudgetRange(message),
		ConversationStage: deriveStage(userTurns),
		IsTopicChange:     detectTopicChange(keywords, history),
	}

	return convCtx
}

func classifyIntent(message string) UserIntent {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return IntentUnknown
	}

	// Pad so rules with embedded spaces (" vs ", "hi ") can match at the edges.
	padded := " " + text + " "
	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(padded, keyword) {
				return rule.intent
			}
		}
	}

	return IntentGeneralInquiry
}

func classifyShoppingIntent(message string) ShoppingIntent {
	padded := " " + strings.ToLower(strings.TrimSpace(message)) + " "
	for _, rule := range shoppingIntentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(padded, keyword) {
				return rule.intent
			}
		}
	}

	return ShoppingIntentBrowsing
}

func extractKeywords(message string) []string {
	text := cleanText(message)

	seen := make(map[string]bool)
	var keywords []string
	appendKeyword := func(token string) {
		if !seen[token] {
			seen[token] = true
			keywords = append(keywords, token)
		}
	}

	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,!?;:\"'()")
		if token == "" {
			continue
		}

		switch {
		case keywordVocabulary[token]:
			appendKeyword(token)
		case numericTokenPattern.MatchString(token):
			appendKeyword(token)
		case currencyTokenPattern.MatchString(token):
			appendKeyword(token)
		case len(token) >= minKeywordLength:
			// Catch-all for product and brand names outside the vocabulary.
			appendKeyword(token)
		}
	}

	for _, pattern := range modelPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			appendKeyword(strings.Join(strings.Fields(match), "_"))
		}
	}

	return keywords
}

func extractBudgetRange(message string) string {
	text := strings.ToLower(message)

	if m := budgetQualifierPattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			return bucketFor(amount)
		}
	}

	if m := budgetRangePattern.FindStringSubmatch(text); m != nil {
		low, okLow := parseAmount(m[1])
		high, okHigh := parseAmount(m[2])
		if okLow && okHigh {
			return formatAmount(low) + "-" + formatAmount(high)
		}
	}

	if m := budgetExplicitPattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			return bucketFor(amount)
		}
	}

	for _, term := range []string{"cheap", "budget", "affordable"} {
		if strings.Contains(text, term) {
			return "budget-friendly"
		}
	}
	for _, term := range []string{"premium", "luxury", "expensive", "high-end"} {
		if strings.Contains(text, term) {
			return "premium"
		}
	}

	return ""
}

var (
	budgetQualifierPattern = regexp.MustCompile(`(?:under|below|max(?:imum)?|budget of|around|about)\s*\$?\s*(\d[\d,]*(?:\.\d+)?)`)
	budgetRangePattern     = regexp.MustCompile(`\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(?:to|-)\s*\$?\s*(\d[\d,]*(?:\.\d+)?)`)
	budgetExplicitPattern  = regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d+)?)`)
)

func parseAmount(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func bucketFor(amount float64) string {
	switch {
	case amount <= 100:
		return "under-100"
	case amount <= 300:
		return "100-300"
	case amount <= 500:
		return "300-500"
	case amount <= 1000:
		return "500-1000"
	case amount <= 2000:
		return "1000-2000"
	default:
		return "over-2000"
	}
}

func deriveStage(userTurns int) ConversationStage {
	switch {
	case userTurns <= 1:
		return StageIntroduction
	case userTurns <= 3:
		return StageDiscovery
	case userTurns <= 5:
		return StageRecommendation
	case userTurns <= 7:
		return StagePresentation
	case userTurns <= 9:
		return StageObjectionHandling
	default:
		return StageClosing
	}
}

func countUserTurns(history []entity.Message) int {
	count := 0
	for _, m := range history {
		if m.Role == entity.MessageRoleUser {
			count++
		}
	}
	return count
}

func cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	return result
}
