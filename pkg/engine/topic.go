package engine

import "ShopAssist/internal/entity"

const topicHistoryWindow = 3

type productCategory struct {
	name     string
	keywords map[string]bool
}

// Fixed taxonomy, checked in order so category resolution is deterministic.
var topicTaxonomy = []productCategory{
	{"electronics", setOf("smartphone", "phone", "laptop", "computer", "tablet", "headphones", "earbuds", "camera", "tv", "monitor", "charger", "console")},
	{"fashion", setOf("dress", "shirt", "shoes", "sneakers", "jeans", "jacket", "skirt", "bag", "clothing", "outfit")},
	{"beauty", setOf("makeup", "lipstick", "skincare", "moisturizer", "perfume", "fragrance", "shampoo", "cosmetics")},
	{"home", setOf("furniture", "sofa", "table", "chair", "mattress", "lamp", "kitchen", "decor", "curtains")},
	{"sports", setOf("fitness", "gym", "running", "bike", "bicycle", "yoga", "dumbbell", "treadmill", "football")},
	{"books", setOf("book", "novel", "reading", "ebook", "textbook")},
	{"health", setOf("vitamin", "supplement", "medicine", "protein", "thermometer")},
	{"toys", setOf("toy", "lego", "doll", "puzzle", "boardgame")},
	{"automotive", setOf("car", "tire", "motorcycle", "helmet", "dashcam")},
	{"food", setOf("grocery", "coffee", "snack", "chocolate", "tea")},
}

func setOf(keywords ...string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return set
}

// detectTopicChange compares the product category of the new message's
// keywords against the category of the last few user turns. The first
// message of a conversation never counts as a topic change.
func detectTopicChange(newKeywords []string, history []entity.Message) bool {
	if len(history) == 0 {
		return false
	}

	currentCategory := categoryOf(recentUserKeywords(history))
	newCategory := categoryOf(newKeywords)

	return currentCategory != "" && newCategory != "" && currentCategory != newCategory
}

func recentUserKeywords(history []entity.Message) []string {
	var keywords []string
	turns := 0
	for i := len(history) - 1; i >= 0 && turns < topicHistoryWindow; i-- {
		if history[i].Role != entity.MessageRoleUser {
			continue
		}
		keywords = append(keywords, extractKeywords(history[i].Content)...)
		turns++
	}
	return keywords
}

func categoryOf(keywords []string) string {
	for _, category := range topicTaxonomy {
		for _, keyword := range keywords {
			if category.keywords[keyword] {
				return category.name
			}
		}
	}
	return ""
}
