package engine

import (
	"ShopAssist/internal/entity"
	"sort"
	"strings"
)

// FilterGuidelines keeps the guidelines whose declared conditions overlap the
// current context. Each condition axis is checked independently; an axis the
// guideline does not declare, or the context carries no value for, never
// blocks the match. The result is sorted by priority descending, stable.
func (e *engine) FilterGuidelines(guidelines []entity.Guideline, convCtx ConversationContext) []entity.Guideline {
	var matched []entity.Guideline
	for _, g := range guidelines {
		if guidelineApplies(g, convCtx) {
			matched = append(matched, g)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	return matched
}

func guidelineApplies(g entity.Guideline, convCtx ConversationContext) bool {
	if g.Conditions.IsEmpty() {
		return true
	}

	if len(g.Conditions.Intents) > 0 && convCtx.UserIntent != "" {
		if !containsString(g.Conditions.Intents, string(convCtx.UserIntent)) {
			return false
		}
	}

	if len(g.Conditions.Stages) > 0 && convCtx.ConversationStage != "" {
		if !containsString(g.Conditions.Stages, string(convCtx.ConversationStage)) {
			return false
		}
	}

	if len(g.Conditions.Keywords) > 0 && len(convCtx.Keywords) > 0 {
		if !keywordsOverlap(g.Conditions.Keywords, convCtx.Keywords) {
			return false
		}
	}

	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// keywordsOverlap uses case-insensitive substring matching in either
// direction, so a guideline keyword "phone" matches "smartphone" and
// vice versa.
func keywordsOverlap(conditionKeywords, contextKeywords []string) bool {
	for _, ck := range conditionKeywords {
		ck = strings.ToLower(ck)
		for _, k := range contextKeywords {
			k = strings.ToLower(k)
			if strings.Contains(k, ck) || strings.Contains(ck, k) {
				return true
			}
		}
	}
	return false
}
