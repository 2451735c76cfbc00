// internal/search/intent/classifier.go
// Package intent decides whether a chat message warrants a company search and
// which entity types the phrasing implies.
package intent

import (
	"strings"

	"supplier-search/internal/common/logger"

	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
)

// Classification is the chat-path output. A nil EntityTypes means
// unconstrained: search all types.
type Classification struct {
	ShouldSearch bool                `json:"shouldSearch"`
	EntityTypes  []models.EntityType `json:"entityTypes,omitempty"`
}

type Classifier struct {
	logger logger.Logger
}

func NewClassifier(log logger.Logger) *Classifier {
	return &Classifier{
		logger: log.WithFields(map[string]interface{}{"component": "intent-classifier"}),
	}
}

// Classify runs both decisions over the message.
func (c *Classifier) Classify(message string) Classification {
	should := shouldSearch(message)
	out := Classification{ShouldSearch: should}
	if should {
		out.EntityTypes = inferEntityTypes(message)
	}

	c.logger.Debug("message classified", map[string]interface{}{
		"shouldSearch":  out.ShouldSearch,
		"inferredTypes": out.EntityTypes,
	})

	return out
}

// shouldSearch applies the rule cascade in order.
func shouldSearch(message string) bool {
	lower := strings.ToLower(message)

	for _, p := range knowledgePatterns {
		if p.MatchString(message) {
			return false
		}
	}

	hasRole := containsRoleNoun(lower)
	if requestVerbs.MatchString(message) && hasRole {
		return true
	}

	if containsBusinessContext(lower) && containsProductTerm(lower) {
		return true
	}

	if hasRole && (containsLocation(lower) || containsProductTerm(lower)) {
		return true
	}

	for _, p := range explicitRequestPatterns {
		if p.MatchString(message) {
			return true
		}
	}

	// A message the inference table can map to entity types is itself a
	// request for companies, however it was phrased. Weak rules need product
	// or business context before an incidental mention counts as intent.
	for _, rule := range inferenceRules {
		if !rule.pattern.MatchString(message) {
			continue
		}
		if rule.weak && !containsProductTerm(lower) && !containsBusinessContext(lower) {
			continue
		}
		return true
	}

	return false
}

// inferEntityTypes picks the target type set. An explicitly named role in a
// request frame wins outright; otherwise the ordered pattern table decides.
// nil means no constraint.
func inferEntityTypes(message string) []models.EntityType {
	lower := strings.ToLower(message)

	if requestVerbs.MatchString(message) {
		for _, tok := range strings.Fields(lower) {
			tok = strings.Trim(tok, ",.;:!?()\"'")
			if t, ok := lexicon.EntityTypeForToken(tok); ok {
				return []models.EntityType{t}
			}
		}
	}

	for _, rule := range inferenceRules {
		if rule.pattern.MatchString(message) {
			types := make([]models.EntityType, len(rule.types))
			copy(types, rule.types)
			return types
		}
	}

	return nil
}

func containsRoleNoun(lower string) bool {
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ",.;:!?()\"'")
		if _, ok := lexicon.EntityTypeForToken(tok); ok {
			return true
		}
	}
	return false
}

func containsProductTerm(lower string) bool {
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ",.;:!?()\"'")
		if lexicon.IsProductTerm(tok) {
			return true
		}
	}
	return false
}

func containsLocation(lower string) bool {
	for _, phrase := range lexicon.MultiWordLocations() {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ",.;:!?()\"'")
		if lexicon.IsSingleWordLocation(tok) {
			return true
		}
	}
	return false
}

func containsBusinessContext(lower string) bool {
	for _, phrase := range businessContextPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
