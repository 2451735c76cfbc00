// internal/search/parser/deterministic.go
// Package parser turns free-text queries into a ParsedQuery, preferring the
// GenAI-assisted path and always falling back to the rule-based path.
package parser

import (
	"strings"

	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
)

const minTokenLen = 2

var intentCues = []struct {
	cue    string
	intent models.QueryIntent
}{
	{"compare", models.IntentCompare},
	{" vs ", models.IntentCompare},
	{"versus", models.IntentCompare},
	{"verify", models.IntentVerify},
	{"genuine", models.IntentVerify},
	{"contact", models.IntentContact},
	{"phone number", models.IntentContact},
	{"email id", models.IntentContact},
}

// Deterministic extracts entity types, locations, certifications and residual
// keywords by walking the lexicon tables. It never fails; a query that yields
// nothing produces an empty ParsedQuery, which callers treat as "no filter".
func Deterministic(raw string) *models.ParsedQuery {
	q := &models.ParsedQuery{Intent: models.IntentSearch}

	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return q
	}

	for _, c := range intentCues {
		if strings.Contains(text, c.cue) {
			q.Intent = c.intent
			break
		}
	}

	// Multi-word places are consumed before tokenization so their halves
	// never resurface as keywords.
	for _, phrase := range lexicon.MultiWordLocations() {
		if strings.Contains(text, phrase) {
			q.Locations = appendUnique(q.Locations, phrase)
			text = strings.ReplaceAll(text, phrase, " ")
		}
	}

	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ",.;:!?()[]\"'")
		if len(tok) < minTokenLen {
			continue
		}
		// First match wins; a token never lands in two buckets.
		if t, ok := lexicon.EntityTypeForToken(tok); ok {
			if !q.HasEntityType(t) {
				q.EntityTypes = append(q.EntityTypes, t)
			}
			continue
		}
		if lexicon.IsSingleWordLocation(tok) {
			q.Locations = appendUnique(q.Locations, tok)
			continue
		}
		if c, ok := lexicon.CertificationForToken(tok); ok {
			q.Certifications = appendUnique(q.Certifications, c)
			continue
		}
		if lexicon.IsProductTerm(tok) {
			q.Keywords = appendUnique(q.Keywords, tok)
			continue
		}
		if lexicon.IsStopWord(tok) {
			continue
		}
		q.Keywords = appendUnique(q.Keywords, tok)
	}

	return q
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}
