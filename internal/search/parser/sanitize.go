// internal/search/parser/sanitize.go
package parser

import (
	"strings"

	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
)

// sanitize re-validates every assisted-parse field against the closed
// vocabularies. Values the lexicon does not know are dropped silently and the
// rest of the parse is kept; the external service is never trusted beyond
// this boundary.
func sanitize(r rawParse) *models.ParsedQuery {
	q := &models.ParsedQuery{Intent: models.IntentSearch}

	for _, v := range r.EntityTypes {
		if t, ok := lexicon.CanonicalEntityType(v); ok && !q.HasEntityType(t) {
			q.EntityTypes = append(q.EntityTypes, t)
		}
	}

	for _, v := range r.Locations {
		if loc, ok := lexicon.CanonicalLocation(v); ok {
			q.Locations = appendUnique(q.Locations, loc)
		}
	}

	for _, v := range r.Certifications {
		if c, ok := lexicon.CanonicalCertification(v); ok {
			q.Certifications = appendUnique(q.Certifications, c)
		}
	}

	for _, v := range r.Keywords {
		kw := strings.ToLower(strings.TrimSpace(v))
		if len(kw) >= minTokenLen && !lexicon.IsStopWord(kw) {
			q.Keywords = appendUnique(q.Keywords, kw)
		}
	}

	switch models.QueryIntent(strings.ToLower(strings.TrimSpace(r.Intent))) {
	case models.IntentCompare:
		q.Intent = models.IntentCompare
	case models.IntentVerify:
		q.Intent = models.IntentVerify
	case models.IntentContact:
		q.Intent = models.IntentContact
	}

	return q
}
