// internal/search/parser/assisted.go
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"supplier-search/internal/common/logger"
	"supplier-search/internal/common/metrics"

	"supplier-search/internal/models"
)

var (
	ErrAssistedUnavailable = errors.New("ASSISTED_PARSER_UNAVAILABLE")
	ErrResponseInvalid     = errors.New("ASSISTED_RESPONSE_INVALID")
)

// systemInstruction is the fixed contract sent with every completion request.
// The vocabularies listed here match the lexicon; anything outside them is
// discarded by the sanitizer regardless of what the model returns.
const systemInstruction = `You extract structured search filters from a buyer's free-text query about a business directory.
Respond with a single JSON object and nothing else:
{"entityTypes": [], "locations": [], "certifications": [], "keywords": [], "intent": "search"}
entityTypes must come from: manufacturer, distributor, retailer, wholesaler, raw_material_supplier, formulator, packager, testing_lab.
certifications must come from: GMP, WHO-GMP, ISO, FSSAI, AYUSH, HACCP, Halal, Kosher, Organic.
locations are Indian states or cities named in the query. keywords are the remaining product or descriptive terms.
intent is one of: search, compare, verify, contact.`

// CompletionClient is the external text-completion dependency. A single
// attempt with a bounded timeout is the whole contract; retrying belongs to
// nobody on this path.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Assisted delegates extraction to the completion service, validates the
// response shape, sanitizes it against the lexicon and caches the result.
type Assisted struct {
	client CompletionClient
	cache  Cache
	logger logger.Logger
}

// NewAssisted builds the assisted parser. cache may not be nil; use
// NewMemoryCache when nothing better is wired.
func NewAssisted(client CompletionClient, cache Cache, log logger.Logger) *Assisted {
	return &Assisted{
		client: client,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "assisted-parser"}),
	}
}

// Parse returns the structured query or an error the caller must treat as a
// signal to fall back to the deterministic parser. A cached result is served
// without touching the service.
func (a *Assisted) Parse(ctx context.Context, raw string) (*models.ParsedQuery, error) {
	key := NormalizeQuery(raw)
	if key == "" {
		return &models.ParsedQuery{Intent: models.IntentSearch}, nil
	}

	if q, ok := a.cache.Get(ctx, key); ok {
		metrics.ParseCacheHits.Inc()
		return q, nil
	}
	metrics.ParseCacheMisses.Inc()

	text, err := a.client.Complete(ctx, systemInstruction, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistedUnavailable, err)
	}

	doc, err := extractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if err := validateShape(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	var rp rawParse
	if err := json.Unmarshal(doc, &rp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	q := sanitize(rp)
	a.cache.Set(ctx, key, q)

	a.logger.Debug("assisted parse succeeded", map[string]interface{}{
		"entityTypes":    len(q.EntityTypes),
		"locations":      len(q.Locations),
		"certifications": len(q.Certifications),
		"keywords":       len(q.Keywords),
	})

	return q, nil
}
