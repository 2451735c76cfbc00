// internal/search/engine.go
// Package search orchestrates the query pipeline: parse, compile, execute
// against the record store, rank in-process, paginate.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "supplier-search/internal/common/errors"
	"supplier-search/internal/common/logger"
	"supplier-search/internal/common/metrics"

	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
	"supplier-search/internal/search/predicate"
	"supplier-search/internal/search/ranking"
)

// RecordStore is the external listing store. It executes the two-level
// predicate with case-insensitive matching and reports the total match count
// alongside the returned window.
type RecordStore interface {
	Query(ctx context.Context, p *predicate.Predicate, offset, limit int) ([]models.Listing, int, error)
}

// QueryParser produces a ParsedQuery from raw text and never fails.
type QueryParser interface {
	Parse(ctx context.Context, raw string) *models.ParsedQuery
}

// Config bounds pagination and the in-process ranking window.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	// MaxMatchWindow caps how many matches are pulled for full-set ranking.
	// Ordering across pages is only guaranteed inside this window.
	MaxMatchWindow int
}

// DefaultConfig mirrors the pagination limits used elsewhere in the platform.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		MaxMatchWindow:  1000,
	}
}

// Request is one search call. EntityTypes, Locations and Certifications are
// optional structured overrides from the caller's UI filters; explicit entity
// types replace whatever the parser extracted.
type Request struct {
	Query          string              `json:"query"`
	EntityTypes    []models.EntityType `json:"entityTypes,omitempty"`
	Locations      []string            `json:"locations,omitempty"`
	Certifications []string            `json:"certifications,omitempty"`
	VerifiedOnly   bool                `json:"verifiedOnly,omitempty"`
	Offset         int                 `json:"offset"`
	Limit          int                 `json:"limit"`
}

type Engine struct {
	store  RecordStore
	parser QueryParser
	config Config
	logger logger.Logger
	tracer trace.Tracer
}

func NewEngine(store RecordStore, parser QueryParser, cfg Config, log logger.Logger) *Engine {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.MaxMatchWindow <= 0 {
		cfg.MaxMatchWindow = 1000
	}
	return &Engine{
		store:  store,
		parser: parser,
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "search-engine"}),
		tracer: otel.Tracer("supplier-search/search"),
	}
}

// Search runs the full pipeline and returns one ranked page. Ranking happens
// over the whole matching set (bounded by MaxMatchWindow), so sequential
// pages of an unchanged query partition the same ordered sequence.
func (e *Engine) Search(ctx context.Context, req Request) (*models.SearchPage, error) {
	searchID := uuid.NewString()
	start := time.Now()

	offset, limit := e.clampWindow(req.Offset, req.Limit)

	log := e.logger.WithFields(map[string]interface{}{
		"searchId": searchID,
		"offset":   offset,
		"limit":    limit,
	})

	ctx, span := e.tracer.Start(ctx, "search",
		trace.WithAttributes(attribute.String("search.id", searchID)))
	defer span.End()

	parsed := e.parse(ctx, req.Query)
	merged := mergeOverrides(parsed, req)

	pred := predicate.Compile(merged, req.VerifiedOnly)

	_, storeSpan := e.tracer.Start(ctx, "search.store")
	records, total, err := e.store.Query(ctx, pred, 0, e.config.MaxMatchWindow)
	storeSpan.End()
	if err != nil {
		log.Error("store query failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.NewStoreQueryFailedError(err)
	}

	_, rankSpan := e.tracer.Start(ctx, "search.rank")
	ranked := ranking.Rank(records, merged.Keywords, merged.EntityTypes)
	rankSpan.End()

	page := window(ranked, offset, limit, total)

	metrics.SearchesTotal.Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	log.Info("search completed", map[string]interface{}{
		"total":      page.Total,
		"returned":   len(page.Results),
		"hasMore":    page.HasMore,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return page, nil
}

// parse handles the empty-query edge: an empty query is "no filter", not an
// error, and skips the parser entirely.
func (e *Engine) parse(ctx context.Context, raw string) *models.ParsedQuery {
	if strings.TrimSpace(raw) == "" {
		return &models.ParsedQuery{Intent: models.IntentSearch}
	}
	_, span := e.tracer.Start(ctx, "search.parse")
	defer span.End()
	return e.parser.Parse(ctx, raw)
}

func (e *Engine) clampWindow(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = e.config.DefaultPageSize
	}
	if limit > e.config.MaxPageSize {
		limit = e.config.MaxPageSize
	}
	return offset, limit
}

// mergeOverrides folds structured UI filters into the parsed query. Explicit
// entity types replace the parsed set outright; locations and certifications
// are appended after lexicon normalization, unknown values passed through
// as-is since the caller asked for them literally.
func mergeOverrides(parsed *models.ParsedQuery, req Request) *models.ParsedQuery {
	merged := *parsed

	// The parser may hand out the same ParsedQuery to concurrent searches
	// (cache hits return a shared pointer), so appending into its slices
	// would write through the shared backing arrays. Copy before appending.
	merged.Locations = append([]string(nil), parsed.Locations...)
	merged.Certifications = append([]string(nil), parsed.Certifications...)

	if len(req.EntityTypes) > 0 {
		merged.EntityTypes = nil
		for _, t := range req.EntityTypes {
			if canonical, ok := lexicon.CanonicalEntityType(string(t)); ok && !merged.HasEntityType(canonical) {
				merged.EntityTypes = append(merged.EntityTypes, canonical)
			}
		}
	}

	for _, loc := range req.Locations {
		v := strings.ToLower(strings.TrimSpace(loc))
		if v == "" {
			continue
		}
		if canonical, ok := lexicon.CanonicalLocation(v); ok {
			v = canonical
		}
		merged.Locations = appendMissing(merged.Locations, v)
	}

	for _, cert := range req.Certifications {
		v := strings.TrimSpace(cert)
		if v == "" {
			continue
		}
		if canonical, ok := lexicon.CanonicalCertification(v); ok {
			v = canonical
		}
		merged.Certifications = appendMissing(merged.Certifications, v)
	}

	return &merged
}

func window(ranked []models.Listing, offset, limit, total int) *models.SearchPage {
	start := offset
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	results := make([]models.Listing, end-start)
	copy(results, ranked[start:end])

	return &models.SearchPage{
		Results: results,
		Total:   total,
		HasMore: offset+limit < total,
	}
}

func appendMissing(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}
