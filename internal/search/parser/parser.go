// internal/search/parser/parser.go
package parser

import (
	"context"

	"supplier-search/internal/common/logger"
	"supplier-search/internal/common/metrics"

	"supplier-search/internal/models"
)

// Parser is the composite entry point: opportunistically assisted, with the
// deterministic path as the unconditional fallback. Parse never fails and
// never blocks past the assisted client's own timeout.
type Parser struct {
	assisted *Assisted
	logger   logger.Logger
}

// New builds a Parser. assisted may be nil when the completion service is not
// configured, in which case every query takes the deterministic path.
func New(assisted *Assisted, log logger.Logger) *Parser {
	return &Parser{
		assisted: assisted,
		logger:   log.WithFields(map[string]interface{}{"component": "query-parser"}),
	}
}

// Parse extracts a ParsedQuery from raw text. Assisted failures are logged
// for observability and are invisible to the caller.
func (p *Parser) Parse(ctx context.Context, raw string) *models.ParsedQuery {
	if p.assisted != nil {
		q, err := p.assisted.Parse(ctx, raw)
		if err == nil {
			return q
		}
		metrics.ParserFallbacks.Inc()
		p.logger.Warn("assisted parse failed, using deterministic parser", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return Deterministic(raw)
}
