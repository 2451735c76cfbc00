// internal/store/elasticsearch.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "supplier-search/internal/common/errors"
	"supplier-search/internal/common/logger"
	"supplier-search/internal/models"
	"supplier-search/internal/search/predicate"
)

// ElasticsearchStore executes listing predicates against an index.
// Results come back in name order; relevance ranking happens in-process
// upstream, so the store only has to be deterministic.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearch(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchStore {
	return &ElasticsearchStore{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"store": "elasticsearch"}),
	}
}

func (s *ElasticsearchStore) Query(ctx context.Context, p *predicate.Predicate, offset, limit int) ([]models.Listing, int, error) {
	body, err := json.Marshal(buildSearchBody(p))
	if err != nil {
		return nil, 0, fmt.Errorf("marshal query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &offset,
		Size:  &limit,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, apperrors.NewStoreTimeoutError()
		}
		return nil, 0, fmt.Errorf("execute search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, 0, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Listing `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	listings := make([]models.Listing, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		listings = append(listings, hit.Source)
	}

	return listings, r.Hits.Total.Value, nil
}

// buildSearchBody maps the two-level predicate onto a bool query: one
// must clause per group, one should clause per condition.
func buildSearchBody(p *predicate.Predicate) map[string]interface{} {
	sort := []interface{}{
		map[string]interface{}{"name.keyword": map[string]interface{}{"order": "asc"}},
	}

	if p.IsEmpty() {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort":  sort,
		}
	}

	mustClauses := make([]interface{}, 0, len(p.All))
	for _, group := range p.All {
		shouldClauses := make([]interface{}, 0, len(group.Any))
		for _, cond := range group.Any {
			shouldClauses = append(shouldClauses, conditionClause(cond))
		}
		mustClauses = append(mustClauses, map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               shouldClauses,
				"minimum_should_match": 1,
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": mustClauses,
			},
		},
		"sort": sort,
	}
}

// esFieldFor maps predicate fields to document fields. Documents are indexed
// with the Listing JSON tags, which camel-case the two compound names.
var esFieldFor = map[predicate.Field]string{
	predicate.FieldHQAddress: "hqAddress",
	predicate.FieldGSTNumber: "gstNumber",
}

func conditionClause(cond predicate.Condition) map[string]interface{} {
	field, ok := esFieldFor[cond.Field]
	if !ok {
		field = string(cond.Field)
	}

	switch cond.Op {
	case predicate.OpEquals:
		return map[string]interface{}{
			"term": map[string]interface{}{
				field + ".keyword": map[string]interface{}{
					"value":            cond.Value,
					"case_insensitive": true,
				},
			},
		}

	case predicate.OpNotNull:
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{"exists": map[string]interface{}{"field": field}},
				},
				"must_not": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{field + ".keyword": ""}},
				},
			},
		}

	default: // OpContains
		// Wildcards run per token against analyzed text fields, so a
		// multi-word value would never match there. Those go through
		// match_phrase, which matches the token sequence anywhere in the
		// field.
		if strings.ContainsAny(cond.Value, " \t") {
			return map[string]interface{}{
				"match_phrase": map[string]interface{}{
					field: cond.Value,
				},
			}
		}
		return map[string]interface{}{
			"wildcard": map[string]interface{}{
				field: map[string]interface{}{
					"value":            "*" + escapeWildcard(cond.Value) + "*",
					"case_insensitive": true,
				},
			},
		}
	}
}

// escapeWildcard neutralizes the metacharacters of ES wildcard syntax so
// user terms match literally.
func escapeWildcard(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}
