// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"supplier-search/internal/models"
	"supplier-search/internal/search/predicate"
)

// MemoryStore holds listings in memory and evaluates predicates directly.
// It backs tests and local development without external infrastructure.
type MemoryStore struct {
	mu       sync.RWMutex
	listings []models.Listing
}

func NewMemory(listings ...models.Listing) *MemoryStore {
	s := &MemoryStore{}
	s.listings = append(s.listings, listings...)
	return s
}

// Add appends listings to the store.
func (s *MemoryStore) Add(listings ...models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append(s.listings, listings...)
}

func (s *MemoryStore) Query(ctx context.Context, p *predicate.Predicate, offset, limit int) ([]models.Listing, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	var matched []models.Listing
	for _, l := range s.listings {
		if Matches(&l, p) {
			matched = append(matched, l)
		}
	}
	s.mu.RUnlock()

	// Same deterministic order the external stores produce.
	sort.SliceStable(matched, func(i, j int) bool {
		ni, nj := strings.ToLower(matched[i].Name), strings.ToLower(matched[j].Name)
		if ni != nj {
			return ni < nj
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// Matches reports whether a listing satisfies every group of the predicate.
func Matches(l *models.Listing, p *predicate.Predicate) bool {
	if p.IsEmpty() {
		return true
	}
	for _, group := range p.All {
		if !matchesGroup(l, group) {
			return false
		}
	}
	return true
}

func matchesGroup(l *models.Listing, g predicate.Group) bool {
	for _, cond := range g.Any {
		if matchesCondition(l, cond) {
			return true
		}
	}
	return false
}

func matchesCondition(l *models.Listing, cond predicate.Condition) bool {
	value := fieldValue(l, cond.Field)

	switch cond.Op {
	case predicate.OpEquals:
		return strings.EqualFold(value, cond.Value)
	case predicate.OpNotNull:
		return strings.TrimSpace(value) != ""
	default: // OpContains
		return strings.Contains(strings.ToLower(value), strings.ToLower(cond.Value))
	}
}

func fieldValue(l *models.Listing, f predicate.Field) string {
	switch f {
	case predicate.FieldName:
		return l.Name
	case predicate.FieldClassification:
		return l.Classification
	case predicate.FieldDescription:
		return l.Description
	case predicate.FieldCapabilities:
		return l.Capabilities
	case predicate.FieldCategories:
		return l.Categories
	case predicate.FieldProducts:
		return l.Products
	case predicate.FieldCertifications:
		return l.Certifications
	case predicate.FieldAddress:
		return l.Address
	case predicate.FieldHQAddress:
		return l.HQAddress
	case predicate.FieldGSTNumber:
		return l.GSTNumber
	}
	return ""
}
