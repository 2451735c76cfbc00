// internal/models/query.go
package models

// EntityType is one of the closed set of business roles the directory knows.
type EntityType string

const (
	EntityManufacturer        EntityType = "manufacturer"
	EntityDistributor         EntityType = "distributor"
	EntityRetailer            EntityType = "retailer"
	EntityWholesaler          EntityType = "wholesaler"
	EntityRawMaterialSupplier EntityType = "raw_material_supplier"
	EntityFormulator          EntityType = "formulator"
	EntityPackager            EntityType = "packager"
	EntityTestingLab          EntityType = "testing_lab"
)

// AllEntityTypes lists the closed vocabulary in a fixed order.
var AllEntityTypes = []EntityType{
	EntityManufacturer,
	EntityDistributor,
	EntityRetailer,
	EntityWholesaler,
	EntityRawMaterialSupplier,
	EntityFormulator,
	EntityPackager,
	EntityTestingLab,
}

// QueryIntent classifies what the user wants to do with the results.
type QueryIntent string

const (
	IntentSearch  QueryIntent = "search"
	IntentCompare QueryIntent = "compare"
	IntentVerify  QueryIntent = "verify"
	IntentContact QueryIntent = "contact"
)

// ParsedQuery is the structured form of a free-text request. It is built
// fresh per search and never persisted; only the assisted parser caches it,
// keyed by normalized query text.
type ParsedQuery struct {
	EntityTypes    []EntityType `json:"entityTypes"`
	Locations      []string     `json:"locations"`
	Certifications []string     `json:"certifications"`
	Keywords       []string     `json:"keywords"`
	Intent         QueryIntent  `json:"intent"`
}

// IsEmpty reports whether the parse extracted nothing at all. Callers treat
// an empty parse as "no filter", not as "no results".
func (q *ParsedQuery) IsEmpty() bool {
	return len(q.EntityTypes) == 0 &&
		len(q.Locations) == 0 &&
		len(q.Certifications) == 0 &&
		len(q.Keywords) == 0
}

// HasEntityType reports whether t is already present in the parse.
func (q *ParsedQuery) HasEntityType(t EntityType) bool {
	for _, have := range q.EntityTypes {
		if have == t {
			return true
		}
	}
	return false
}
