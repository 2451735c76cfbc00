// internal/search/predicate/predicate.go
// Package predicate models the storage-layer filter as a conjunction of
// disjunction groups, two levels deep at most so any substring-capable store
// can execute it.
package predicate

// Field names a Listing attribute the store can match on.
type Field string

const (
	FieldName           Field = "name"
	FieldClassification Field = "classification"
	FieldDescription    Field = "description"
	FieldCapabilities   Field = "capabilities"
	FieldCategories     Field = "categories"
	FieldProducts       Field = "products"
	FieldCertifications Field = "certifications"
	FieldAddress        Field = "address"
	FieldHQAddress      Field = "hq_address"
	FieldGSTNumber      Field = "gst_number"
)

// Operator is the match operation applied to a field.
type Operator string

const (
	OpContains Operator = "contains" // case-insensitive substring
	OpEquals   Operator = "equals"   // case-insensitive exact match
	OpNotNull  Operator = "not_null" // field present and non-empty
)

// Condition is a single field check.
type Condition struct {
	Field Field
	Op    Operator
	Value string // unused for OpNotNull
}

// Group is a disjunction: the group is satisfied when any condition matches.
type Group struct {
	Any []Condition
}

// Predicate is a conjunction of groups: every group must be satisfied.
// An empty predicate matches everything.
type Predicate struct {
	All []Group
}

// IsEmpty reports whether the predicate constrains anything.
func (p *Predicate) IsEmpty() bool {
	return p == nil || len(p.All) == 0
}

// And appends a group, skipping empty ones.
func (p *Predicate) And(g Group) {
	if len(g.Any) > 0 {
		p.All = append(p.All, g)
	}
}
