// internal/search/predicate/compiler.go
package predicate

import (
	"supplier-search/internal/models"
	"supplier-search/internal/search/lexicon"
)

// keywordFields are the fields every residual keyword is checked against.
// Keyword groups are ANDed together: every keyword must match somewhere.
// The same policy applies whether or not structured terms were extracted;
// the looser OR-across-keywords fallback of the legacy behavior was a bug
// and is deliberately not preserved.
var keywordFields = []Field{
	FieldName,
	FieldCategories,
	FieldDescription,
	FieldCapabilities,
	FieldProducts,
	FieldClassification,
}

// Compile turns a parsed query into a storage predicate. Entity types use the
// hybrid condition (classification equals a mapped literal OR capabilities
// contains a mapped term) because the classification field alone under-counts.
// Locations and certifications are hard constraints. verifiedOnly adds a
// GST-number presence check.
func Compile(q *models.ParsedQuery, verifiedOnly bool) *Predicate {
	p := &Predicate{}
	if q == nil {
		q = &models.ParsedQuery{}
	}

	for _, kw := range q.Keywords {
		g := Group{}
		for _, f := range keywordFields {
			g.Any = append(g.Any, Condition{Field: f, Op: OpContains, Value: kw})
		}
		p.And(g)
	}

	if len(q.EntityTypes) > 0 {
		g := Group{}
		for _, t := range q.EntityTypes {
			m, ok := lexicon.MappingFor(t)
			if !ok {
				continue
			}
			for _, lit := range m.Primary {
				g.Any = append(g.Any, Condition{Field: FieldClassification, Op: OpEquals, Value: lit})
			}
			for _, term := range m.Secondary {
				g.Any = append(g.Any, Condition{Field: FieldCapabilities, Op: OpContains, Value: term})
			}
		}
		p.And(g)
	}

	if len(q.Locations) > 0 {
		g := Group{}
		for _, loc := range q.Locations {
			g.Any = append(g.Any,
				Condition{Field: FieldAddress, Op: OpContains, Value: loc},
				Condition{Field: FieldHQAddress, Op: OpContains, Value: loc},
			)
		}
		p.And(g)
	}

	if len(q.Certifications) > 0 {
		g := Group{}
		for _, c := range q.Certifications {
			g.Any = append(g.Any, Condition{Field: FieldCertifications, Op: OpContains, Value: c})
		}
		p.And(g)
	}

	if verifiedOnly {
		p.And(Group{Any: []Condition{{Field: FieldGSTNumber, Op: OpNotNull}}})
	}

	return p
}
