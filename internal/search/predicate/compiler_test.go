// internal/search/predicate/compiler_test.go
package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-search/internal/models"
)

func TestCompile_EmptyQueryMatchesEverything(t *testing.T) {
	p := Compile(&models.ParsedQuery{}, false)
	assert.True(t, p.IsEmpty())

	p = Compile(nil, false)
	assert.True(t, p.IsEmpty())
}

func TestCompile_KeywordsAreANDedAcrossGroups(t *testing.T) {
	p := Compile(&models.ParsedQuery{Keywords: []string{"ayurvedic", "soap"}}, false)

	require.Len(t, p.All, 2, "one group per keyword")
	for i, g := range p.All {
		assert.Len(t, g.Any, len(keywordFields), "group %d spans all keyword fields", i)
		for _, c := range g.Any {
			assert.Equal(t, OpContains, c.Op)
		}
	}
	assert.Equal(t, "ayurvedic", p.All[0].Any[0].Value)
	assert.Equal(t, "soap", p.All[1].Any[0].Value)
}

func TestCompile_HybridEntityTypeGroup(t *testing.T) {
	p := Compile(&models.ParsedQuery{
		EntityTypes: []models.EntityType{models.EntityWholesaler},
	}, false)

	require.Len(t, p.All, 1)
	g := p.All[0]

	var equalsOnClassification, containsOnCapabilities int
	for _, c := range g.Any {
		switch {
		case c.Field == FieldClassification && c.Op == OpEquals:
			equalsOnClassification++
		case c.Field == FieldCapabilities && c.Op == OpContains:
			containsOnCapabilities++
		default:
			t.Fatalf("unexpected condition %+v in entity group", c)
		}
	}
	assert.Greater(t, equalsOnClassification, 0, "primary literals missing")
	assert.Greater(t, containsOnCapabilities, 0, "secondary terms missing")

	// "Trader" counts as a wholesaler classification.
	var hasTrader bool
	for _, c := range g.Any {
		if c.Op == OpEquals && c.Value == "Trader" {
			hasTrader = true
		}
	}
	assert.True(t, hasTrader)
}

func TestCompile_MultipleEntityTypesShareOneGroup(t *testing.T) {
	single := Compile(&models.ParsedQuery{
		EntityTypes: []models.EntityType{models.EntityManufacturer},
	}, false)
	double := Compile(&models.ParsedQuery{
		EntityTypes: []models.EntityType{models.EntityManufacturer, models.EntityPackager},
	}, false)

	require.Len(t, single.All, 1)
	require.Len(t, double.All, 1, "entity types OR within one group, never AND")
	assert.Greater(t, len(double.All[0].Any), len(single.All[0].Any))
}

func TestCompile_LocationsSpanBothAddressFields(t *testing.T) {
	p := Compile(&models.ParsedQuery{Locations: []string{"gujarat", "pune"}}, false)

	require.Len(t, p.All, 1)
	g := p.All[0]
	assert.Len(t, g.Any, 4, "two conditions per location")

	fields := map[Field]int{}
	for _, c := range g.Any {
		assert.Equal(t, OpContains, c.Op)
		fields[c.Field]++
	}
	assert.Equal(t, 2, fields[FieldAddress])
	assert.Equal(t, 2, fields[FieldHQAddress])
}

func TestCompile_Certifications(t *testing.T) {
	p := Compile(&models.ParsedQuery{Certifications: []string{"GMP", "FSSAI"}}, false)

	require.Len(t, p.All, 1)
	for _, c := range p.All[0].Any {
		assert.Equal(t, FieldCertifications, c.Field)
		assert.Equal(t, OpContains, c.Op)
	}
}

func TestCompile_VerifiedOnly(t *testing.T) {
	p := Compile(&models.ParsedQuery{}, true)

	require.Len(t, p.All, 1)
	require.Len(t, p.All[0].Any, 1)
	assert.Equal(t, FieldGSTNumber, p.All[0].Any[0].Field)
	assert.Equal(t, OpNotNull, p.All[0].Any[0].Op)
}

func TestCompile_FullQueryGroupCount(t *testing.T) {
	p := Compile(&models.ParsedQuery{
		EntityTypes:    []models.EntityType{models.EntityManufacturer},
		Locations:      []string{"gujarat"},
		Certifications: []string{"GMP"},
		Keywords:       []string{"ayurvedic"},
	}, true)

	// keyword + entity + location + certification + verified
	assert.Len(t, p.All, 5)
}
