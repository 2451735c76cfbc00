// internal/search/lexicon/lexicon_test.go
package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supplier-search/internal/models"
)

func TestMappingFor_CoversEveryEntityType(t *testing.T) {
	for _, et := range models.AllEntityTypes {
		m, ok := MappingFor(et)
		assert.True(t, ok, "missing mapping for %s", et)
		assert.NotEmpty(t, m.Primary, "no primary literals for %s", et)
		assert.NotEmpty(t, m.Secondary, "no secondary terms for %s", et)
	}
}

func TestEntityTypeForToken(t *testing.T) {
	tests := []struct {
		token    string
		expected models.EntityType
		found    bool
	}{
		{"manufacturer", models.EntityManufacturer, true},
		{"manufacturers", models.EntityManufacturer, true},
		{"Makers", models.EntityManufacturer, true},
		{"trader", models.EntityWholesaler, true},
		{"supplier", models.EntityRawMaterialSupplier, true},
		{"cdmo", models.EntityFormulator, true},
		{"cro", models.EntityTestingLab, true},
		{"stockist", models.EntityDistributor, true},
		{"plumber", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := EntityTypeForToken(tt.token)
		assert.Equal(t, tt.found, ok, "token %q", tt.token)
		if tt.found {
			assert.Equal(t, tt.expected, got, "token %q", tt.token)
		}
	}
}

func TestCanonicalEntityType(t *testing.T) {
	tests := []struct {
		raw      string
		expected models.EntityType
		found    bool
	}{
		{"manufacturer", models.EntityManufacturer, true},
		{"MANUFACTURER", models.EntityManufacturer, true},
		{"raw_material_supplier", models.EntityRawMaterialSupplier, true},
		{"raw material supplier", models.EntityRawMaterialSupplier, true},
		{"raw-material-supplier", models.EntityRawMaterialSupplier, true},
		{"testing_lab", models.EntityTestingLab, true},
		{" wholesaler ", models.EntityWholesaler, true},
		{"traders", models.EntityWholesaler, true},
		{"unicorn_breeder", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalEntityType(tt.raw)
		assert.Equal(t, tt.found, ok, "raw %q", tt.raw)
		if tt.found {
			assert.Equal(t, tt.expected, got, "raw %q", tt.raw)
		}
	}
}

func TestCertificationForToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
		found    bool
	}{
		{"gmp", "GMP", true},
		{"GMP", "GMP", true},
		{"who-gmp", "WHO-GMP", true},
		{"fssai", "FSSAI", true},
		{"halal", "Halal", true},
		{"iso9001", "", false},
	}

	for _, tt := range tests {
		got, ok := CertificationForToken(tt.token)
		assert.Equal(t, tt.found, ok, "token %q", tt.token)
		if tt.found {
			assert.Equal(t, tt.expected, got)
		}
	}
}

func TestCanonicalLocation(t *testing.T) {
	got, ok := CanonicalLocation("Gujarat")
	assert.True(t, ok)
	assert.Equal(t, "gujarat", got)

	got, ok = CanonicalLocation("Tamil Nadu")
	assert.True(t, ok)
	assert.Equal(t, "tamil nadu", got)

	_, ok = CanonicalLocation("atlantis")
	assert.False(t, ok)
}

func TestIsProductTerm(t *testing.T) {
	assert.True(t, IsProductTerm("ayurvedic"))
	assert.True(t, IsProductTerm("Protein"))
	assert.True(t, IsProductTerm("cosmetics"))
	assert.False(t, IsProductTerm("gujarat"))
	assert.False(t, IsProductTerm("manufacturer"))
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("with"))
	assert.True(t, IsStopWord("The"))
	assert.True(t, IsStopWord("companies"))
	assert.False(t, IsStopWord("ayurvedic"))
}
