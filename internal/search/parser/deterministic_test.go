// internal/search/parser/deterministic_test.go
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supplier-search/internal/models"
)

func TestDeterministic_TypicalQuery(t *testing.T) {
	q := Deterministic("ayurvedic manufacturers in Gujarat with GMP")

	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
	assert.Equal(t, []string{"gujarat"}, q.Locations)
	assert.Equal(t, []string{"GMP"}, q.Certifications)
	assert.Equal(t, []string{"ayurvedic"}, q.Keywords)
	assert.Equal(t, models.IntentSearch, q.Intent)
}

func TestDeterministic_EmptyAndBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		q := Deterministic(raw)
		assert.True(t, q.IsEmpty(), "raw %q", raw)
		assert.Equal(t, models.IntentSearch, q.Intent)
	}
}

func TestDeterministic_MultiWordLocation(t *testing.T) {
	q := Deterministic("herbal extract suppliers in Tamil Nadu")

	assert.Equal(t, []models.EntityType{models.EntityRawMaterialSupplier}, q.EntityTypes)
	assert.Equal(t, []string{"tamil nadu"}, q.Locations)
	// Neither half of the place name may leak into keywords.
	assert.NotContains(t, q.Keywords, "tamil")
	assert.NotContains(t, q.Keywords, "nadu")
	assert.ElementsMatch(t, []string{"herbal", "extract"}, q.Keywords)
}

func TestDeterministic_MultipleEntityTypes(t *testing.T) {
	q := Deterministic("distributors and wholesalers for protein powder")

	assert.ElementsMatch(t, []models.EntityType{models.EntityDistributor, models.EntityWholesaler}, q.EntityTypes)
	assert.ElementsMatch(t, []string{"protein", "powder"}, q.Keywords)
}

func TestDeterministic_TokenNeverInTwoBuckets(t *testing.T) {
	// "gujarat" is a location, so it must not appear as a keyword too.
	q := Deterministic("gujarat gujarat manufacturers")

	assert.Equal(t, []string{"gujarat"}, q.Locations)
	assert.Empty(t, q.Keywords)
	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
}

func TestDeterministic_StopWordsAndShortTokensDropped(t *testing.T) {
	q := Deterministic("find me the best manufacturers of a soap")

	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
	assert.Equal(t, []string{"soap"}, q.Keywords)
}

func TestDeterministic_Punctuation(t *testing.T) {
	q := Deterministic("manufacturers, in Gujarat! (GMP)")

	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
	assert.Equal(t, []string{"gujarat"}, q.Locations)
	assert.Equal(t, []string{"GMP"}, q.Certifications)
}

func TestDeterministic_IntentCues(t *testing.T) {
	tests := []struct {
		raw    string
		intent models.QueryIntent
	}{
		{"compare ayurvedic manufacturers", models.IntentCompare},
		{"himalaya vs dabur suppliers", models.IntentCompare},
		{"verify this distributor in Pune", models.IntentVerify},
		{"contact details of packagers", models.IntentContact},
		{"ayurvedic manufacturers", models.IntentSearch},
	}

	for _, tt := range tests {
		q := Deterministic(tt.raw)
		assert.Equal(t, tt.intent, q.Intent, "raw %q", tt.raw)
	}
}

func TestDeterministic_DuplicateKeywordsCollapsed(t *testing.T) {
	q := Deterministic("soap soap soap makers")

	assert.Equal(t, []string{"soap"}, q.Keywords)
	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
}

func TestDeterministic_UnknownTokensBecomeKeywords(t *testing.T) {
	q := Deterministic("ashwagandha churna exporters")

	assert.Contains(t, q.Keywords, "ashwagandha")
	assert.Contains(t, q.Keywords, "churna")
	assert.Contains(t, q.Keywords, "exporters")
	assert.Empty(t, q.EntityTypes)
}
