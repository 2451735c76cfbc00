// internal/search/engine_test.go
package search_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-search/internal/common/logger"
	"supplier-search/internal/models"
	"supplier-search/internal/search"
	"supplier-search/internal/search/parser"
	"supplier-search/internal/search/predicate"
	"supplier-search/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestEngine(t *testing.T, listings ...models.Listing) *search.Engine {
	t.Helper()
	log := logger.NewNoOpLogger()
	return search.NewEngine(
		store.NewMemory(listings...),
		parser.New(nil, log),
		search.DefaultConfig(),
		log,
	)
}

func testListings() []models.Listing {
	return []models.Listing{
		{
			ID:             "1",
			Name:           "Gujarat Ayurveda Works",
			Classification: "Manufacturer",
			Description:    "Ayurvedic medicine production",
			Capabilities:   "manufacturing, private label",
			Products:       "churna, syrup",
			Certifications: "GMP, AYUSH",
			Address:        "GIDC Estate, Ahmedabad, Gujarat",
			GSTNumber:      "24AAACG1234A1Z5",
		},
		{
			ID:             "2",
			Name:           "Kerala Herbal Traders",
			Classification: "Trader",
			Description:    "Bulk herbal raw materials",
			Capabilities:   "bulk supply, trading",
			Products:       "extracts, oils",
			Certifications: "FSSAI",
			Address:        "Kochi, Kerala",
		},
		{
			ID:             "3",
			Name:           "Pune Packaging Co",
			Classification: "Packager",
			Description:    "Bottling and filling services",
			Capabilities:   "bottling, filling line",
			Address:        "Pune, Maharashtra",
			GSTNumber:      "27AAACP9876B1Z2",
		},
		{
			ID:             "4",
			Name:           "Bharat Wellness Labs",
			Classification: "Testing Lab",
			Description:    "Analytical testing for ayurvedic products",
			Capabilities:   "analytical testing, quality testing",
			Certifications: "ISO, GMP",
			Address:        "Hyderabad, Telangana",
		},
	}
}

// ==========================
// Core Pipeline Tests
// ==========================

func TestEngine_Search_FreeTextQuery(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	page, err := e.Search(context.Background(), search.Request{
		Query: "ayurvedic manufacturers in Gujarat with GMP",
	})
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	assert.Equal(t, "1", page.Results[0].ID)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
}

func TestEngine_Search_EmptyQueryReturnsEverything(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	page, err := e.Search(context.Background(), search.Request{Query: "   "})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Total)
	assert.Len(t, page.Results, 4)
}

func TestEngine_Search_NoMatchesIsEmptyNotError(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	page, err := e.Search(context.Background(), search.Request{Query: "quantum flux capacitors"})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Results)
	assert.False(t, page.HasMore)
}

func TestEngine_Search_StructuredOverridesReplaceParsedTypes(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	// The query text says manufacturers, the structured filter says packager.
	// The structured filter wins.
	page, err := e.Search(context.Background(), search.Request{
		Query:       "manufacturers",
		EntityTypes: []models.EntityType{models.EntityPackager},
	})
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	assert.Equal(t, "3", page.Results[0].ID)
}

func TestEngine_Search_VerifiedOnly(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	page, err := e.Search(context.Background(), search.Request{VerifiedOnly: true})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	for _, l := range page.Results {
		assert.NotEmpty(t, l.GSTNumber)
	}
}

func TestEngine_Search_HybridCapabilityMatch(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	// Listing 2 is classified "Trader" but its capabilities carry wholesaler
	// terms, so a wholesaler search finds it either way; listing 1 is found
	// for formulator only through its "private label" capability.
	page, err := e.Search(context.Background(), search.Request{
		EntityTypes: []models.EntityType{models.EntityFormulator},
	})
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	assert.Equal(t, "1", page.Results[0].ID)
}

// ==========================
// Pagination Tests
// ==========================

func TestEngine_Search_PagesPartitionTheRanking(t *testing.T) {
	var listings []models.Listing
	for i := 0; i < 25; i++ {
		listings = append(listings, models.Listing{
			ID:       fmt.Sprintf("l-%02d", i),
			Name:     fmt.Sprintf("Listing %02d", i),
			Products: "soap",
		})
	}
	e := newTestEngine(t, listings...)
	ctx := context.Background()

	full, err := e.Search(ctx, search.Request{Query: "soap", Limit: 25})
	require.NoError(t, err)
	require.Len(t, full.Results, 25)

	var paged []models.Listing
	for offset := 0; offset < 25; offset += 10 {
		page, err := e.Search(ctx, search.Request{Query: "soap", Offset: offset, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, offset+10 < 25, page.HasMore, "offset %d", offset)
		paged = append(paged, page.Results...)
	}

	// Sequential pages reassemble the exact full ordering: no duplicates, no
	// gaps, no reordering.
	assert.Equal(t, full.Results, paged)
}

func TestEngine_Search_OffsetBeyondMatches(t *testing.T) {
	e := newTestEngine(t, testListings()...)

	page, err := e.Search(context.Background(), search.Request{Offset: 100, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, page.Results)
	assert.Equal(t, 4, page.Total)
	assert.False(t, page.HasMore)
}

func TestEngine_Search_LimitClamping(t *testing.T) {
	var listings []models.Listing
	for i := 0; i < 150; i++ {
		listings = append(listings, models.Listing{
			ID:   fmt.Sprintf("l-%03d", i),
			Name: fmt.Sprintf("Listing %03d", i),
		})
	}
	e := newTestEngine(t, listings...)
	ctx := context.Background()

	// Zero limit falls back to the default page size.
	page, err := e.Search(ctx, search.Request{})
	require.NoError(t, err)
	assert.Len(t, page.Results, 20)

	// Oversized limits clamp to the maximum.
	page, err = e.Search(ctx, search.Request{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Results, 100)

	// Negative offset is treated as zero.
	page, err = e.Search(ctx, search.Request{Offset: -5, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Results, 10)
	assert.Equal(t, "l-000", page.Results[0].ID)
}

// ==========================
// Determinism Tests
// ==========================

func TestEngine_Search_Idempotent(t *testing.T) {
	e := newTestEngine(t, testListings()...)
	ctx := context.Background()
	req := search.Request{Query: "ayurvedic", Limit: 10}

	first, err := e.Search(ctx, req)
	require.NoError(t, err)
	second, err := e.Search(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// sharedParser hands every request the same ParsedQuery pointer, the way a
// parse cache hit does.
type sharedParser struct {
	parsed *models.ParsedQuery
}

func (p sharedParser) Parse(context.Context, string) *models.ParsedQuery { return p.parsed }

func TestEngine_Search_OverridesDoNotMutateSharedParse(t *testing.T) {
	// Spare capacity in the shared slices is the dangerous case: an append
	// that reuses the backing array would overwrite it for every request
	// holding the same parse.
	locations := make([]string, 0, 4)
	locations = append(locations, "gujarat", "kerala", "maharashtra")
	shared := &models.ParsedQuery{
		Intent:    models.IntentSearch,
		Keywords:  []string{"ayurvedic"},
		Locations: locations,
	}

	e := search.NewEngine(
		store.NewMemory(testListings()...),
		sharedParser{parsed: shared},
		search.DefaultConfig(),
		logger.NewNoOpLogger(),
	)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		extra := fmt.Sprintf("state-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Search(context.Background(), search.Request{
				Query:     "ayurvedic",
				Locations: []string{extra},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"gujarat", "kerala", "maharashtra"}, shared.Locations)
	assert.Equal(t, 4, cap(shared.Locations))
}

// ==========================
// Failure Tests
// ==========================

type errorStore struct{}

func (errorStore) Query(context.Context, *predicate.Predicate, int, int) ([]models.Listing, int, error) {
	return nil, 0, fmt.Errorf("connection reset by peer")
}

func TestEngine_Search_StoreErrorSurfaces(t *testing.T) {
	log := logger.NewNoOpLogger()
	e := search.NewEngine(
		errorStore{},
		parser.New(nil, log),
		search.DefaultConfig(),
		log,
	)

	_, err := e.Search(context.Background(), search.Request{Query: "soap"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_QUERY_FAILED")
}
