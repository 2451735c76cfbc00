// internal/search/parser/assisted_test.go
package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-search/internal/common/logger"
	"supplier-search/internal/models"
)

// fakeCompletion returns a canned response or error and counts calls.
type fakeCompletion struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompletion) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newAssistedForTest(t *testing.T, client CompletionClient) *Assisted {
	t.Helper()
	return NewAssisted(client, NewMemoryCache(time.Minute), logger.NewNoOpLogger())
}

func TestAssisted_Parse_Success(t *testing.T) {
	client := &fakeCompletion{
		response: `{"entityTypes":["manufacturer"],"locations":["Gujarat"],"certifications":["gmp"],"keywords":["ayurvedic"],"intent":"search"}`,
	}
	a := newAssistedForTest(t, client)

	q, err := a.Parse(context.Background(), "ayurvedic manufacturers in Gujarat with GMP")
	require.NoError(t, err)
	assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
	assert.Equal(t, []string{"gujarat"}, q.Locations)
	assert.Equal(t, []string{"GMP"}, q.Certifications)
	assert.Equal(t, []string{"ayurvedic"}, q.Keywords)
	assert.Equal(t, models.IntentSearch, q.Intent)
}

func TestAssisted_Parse_ProseWrappedJSON(t *testing.T) {
	client := &fakeCompletion{
		response: "Here is the extraction:\n```json\n{\"entityTypes\":[\"distributor\"],\"keywords\":[\"soap\"]}\n```\nHope that helps!",
	}
	a := newAssistedForTest(t, client)

	q, err := a.Parse(context.Background(), "soap distributors")
	require.NoError(t, err)
	assert.Equal(t, []models.EntityType{models.EntityDistributor}, q.EntityTypes)
	assert.Equal(t, []string{"soap"}, q.Keywords)
}

func TestAssisted_Parse_UnknownValuesDroppedSilently(t *testing.T) {
	// "superdistributor" is not in the closed vocabulary and must be dropped
	// without failing the rest of the parse.
	client := &fakeCompletion{
		response: `{"entityTypes":["superdistributor","retailer"],"locations":["Atlantis","Pune"],"certifications":["ISO-99999","fssai"],"keywords":["herbal"]}`,
	}
	a := newAssistedForTest(t, client)

	q, err := a.Parse(context.Background(), "herbal retailers in pune")
	require.NoError(t, err)
	assert.Equal(t, []models.EntityType{models.EntityRetailer}, q.EntityTypes)
	assert.Equal(t, []string{"pune"}, q.Locations)
	assert.Equal(t, []string{"FSSAI"}, q.Certifications)
	assert.Equal(t, []string{"herbal"}, q.Keywords)
}

func TestAssisted_Parse_InvalidResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no JSON at all", "I could not parse that query, sorry."},
		{"broken JSON", `{"entityTypes":[`},
		{"wrong shape", `{"entityTypes":"manufacturer"}`},
		{"arrays of objects", `{"keywords":[{"word":"soap"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssistedForTest(t, &fakeCompletion{response: tt.response})
			_, err := a.Parse(context.Background(), "soap manufacturers")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrResponseInvalid)
		})
	}
}

func TestAssisted_Parse_ClientErrorIsUnavailable(t *testing.T) {
	a := newAssistedForTest(t, &fakeCompletion{err: errors.New("connection refused")})

	_, err := a.Parse(context.Background(), "soap manufacturers")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssistedUnavailable)
}

func TestAssisted_Parse_SingleAttempt(t *testing.T) {
	client := &fakeCompletion{err: errors.New("boom")}
	a := newAssistedForTest(t, client)

	_, _ = a.Parse(context.Background(), "soap manufacturers")
	assert.Equal(t, 1, client.calls, "assisted parse must not retry")
}

func TestAssisted_Parse_CacheHitSkipsService(t *testing.T) {
	client := &fakeCompletion{
		response: `{"entityTypes":["manufacturer"],"keywords":["soap"]}`,
	}
	a := newAssistedForTest(t, client)
	ctx := context.Background()

	first, err := a.Parse(ctx, "soap manufacturers")
	require.NoError(t, err)

	// Same query up to case and whitespace hits the cache.
	second, err := a.Parse(ctx, "  Soap   MANUFACTURERS ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
}

func TestAssisted_Parse_FailuresNotCached(t *testing.T) {
	client := &fakeCompletion{err: errors.New("boom")}
	a := newAssistedForTest(t, client)
	ctx := context.Background()

	_, err := a.Parse(ctx, "soap manufacturers")
	require.Error(t, err)

	_, err = a.Parse(ctx, "soap manufacturers")
	require.Error(t, err)
	assert.Equal(t, 2, client.calls, "failed parses must not populate the cache")
}

func TestAssisted_Parse_EmptyQueryShortCircuits(t *testing.T) {
	client := &fakeCompletion{response: `{}`}
	a := newAssistedForTest(t, client)

	q, err := a.Parse(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, client.calls)
}

func TestParser_FallbackGuarantee(t *testing.T) {
	// Whatever the assisted path does, Parse returns a usable query.
	tests := []struct {
		name   string
		client CompletionClient
	}{
		{"service down", &fakeCompletion{err: errors.New("connection refused")}},
		{"garbage response", &fakeCompletion{response: "no json here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssistedForTest(t, tt.client)
			p := New(a, logger.NewNoOpLogger())

			q := p.Parse(context.Background(), "ayurvedic manufacturers in Gujarat with GMP")
			require.NotNil(t, q)
			assert.Equal(t, []models.EntityType{models.EntityManufacturer}, q.EntityTypes)
			assert.Equal(t, []string{"gujarat"}, q.Locations)
			assert.Equal(t, []string{"GMP"}, q.Certifications)
		})
	}
}

func TestParser_NilAssistedUsesDeterministic(t *testing.T) {
	p := New(nil, logger.NewNoOpLogger())

	q := p.Parse(context.Background(), "herbal suppliers in Kerala")
	require.NotNil(t, q)
	assert.Equal(t, []models.EntityType{models.EntityRawMaterialSupplier}, q.EntityTypes)
	assert.Equal(t, []string{"kerala"}, q.Locations)
}

func TestParser_PrefersAssistedResult(t *testing.T) {
	// The assisted response deliberately disagrees with the deterministic
	// parse so the test can tell which path produced the result.
	client := &fakeCompletion{
		response: `{"entityTypes":["formulator"],"keywords":["private","label"]}`,
	}
	a := newAssistedForTest(t, client)
	p := New(a, logger.NewNoOpLogger())

	q := p.Parse(context.Background(), "private label partners")
	assert.Equal(t, []models.EntityType{models.EntityFormulator}, q.EntityTypes)
}
