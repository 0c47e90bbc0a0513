package gallery

import (
	"context"
	"net/http"
	"testing"

	"github.com/nerdwave-nick/multiverse/internal/pokeapi"
	"github.com/nerdwave-nick/multiverse/internal/pokemon"
	"github.com/nerdwave-nick/multiverse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPISource(t *testing.T, api *testutil.FakePokeAPI) *APISource {
	t.Helper()
	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)
	client := pokeapi.NewClient(nil, http.Client{Transport: transport}, pokeapi.WithBaseURL(api.BaseURL()))
	return NewAPISource(client)
}

func TestAPISourceGalleryPages(t *testing.T) {
	names := testutil.Names(100)
	api := testutil.NewFakePokeAPI(names...)
	defer api.Close()
	g := New(newAPISource(t, api))
	ctx := context.Background()

	require.NoError(t, g.Load(ctx))
	snap := g.Snapshot()
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, names[0:52], itemNames(snap.Items))
	assert.Equal(t, testutil.Height(0), snap.Items[0].Height)

	require.NoError(t, g.Next(ctx))
	snap = g.Snapshot()
	assert.Equal(t, names[52:100], itemNames(snap.Items))
	assert.Equal(t, 1, api.Requests(testutil.ListingPath))
}

func TestAPISourceFailedDetail(t *testing.T) {
	names := testutil.Names(5)
	api := testutil.NewFakePokeAPI(names...)
	defer api.Close()
	api.FailDetail(names[1], http.StatusInternalServerError)
	api.SetDetail(names[3], `not json`)
	src := newAPISource(t, api)

	metas, err := src.ListMeta(context.Background())
	require.NoError(t, err)
	details, err := FetchDetails(context.Background(), src, metas)
	require.Error(t, err)

	require.Len(t, details, 5)
	assert.Equal(t, pokemon.Placeholder(names[1]), details[1])
	assert.Equal(t, pokemon.Placeholder(names[3]), details[3])
	for _, i := range []int{0, 2, 4} {
		require.NotNil(t, details[i].Image)
		assert.Equal(t, "https://img.example/art/"+names[i]+".png", *details[i].Image)
		assert.Equal(t, testutil.Height(i), details[i].Height)
		assert.Equal(t, []string{"normal"}, details[i].Types)
	}
}

func TestAPISourceListingFailure(t *testing.T) {
	api := testutil.NewFakePokeAPI("bulbasaur")
	defer api.Close()
	api.FailListing(http.StatusBadGateway)
	g := New(newAPISource(t, api))

	err := g.Load(context.Background())
	var statusErr *pokeapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}
