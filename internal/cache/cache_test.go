package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/maypok86/otter"
	"github.com/nerdwave-nick/pokeapi-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name   string `json:"name"`
	Height int    `json:"height"`
}

type quietBadgerLogger struct{}

func (quietBadgerLogger) Errorf(string, ...interface{})   {}
func (quietBadgerLogger) Warningf(string, ...interface{}) {}
func (quietBadgerLogger) Infof(string, ...interface{})    {}
func (quietBadgerLogger) Debugf(string, ...interface{})   {}

func newOtter(t *testing.T) *OtterCache {
	t.Helper()
	oc, err := otter.MustBuilder[string, []byte](100).WithTTL(time.Minute).Build()
	require.NoError(t, err)
	t.Cleanup(oc.Close)
	return NewOtterCache(&oc)
}

func newBadger(t *testing.T) *BadgerCache {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(quietBadgerLogger{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	c := NewBadgerCache(db, time.Hour)
	return &c
}

// recordingCache counts calls and can be told to fail.
type recordingCache struct {
	NoopCache
	sets   int
	gets   int
	getErr error
}

func (c *recordingCache) Set(endpoint string, value any) error {
	c.sets++
	return nil
}

func (c *recordingCache) Get(endpoint string, value any) (bool, error) {
	c.gets++
	return false, c.getErr
}

func TestLayersRoundTrip(t *testing.T) {
	layers := map[string]pokeapi.Cache{
		"otter":  newOtter(t),
		"badger": newBadger(t),
	}
	for name, layer := range layers {
		t.Run(name, func(t *testing.T) {
			var got entry
			found, err := layer.Get("pokemon/pikachu", &got)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, layer.Set("pokemon/pikachu", entry{Name: "pikachu", Height: 4}))

			found, err = layer.Get("pokemon/pikachu", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, entry{Name: "pikachu", Height: 4}, got)
		})
	}
}

func TestBadgerEntriesExpire(t *testing.T) {
	c := newBadger(t)
	c.TTL = time.Second
	require.NoError(t, c.Set("pokemon/ditto", entry{Name: "ditto"}))

	var got entry
	found, err := c.Get("pokemon/ditto", &got)
	require.NoError(t, err)
	require.True(t, found)

	require.Eventually(t, func() bool {
		found, err := c.Get("pokemon/ditto", &got)
		return err == nil && !found
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNoopCache(t *testing.T) {
	var c NoopCache
	require.NoError(t, c.Set("pokemon/pikachu", entry{Name: "pikachu"}))
	found, err := c.Get("pokemon/pikachu", &entry{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMultiLayerBackfillsFasterLayers(t *testing.T) {
	l1 := newOtter(t)
	l2 := newBadger(t)
	require.NoError(t, l2.Set("pokemon/eevee", entry{Name: "eevee", Height: 3}))
	multi := NewMultiLayerCache(l1, l2)

	var got entry
	found, err := multi.Get("pokemon/eevee", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "eevee", got.Name)

	var fromL1 entry
	found, err = l1.Get("pokemon/eevee", &fromL1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, got, fromL1)
}

func TestMultiLayerSetWritesEveryLayer(t *testing.T) {
	a, b := &recordingCache{}, &recordingCache{}
	multi := NewMultiLayerCache(a, b)
	require.NoError(t, multi.Set("pokemon/mew", entry{Name: "mew"}))
	assert.Equal(t, 1, a.sets)
	assert.Equal(t, 1, b.sets)
}

func TestMultiLayerMissAndError(t *testing.T) {
	a, b := &recordingCache{}, &recordingCache{}
	multi := NewMultiLayerCache(a, b)
	found, err := multi.Get("pokemon/mew", &entry{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, a.gets)
	assert.Equal(t, 1, b.gets)

	broken := errors.New("disk on fire")
	a.getErr = broken
	_, err = multi.Get("pokemon/mew", &entry{})
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, 1, b.gets, "lookup stops at the failing layer")
}

func TestNewRedisCacheNeedsClient(t *testing.T) {
	assert.Panics(t, func() { NewRedisCache(nil, time.Minute) })
}
