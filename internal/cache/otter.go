package cache

import (
	"encoding/json"
	"log/slog"

	"github.com/maypok86/otter"
)

const otterLayer = "otter"

// OtterCache keeps pokeapi responses as json in an in memory otter cache.
// Expiry is whatever the otter cache was built with.
type OtterCache struct {
	cache *otter.Cache[string, []byte]
}

func NewOtterCache(c *otter.Cache[string, []byte]) *OtterCache {
	return &OtterCache{cache: c}
}

func (c *OtterCache) Set(endpoint string, value any) error {
	slog.Debug("writing to otter cache", slog.String("endpoint", endpoint))
	bytes, err := json.Marshal(value)
	if err != nil {
		Errors.WithLabelValues(otterLayer, "set").Inc()
		return err
	}
	_ = c.cache.Set(endpoint, bytes)
	return nil
}

func (c *OtterCache) Get(endpoint string, value any) (bool, error) {
	bytes, found := c.cache.Get(endpoint)
	if !found {
		Misses.WithLabelValues(otterLayer).Inc()
		slog.Debug("not found in otter cache", slog.String("endpoint", endpoint))
		return false, nil
	}
	err := json.Unmarshal(bytes, value)
	if err != nil {
		Errors.WithLabelValues(otterLayer, "get").Inc()
		slog.Debug("error unmarshalling from otter cache", slog.String("endpoint", endpoint))
		return true, err
	}
	Hits.WithLabelValues(otterLayer).Inc()
	slog.Debug("found in otter cache", slog.String("endpoint", endpoint))
	return true, nil
}
