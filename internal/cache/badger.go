package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger"
)

const badgerLayer = "badger"

// BadgerCache keeps pokeapi responses as json in a badger db. Every entry
// expires TTL after it was written.
type BadgerCache struct {
	db  *badger.DB
	TTL time.Duration
}

func NewBadgerCache(db *badger.DB, ttl time.Duration) BadgerCache {
	return BadgerCache{db: db, TTL: ttl}
}

func (c *BadgerCache) putItem(key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(c.TTL)
		err := txn.SetEntry(e)
		return err
	})
}

func (c *BadgerCache) Set(endpoint string, value any) error {
	slog.Debug("writing to badger cache", slog.String("endpoint", endpoint))
	bytes, err := json.Marshal(value)
	if err != nil {
		Errors.WithLabelValues(badgerLayer, "set").Inc()
		return err
	}
	err = c.putItem(endpoint, bytes)
	if err != nil {
		Errors.WithLabelValues(badgerLayer, "set").Inc()
	}
	return err
}

func (c *BadgerCache) getItem(key string, value any) (bool, error) {
	var bytes []byte = nil
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		bytes, err = item.ValueCopy(bytes)
		if err != nil {
			return err
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bytes == nil {
		return false, nil
	}
	return true, json.Unmarshal(bytes, value)
}

func (c *BadgerCache) Get(endpoint string, value any) (bool, error) {
	found, err := c.getItem(endpoint, value)
	if err != nil {
		Errors.WithLabelValues(badgerLayer, "get").Inc()
		slog.Debug("error checking in badger cache", slog.String("endpoint", endpoint), slog.Any("error", err))
		return false, err
	}
	if !found {
		Misses.WithLabelValues(badgerLayer).Inc()
		slog.Debug("not found in badger cache", slog.String("endpoint", endpoint))
		return false, nil
	}
	Hits.WithLabelValues(badgerLayer).Inc()
	slog.Debug("found in badger cache", slog.String("endpoint", endpoint))
	return true, nil
}
