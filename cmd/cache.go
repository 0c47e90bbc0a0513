package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/maypok86/otter"
	"github.com/nerdwave-nick/multiverse/internal/cache"
	"github.com/nerdwave-nick/multiverse/internal/pokeapi"
	"github.com/redis/go-redis/v9"
)

// buildCache assembles the pokeapi response cache for opts.CacheMode. The
// returned func releases everything the cache holds open.
func buildCache(ctx context.Context, opts *RootOptions) (pokeapi.Cache, func(), error) {
	if opts.CacheMode == cacheModeNone {
		slog.Info("pokeapi response cache disabled")
		return cache.NoopCache{}, func() {}, nil
	}

	// in memory otter cache
	oc, err := otter.MustBuilder[string, []byte](opts.L1CacheSize).
		WithTTL(time.Duration(opts.L1CacheTTL) * time.Second).
		Build()
	if err != nil {
		return nil, nil, err
	}
	otterCache := cache.NewOtterCache(&oc)
	if opts.CacheMode == cacheModeMemory {
		return otterCache, oc.Close, nil
	}

	l2, closeL2, err := buildL2(ctx, opts)
	if err != nil {
		oc.Close()
		return nil, nil, err
	}
	// multi layer cache with preference for the in memory cache
	multiCache := cache.NewMultiLayerCache(otterCache, l2)
	return multiCache, func() {
		closeL2()
		oc.Close()
	}, nil
}

func buildL2(ctx context.Context, opts *RootOptions) (pokeapi.Cache, func(), error) {
	ttl := time.Duration(opts.L2CacheTTL) * time.Second
	switch opts.L2Backend {
	case l2Redis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", opts.RedisAddr, err)
		}
		slog.Info("redis l2 cache connected", slog.String("address", opts.RedisAddr))
		return cache.NewRedisCache(client, ttl), func() {
			if err := client.Close(); err != nil {
				slog.Error("closing redis client", slog.Any("error", err))
			}
		}, nil
	default:
		// persistent badger db and cache wrapper
		db, err := badger.Open(badger.DefaultOptions(opts.DBPath).WithLogger(&BadgerLoggerWrapper{}))
		if err != nil {
			return nil, nil, err
		}
		badgerCache := cache.NewBadgerCache(db, ttl)
		gcCtx, stopGC := context.WithCancel(ctx)
		badgerBackgroundGC(gcCtx, db, time.Duration(opts.GCInterval)*time.Second)
		slog.Info("badger db background gc started...")
		return &badgerCache, func() {
			stopGC()
			if err := db.Close(); err != nil {
				slog.Error("shutting down db", slog.Any("error", err))
			}
		}, nil
	}
}

func badgerBackgroundGC(ctx context.Context, db *badger.DB, gcInterval time.Duration) {
	go func() {
		for {
			select {
			case <-time.After(gcInterval):
				err := db.RunValueLogGC(0.5)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						slog.Error("running the badger db gc", slog.Any("error", err))
					}
				}
			case <-ctx.Done():
				slog.Debug("badger gc loop shut down")
				return
			}
		}
	}()
}

type BadgerLoggerWrapper struct{}

func (*BadgerLoggerWrapper) Errorf(format string, args ...interface{}) {
	slog.Error(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*BadgerLoggerWrapper) Warningf(format string, args ...interface{}) {
	slog.Warn(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*BadgerLoggerWrapper) Infof(format string, args ...interface{}) {
	slog.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*BadgerLoggerWrapper) Debugf(format string, args ...interface{}) {
	slog.Debug(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}
