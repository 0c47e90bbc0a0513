// Package gallery pages through the pokemon listing and fetches the details
// shown for the current page.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nerdwave-nick/multiverse/internal/pokemon"
)

var (
	ErrNotLoaded = errors.New("gallery listing is not loaded")
	ErrBusy      = errors.New("gallery page is still loading")
)

type Option func(*Gallery)

func WithPageSize(size int) Option {
	return func(g *Gallery) {
		if size > 0 {
			g.pageSize = size
		}
	}
}

// WithFetchTimeout bounds a whole page fetch. Zero means no bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(g *Gallery) {
		g.fetchTimeout = d
	}
}

// Gallery is safe for concurrent use.
//
// Every page fetch takes a token from a counter; only the fetch holding the
// latest token may replace the shown items and clear the loading flag.
type Gallery struct {
	src          Source
	pageSize     int
	fetchTimeout time.Duration

	mu      sync.Mutex
	meta    []pokemon.Meta
	loaded  bool
	page    int
	items   []pokemon.Details
	loading bool
	token   uint64
}

func New(src Source, opts ...Option) *Gallery {
	g := &Gallery{
		src:      src,
		pageSize: PageSize,
		items:    []pokemon.Details{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load fetches the listing and then the first page. Once a load succeeded
// further calls do nothing. A failed listing fetch is returned as is and
// leaves the gallery unloaded.
func (g *Gallery) Load(ctx context.Context) error {
	g.mu.Lock()
	loaded := g.loaded
	g.mu.Unlock()
	if loaded {
		return nil
	}

	meta, err := g.src.ListMeta(ctx)
	if err != nil {
		return fmt.Errorf("loading gallery: %w", err)
	}

	g.mu.Lock()
	if g.loaded {
		g.mu.Unlock()
		return nil
	}
	g.meta = meta
	g.loaded = true
	g.page = 0
	slog.Debug("gallery listing loaded", slog.Int("count", len(meta)))
	if len(meta) == 0 {
		g.mu.Unlock()
		return nil
	}
	token, metas := g.beginLocked()
	g.mu.Unlock()

	g.run(ctx, token, metas)
	return nil
}

func (g *Gallery) Next(ctx context.Context) error {
	return g.navigate(ctx, 1)
}

func (g *Gallery) Back(ctx context.Context) error {
	return g.navigate(ctx, -1)
}

// Refresh fetches the current page again. Unlike navigation it is allowed
// while a fetch is running and supersedes it.
func (g *Gallery) Refresh(ctx context.Context) error {
	g.mu.Lock()
	if !g.loaded {
		g.mu.Unlock()
		return ErrNotLoaded
	}
	if len(g.meta) == 0 {
		g.mu.Unlock()
		return nil
	}
	token, metas := g.beginLocked()
	g.mu.Unlock()

	g.run(ctx, token, metas)
	return nil
}

func (g *Gallery) navigate(ctx context.Context, delta int) error {
	g.mu.Lock()
	if !g.loaded {
		g.mu.Unlock()
		return ErrNotLoaded
	}
	if g.loading {
		g.mu.Unlock()
		return ErrBusy
	}
	target := Clamp(g.page+delta, TotalPages(len(g.meta), g.pageSize))
	if target == g.page {
		g.mu.Unlock()
		return nil
	}
	g.page = target
	token, metas := g.beginLocked()
	g.mu.Unlock()

	g.run(ctx, token, metas)
	return nil
}

// beginLocked marks the gallery loading and hands out the token and slice for
// the current page. g.mu must be held.
func (g *Gallery) beginLocked() (uint64, []pokemon.Meta) {
	g.token++
	g.loading = true
	start, end := Bounds(g.page, g.pageSize, len(g.meta))
	return g.token, slices.Clone(g.meta[start:end])
}

// run fetches metas detached from ctx's cancellation, so a client going away
// does not abort the fetch, and commits the result under token.
func (g *Gallery) run(ctx context.Context, token uint64, metas []pokemon.Meta) {
	fetchCtx := context.WithoutCancel(ctx)
	if g.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, g.fetchTimeout)
		defer cancel()
	}

	start := time.Now()
	details, err := FetchDetails(fetchCtx, g.src, metas)
	PageFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Warn("page shown with placeholders", slog.Uint64("token", token), slog.Any("error", err))
	}

	if !g.commit(token, details) {
		StaleFetchesTotal.Inc()
		slog.Debug("discarding stale page fetch", slog.Uint64("token", token))
	}
}

func (g *Gallery) commit(token uint64, details []pokemon.Details) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.token {
		return false
	}
	g.items = details
	g.loading = false
	return true
}

// Item returns the shown item called name. While a page is loading the shown
// items belong to the previous page, so Item fails with ErrBusy.
func (g *Gallery) Item(name string) (pokemon.Details, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loading {
		return pokemon.Details{}, false, ErrBusy
	}
	for _, item := range g.items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return pokemon.Details{}, false, nil
}

// Snapshot is a consistent copy of the gallery state.
type Snapshot struct {
	Loaded     bool
	Loading    bool
	Page       int
	TotalPages int
	PageSize   int
	MetaCount  int
	Items      []pokemon.Details
}

func (s Snapshot) CanBack() bool {
	return s.Loaded && !s.Loading && s.Page > 0
}

func (s Snapshot) CanNext() bool {
	return s.Loaded && !s.Loading && s.Page < s.TotalPages-1
}

func (g *Gallery) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		Loaded:     g.loaded,
		Loading:    g.loading,
		Page:       g.page,
		TotalPages: TotalPages(len(g.meta), g.pageSize),
		PageSize:   g.pageSize,
		MetaCount:  len(g.meta),
		Items:      slices.Clone(g.items),
	}
}
