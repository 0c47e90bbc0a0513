package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"github.com/nerdwave-nick/multiverse/internal/deck"
	"github.com/nerdwave-nick/multiverse/internal/gallery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrNotFound = errors.New("session not found")

var (
	CreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multiverse_sessions_created_total",
			Help: "Total number of view sessions created",
		},
	)

	// LoadFailuresTotal counts sessions that could not be created because the listing failed
	LoadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multiverse_session_load_failures_total",
			Help: "Total number of view sessions whose listing fetch failed",
		},
	)
)

// Store keeps views in memory and forgets them after ttl.
type Store struct {
	views       otter.Cache[string, *View]
	src         gallery.Source
	galleryOpts []gallery.Option
}

func NewStore(src gallery.Source, size int, ttl time.Duration, opts ...gallery.Option) (*Store, error) {
	views, err := otter.MustBuilder[string, *View](size).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, err
	}
	return &Store{views: views, src: src, galleryOpts: opts}, nil
}

// Create builds a view and loads its gallery. The view is only stored when
// the listing could be fetched.
func (s *Store) Create(ctx context.Context) (*View, error) {
	id := uuid.NewString()
	v := NewView(id, gallery.New(s.src, s.galleryOpts...), deck.New())
	if err := v.gallery.Load(ctx); err != nil {
		LoadFailuresTotal.Inc()
		slog.Error("loading view session", slog.String("session", id), slog.Any("error", err))
		return nil, err
	}
	s.views.Set(id, v)
	CreatedTotal.Inc()
	slog.Debug("view session created", slog.String("session", id))
	return v, nil
}

func (s *Store) Get(id string) (*View, error) {
	v, ok := s.views.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *Store) Delete(id string) {
	s.views.Delete(id)
}

func (s *Store) Close() {
	s.views.Close()
}
