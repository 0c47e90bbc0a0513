// Package session binds one gallery and one deck to the browser tab that
// created them.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/nerdwave-nick/multiverse/internal/deck"
	"github.com/nerdwave-nick/multiverse/internal/gallery"
	"github.com/nerdwave-nick/multiverse/internal/pokemon"
)

// ErrNotOnPage is returned when a pokemon is added that the gallery is not showing.
var ErrNotOnPage = errors.New("pokemon is not on the current gallery page")

type View struct {
	id      string
	gallery *gallery.Gallery

	mu   sync.Mutex
	deck *deck.Deck
}

func NewView(id string, g *gallery.Gallery, d *deck.Deck) *View {
	return &View{
		id:      id,
		gallery: g,
		deck:    d,
	}
}

func (v *View) ID() string {
	return v.id
}

func (v *View) Next(ctx context.Context) error {
	return v.gallery.Next(ctx)
}

func (v *View) Back(ctx context.Context) error {
	return v.gallery.Back(ctx)
}

func (v *View) Refresh(ctx context.Context) error {
	return v.gallery.Refresh(ctx)
}

// AddToDeck adds the shown gallery card called name. It reports false
// without error when the deck is full or already holds the card, and fails
// with gallery.ErrBusy while the next page is loading.
func (v *View) AddToDeck(name string) (bool, error) {
	item, ok, err := v.gallery.Item(name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotOnPage
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deck.Add(item), nil
}

func (v *View) RemoveFromDeck(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deck.Remove(name)
}

// Card is a gallery entry together with the state of its add button.
type Card struct {
	pokemon.Details
	CanAdd bool `json:"canAdd"`
}

// State is everything the page needs to render one view.
type State struct {
	ID           string            `json:"id"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"totalPages"`
	PageSize     int               `json:"pageSize"`
	Loading      bool              `json:"loading"`
	CanBack      bool              `json:"canBack"`
	CanNext      bool              `json:"canNext"`
	Gallery      []Card            `json:"gallery"`
	Deck         []pokemon.Details `json:"deck"`
	DeckCount    int               `json:"deckCount"`
	DeckCapacity int               `json:"deckCapacity"`
}

func (v *View) State() State {
	snap := v.gallery.Snapshot()

	v.mu.Lock()
	defer v.mu.Unlock()
	cards := make([]Card, 0, len(snap.Items))
	for _, item := range snap.Items {
		cards = append(cards, Card{Details: item, CanAdd: !snap.Loading && v.deck.CanAdd(item.Name)})
	}
	return State{
		ID:           v.id,
		Page:         snap.Page,
		TotalPages:   snap.TotalPages,
		PageSize:     snap.PageSize,
		Loading:      snap.Loading,
		CanBack:      snap.CanBack(),
		CanNext:      snap.CanNext(),
		Gallery:      cards,
		Deck:         v.deck.Entries(),
		DeckCount:    v.deck.Len(),
		DeckCapacity: v.deck.Cap(),
	}
}
