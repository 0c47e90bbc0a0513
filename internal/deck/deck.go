// Package deck keeps the user's selection of pokemon.
//
// A deck is bounded, keeps insertion order and holds every name at most once.
// It is not safe for concurrent use; callers serialize access.
package deck

import (
	"slices"

	"github.com/nerdwave-nick/multiverse/internal/pokemon"
)

const Capacity = 10

type Deck struct {
	capacity int
	entries  []pokemon.Details
}

// New creates an empty deck with the default capacity.
func New() *Deck {
	return NewWithCapacity(Capacity)
}

func NewWithCapacity(capacity int) *Deck {
	if capacity < 0 {
		capacity = 0
	}
	return &Deck{capacity: capacity, entries: make([]pokemon.Details, 0, capacity)}
}

// Add appends p and reports whether the deck changed.
// Nothing happens when the deck is full or already holds p.Name.
func (d *Deck) Add(p pokemon.Details) bool {
	if !d.CanAdd(p.Name) {
		return false
	}
	d.entries = append(d.entries, p)
	return true
}

// Remove drops the entry called name and reports whether the deck changed.
func (d *Deck) Remove(name string) bool {
	i := d.index(name)
	if i < 0 {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	return true
}

func (d *Deck) CanAdd(name string) bool {
	return !d.Full() && !d.Contains(name)
}

func (d *Deck) Contains(name string) bool {
	return d.index(name) >= 0
}

func (d *Deck) Full() bool {
	return len(d.entries) >= d.capacity
}

func (d *Deck) Len() int {
	return len(d.entries)
}

func (d *Deck) Cap() int {
	return d.capacity
}

// Entries returns a copy of the deck in insertion order.
func (d *Deck) Entries() []pokemon.Details {
	return slices.Clone(d.entries)
}

func (d *Deck) index(name string) int {
	return slices.IndexFunc(d.entries, func(p pokemon.Details) bool { return p.Name == name })
}
