// Package pokemon holds the records the gallery and the deck work with.
package pokemon

import "github.com/nerdwave-nick/multiverse/internal/pokeapi"

// Meta is one entry of the pokemon listing. Name is unique within a listing.
type Meta struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Details is what a card shows. Image is nil when the api has no sprite.
type Details struct {
	Name           string   `json:"name"`
	Image          *string  `json:"image"`
	Height         int      `json:"height"`
	Weight         int      `json:"weight"`
	BaseExperience int      `json:"base_experience"`
	Types          []string `json:"types"`
}

// Placeholder is the record shown when the details of name could not be fetched.
func Placeholder(name string) Details {
	return Details{
		Name:  name,
		Types: []string{},
	}
}

func MetaFromResources(resources []pokeapi.NamedAPIResource) []Meta {
	metas := make([]Meta, 0, len(resources))
	for _, r := range resources {
		metas = append(metas, Meta{Name: r.Name, URL: r.URL})
	}
	return metas
}

// DetailsFromAPI builds the card record for the listing entry name.
// The official artwork is preferred over the battle sprite.
func DetailsFromAPI(name string, p *pokeapi.Pokemon) Details {
	d := Details{
		Name:   name,
		Height: p.Height,
		Weight: p.Weight,
		Types:  make([]string, 0, len(p.Types)),
	}
	if p.BaseExperience != nil {
		d.BaseExperience = *p.BaseExperience
	}
	switch {
	case nonEmpty(p.Sprites.Other.OfficialArtwork.FrontDefault):
		d.Image = p.Sprites.Other.OfficialArtwork.FrontDefault
	case nonEmpty(p.Sprites.FrontDefault):
		d.Image = p.Sprites.FrontDefault
	}
	for _, t := range p.Types {
		d.Types = append(d.Types, t.Type.Name)
	}
	return d
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
