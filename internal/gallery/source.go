package gallery

import (
	"context"
	"fmt"

	"github.com/nerdwave-nick/multiverse/internal/pokeapi"
	"github.com/nerdwave-nick/multiverse/internal/pokemon"
)

// Source is where the gallery gets its listing and card details from.
type Source interface {
	ListMeta(ctx context.Context) ([]pokemon.Meta, error)
	Details(ctx context.Context, meta pokemon.Meta) (pokemon.Details, error)
}

type APISource struct {
	client *pokeapi.Client
}

func NewAPISource(client *pokeapi.Client) *APISource {
	return &APISource{client: client}
}

func (s *APISource) ListMeta(ctx context.Context) ([]pokemon.Meta, error) {
	list, err := s.client.PokemonList(ctx, pokeapi.ListAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching pokemon listing: %w", err)
	}
	return pokemon.MetaFromResources(list.Results), nil
}

func (s *APISource) Details(ctx context.Context, meta pokemon.Meta) (pokemon.Details, error) {
	target := meta.URL
	if target == "" {
		target = meta.Name
	}
	p, err := s.client.Pokemon(ctx, target)
	if err != nil {
		return pokemon.Details{}, fmt.Errorf("fetching details of %s: %w", meta.Name, err)
	}
	return pokemon.DetailsFromAPI(meta.Name, p), nil
}
