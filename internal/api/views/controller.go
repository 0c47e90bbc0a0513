package views

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/multiverse/internal/api/common"
	"github.com/nerdwave-nick/multiverse/internal/gallery"
	"github.com/nerdwave-nick/multiverse/internal/session"
)

type SessionInput struct {
	ID string `path:"id" doc:"The view session id"`
}

type DeckAddInput struct {
	ID   string `path:"id" doc:"The view session id"`
	Body struct {
		Name string `json:"name" minLength:"1" doc:"Name of a pokemon shown on the current gallery page"`
	}
}

type DeckRemoveInput struct {
	ID   string `path:"id" doc:"The view session id"`
	Name string `path:"name" doc:"Name of the pokemon to remove"`
}

type StateBody struct {
	Body session.State
}

type Controller struct {
	store *session.Store
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	sessionTags := []string{"Sessions"}
	galleryTags := []string{"Gallery"}
	deckTags := []string{"Deck"}

	common.AddHumaRoute(rctx, c.Create, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/sessions",
		Summary:       "Create a view session",
		Description:   "Fetches the pokemon listing and the first gallery page.",
		Tags:          sessionTags,
		DefaultStatus: http.StatusCreated,
	})
	common.AddHumaRoute(rctx, c.Get, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}",
		Summary:     "Get the state of a view session",
		Tags:        sessionTags,
	})
	common.AddHumaRoute(rctx, c.Delete, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/sessions/{id}",
		Summary:       "Drop a view session",
		Tags:          sessionTags,
		DefaultStatus: http.StatusNoContent,
	})
	common.AddHumaRoute(rctx, c.Next, huma.Operation{
		OperationID: "gallery-next",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/gallery/next",
		Summary:     "Show the next gallery page",
		Tags:        galleryTags,
	})
	common.AddHumaRoute(rctx, c.Back, huma.Operation{
		OperationID: "gallery-back",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/gallery/back",
		Summary:     "Show the previous gallery page",
		Tags:        galleryTags,
	})
	common.AddHumaRoute(rctx, c.Refresh, huma.Operation{
		OperationID: "gallery-refresh",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/gallery/refresh",
		Summary:     "Fetch the current gallery page again",
		Tags:        galleryTags,
	})
	common.AddHumaRoute(rctx, c.AddToDeck, huma.Operation{
		OperationID: "deck-add",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/deck",
		Summary:     "Add a gallery card to the deck",
		Description: "Does nothing when the deck is full or already holds the card. Fails with 409 while the next page is loading.",
		Tags:        deckTags,
	})
	common.AddHumaRoute(rctx, c.RemoveFromDeck, huma.Operation{
		OperationID: "deck-remove",
		Method:      http.MethodDelete,
		Path:        "/api/sessions/{id}/deck/{name}",
		Summary:     "Remove a card from the deck",
		Tags:        deckTags,
	})
}

func (c *Controller) Create(ctx context.Context, _ *struct{}) (*StateBody, error) {
	v, err := c.store.Create(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("fetching the pokemon listing failed", err)
	}
	return &StateBody{Body: v.State()}, nil
}

func (c *Controller) Get(_ context.Context, in *SessionInput) (*StateBody, error) {
	v, err := c.store.Get(in.ID)
	if err != nil {
		return nil, statusError(err)
	}
	return &StateBody{Body: v.State()}, nil
}

func (c *Controller) Delete(_ context.Context, in *SessionInput) (*struct{}, error) {
	c.store.Delete(in.ID)
	return nil, nil
}

func (c *Controller) Next(ctx context.Context, in *SessionInput) (*StateBody, error) {
	return c.navigate(ctx, in.ID, (*session.View).Next)
}

func (c *Controller) Back(ctx context.Context, in *SessionInput) (*StateBody, error) {
	return c.navigate(ctx, in.ID, (*session.View).Back)
}

func (c *Controller) Refresh(ctx context.Context, in *SessionInput) (*StateBody, error) {
	return c.navigate(ctx, in.ID, (*session.View).Refresh)
}

func (c *Controller) navigate(ctx context.Context, id string, move func(*session.View, context.Context) error) (*StateBody, error) {
	v, err := c.store.Get(id)
	if err != nil {
		return nil, statusError(err)
	}
	if err := move(v, ctx); err != nil {
		return nil, statusError(err)
	}
	return &StateBody{Body: v.State()}, nil
}

func (c *Controller) AddToDeck(_ context.Context, in *DeckAddInput) (*StateBody, error) {
	v, err := c.store.Get(in.ID)
	if err != nil {
		return nil, statusError(err)
	}
	added, err := v.AddToDeck(in.Body.Name)
	if err != nil {
		return nil, statusError(err)
	}
	if !added {
		slog.Debug("deck add ignored", slog.String("session", in.ID), slog.String("pokemon", in.Body.Name))
	}
	return &StateBody{Body: v.State()}, nil
}

func (c *Controller) RemoveFromDeck(_ context.Context, in *DeckRemoveInput) (*StateBody, error) {
	v, err := c.store.Get(in.ID)
	if err != nil {
		return nil, statusError(err)
	}
	v.RemoveFromDeck(in.Name)
	return &StateBody{Body: v.State()}, nil
}

func statusError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrNotOnPage):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, gallery.ErrBusy), errors.Is(err, gallery.ErrNotLoaded):
		return huma.Error409Conflict(err.Error())
	default:
		slog.Error("unexpected view error", slog.Any("error", err))
		return huma.Error500InternalServerError("unexpected error", err)
	}
}

func MakeController(store *session.Store) *Controller {
	return &Controller{store: store}
}
