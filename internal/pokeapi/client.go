package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2/"
	limitParam     = "limit"
	offsetParam    = "offset"
	// ListAllLimit is large enough for the listing endpoint to return every entry in one page.
	ListAllLimit = 100000
)

// Cache has the same shape as the pokeapi-go cache contract, so the layers
// in internal/cache plug into both.
type Cache interface {
	// set, with value being a structure
	Set(endpoint string, value any) error
	// get, with return values being first an unmarshalled structure, then bool whether somethnig was found, and then error if something went wrong
	Get(endpoint string, value any) (bool, error)
}

type Client struct {
	cache   Cache
	client  http.Client
	baseURL string
}

type Option func(*Client)

// WithBaseURL points the client at another api root, e.g. a local mirror or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

// NewClient creates a client. A nil cache disables response caching.
func NewClient(cache Cache, client http.Client, opts ...Option) *Client {
	c := &Client{
		cache:   cache,
		client:  client,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// resolve accepts both endpoints relative to the base url and the absolute
// urls the api hands out inside NamedAPIResource entries.
func (c *Client) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + strings.TrimPrefix(endpoint, "/")
}

func do[T any](ctx context.Context, c *Client, resource string, endpoint string) (*T, error) {
	target := c.resolve(endpoint)
	if c.cache != nil {
		value := new(T)
		found, err := c.cache.Get(target, value)
		if err != nil {
			slog.Warn("reading response cache", slog.String("url", target), slog.Any("error", err))
		} else if found {
			return value, nil
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		observe(resource, outcomeTransport, start)
		return nil, fmt.Errorf("requesting %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		observe(resource, strconv.Itoa(resp.StatusCode), start)
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(resource, outcomeTransport, start)
		return nil, fmt.Errorf("reading body of %s: %w", target, err)
	}
	v := new(T)
	err = json.Unmarshal(body, v)
	if err != nil {
		observe(resource, outcomeDecode, start)
		return nil, fmt.Errorf("decoding %s: %w", target, err)
	}
	observe(resource, strconv.Itoa(resp.StatusCode), start)

	if c.cache != nil {
		if err := c.cache.Set(target, v); err != nil {
			slog.Warn("writing response cache", slog.String("url", target), slog.Any("error", err))
		}
	}
	return v, nil
}

// PokemonList fetches one page of the pokemon listing.
func (c *Client) PokemonList(ctx context.Context, limit, offset int) (*NamedAPIResourceList, error) {
	query := url.Values{}
	query.Set(offsetParam, strconv.Itoa(offset))
	query.Set(limitParam, strconv.Itoa(limit))
	return do[NamedAPIResourceList](ctx, c, "pokemon-list", "pokemon?"+query.Encode())
}

// Pokemon fetches a single pokemon by name, id or the absolute url from a listing entry.
func (c *Client) Pokemon(ctx context.Context, idOrURL string) (*Pokemon, error) {
	endpoint := idOrURL
	if !strings.Contains(idOrURL, "://") {
		endpoint = "pokemon/" + url.PathEscape(idOrURL)
	}
	return do[Pokemon](ctx, c, "pokemon", endpoint)
}
