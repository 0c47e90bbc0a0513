package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerdwave-nick/multiverse/internal/api/health"
	"github.com/nerdwave-nick/multiverse/internal/frontend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts RouterOptions) *httptest.Server {
	t.Helper()
	assets, err := frontend.GetAssetFS()
	require.NoError(t, err)
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(assets)))
	router := MakeRouter(mux, []Controller{health.MakeController()}, opts)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	server := newServer(t, RouterOptions{})
	resp, body := get(t, server.URL+"/api/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestFrontendIsServed(t *testing.T) {
	server := newServer(t, RouterOptions{})
	resp, body := get(t, server.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Pokémon Gallery")
	assert.Contains(t, body, "Your Deck")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newServer(t, RouterOptions{})
	resp, body := get(t, server.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestOpenAPI(t *testing.T) {
	server := newServer(t, RouterOptions{})
	resp, body := get(t, server.URL+"/openapi.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/api/healthz")
}

func TestCORS(t *testing.T) {
	server := newServer(t, RouterOptions{AllowedOrigins: []string{"http://allowed.example"}})

	resp, _ := get(t, server.URL+"/api/healthz", http.Header{"Origin": {"http://allowed.example"}})
	assert.Equal(t, "http://allowed.example", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = get(t, server.URL+"/api/healthz", http.Header{"Origin": {"http://other.example"}})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	open := newServer(t, RouterOptions{})
	resp, _ = get(t, open.URL+"/api/healthz", http.Header{"Origin": {"http://anywhere.example"}})
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
