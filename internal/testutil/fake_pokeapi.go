// Package testutil provides an in-process stand-in for pokeapi.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// FakePokeAPI serves the listing and detail endpoints the gallery uses.
// Every pokemon gets deterministic details derived from its position.
type FakePokeAPI struct {
	server *httptest.Server

	mu            sync.Mutex
	names         []string
	listingStatus int
	detailStatus  map[string]int
	detailBody    map[string]string
	detailDelay   time.Duration
	requests      map[string]int
}

func NewFakePokeAPI(names ...string) *FakePokeAPI {
	f := &FakePokeAPI{
		names:        names,
		detailStatus: make(map[string]int),
		detailBody:   make(map[string]string),
		requests:     make(map[string]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/pokemon", f.listing)
	mux.HandleFunc("GET /api/v2/pokemon/{name}", f.detail)
	mux.HandleFunc("GET /api/v2/pokemon/{name}/", f.detail)
	f.server = httptest.NewServer(mux)
	return f
}

// Names returns n generated pokemon names, handy for paging tests.
func Names(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("mon-%03d", i)
	}
	return names
}

// BaseURL is the api root to hand to pokeapi.WithBaseURL.
func (f *FakePokeAPI) BaseURL() string {
	return f.server.URL + "/api/v2/"
}

func (f *FakePokeAPI) Close() {
	f.server.Close()
}

// FailListing makes the listing endpoint answer with status.
func (f *FakePokeAPI) FailListing(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listingStatus = status
}

// FailDetail makes the detail endpoint of name answer with status.
func (f *FakePokeAPI) FailDetail(name string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailStatus[name] = status
}

// SetDetail overrides the raw json served for name.
func (f *FakePokeAPI) SetDetail(name, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailBody[name] = body
}

// DelayDetails holds every detail response for d.
func (f *FakePokeAPI) DelayDetails(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailDelay = d
}

// Requests returns how often path was requested.
func (f *FakePokeAPI) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *FakePokeAPI) listing(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests[r.URL.Path]++
	status := f.listingStatus
	names := append([]string(nil), f.names...)
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	type entry struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]entry, 0, len(names))
	for _, name := range names {
		results = append(results, entry{Name: name, URL: f.BaseURL() + "pokemon/" + name + "/"})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":    len(results),
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

func (f *FakePokeAPI) detail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.mu.Lock()
	f.requests["/api/v2/pokemon/"+name]++
	status := f.detailStatus[name]
	body, custom := f.detailBody[name]
	delay := f.detailDelay
	index := -1
	for i, n := range f.names {
		if n == name {
			index = i
			break
		}
	}
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if custom {
		_, _ = w.Write([]byte(body))
		return
	}
	if index < 0 {
		http.NotFound(w, r)
		return
	}
	_, _ = fmt.Fprintf(w, `{
		"id": %[1]d,
		"name": %[2]q,
		"base_experience": %[3]d,
		"height": %[4]d,
		"weight": %[5]d,
		"sprites": {
			"front_default": "https://img.example/front/%[2]s.png",
			"other": {"official-artwork": {"front_default": "https://img.example/art/%[2]s.png"}}
		},
		"types": [{"slot": 1, "type": {"name": "normal", "url": "https://pokeapi.co/api/v2/type/1/"}}]
	}`, index+1, name, 50+index, index+1, 10*(index+1))
}

// DetailPath is the request path FakePokeAPI records for name.
func DetailPath(name string) string {
	return "/api/v2/pokemon/" + name
}

// ListingPath is the request path of the listing endpoint.
const ListingPath = "/api/v2/pokemon"

// Height is the height FakePokeAPI serves for the pokemon at index.
func Height(index int) int {
	return index + 1
}
