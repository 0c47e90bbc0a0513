package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/nerdwave-nick/multiverse/internal/api/common"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Controller interface {
	RegisterRoutes(rctx common.RouteCreationContext)
}

type RouterOptions struct {
	// AllowedOrigins for cross origin api calls. Empty allows every origin.
	AllowedOrigins []string
}

// MakeRouter registers the controllers and /metrics on mux and wraps it in the cors handler.
func MakeRouter(mux *http.ServeMux, controllers []Controller, opts RouterOptions) http.Handler {
	config := huma.DefaultConfig("multiverse", "1.0.0")
	config.Info.Description = "Pokémon gallery and deck builder backed by pokeapi"
	humaAPI := humago.New(mux, config)

	rctx := common.RouteCreationContext{API: humaAPI}
	for _, c := range controllers {
		c.RegisterRoutes(rctx)
	}

	mux.Handle("GET /metrics", promhttp.Handler())

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}
