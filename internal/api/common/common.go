package common

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type RouteCreationContext struct {
	API huma.API
}

// AddHumaRoute registers handler for op on the api in rctx.
func AddHumaRoute[I, O any](rctx RouteCreationContext, handler func(context.Context, *I) (*O, error), op huma.Operation) {
	huma.Register(rctx.API, op, handler)
}
