package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/multiverse/internal/api/common"
)

type HealthBody struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

type Controller struct{}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	defaultTags := []string{"Health"}
	// basic health/liveness check routes
	common.AddHumaRoute(rctx, c.Healthz, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/api/healthz",
		Summary:     "Liveness check",
		Tags:        defaultTags,
	})
}

// Healthz reports that the server is running and serving requests.
func (c *Controller) Healthz(_ context.Context, _ *struct{}) (*HealthBody, error) {
	resp := &HealthBody{}
	resp.Body.Status = "ok"
	return resp, nil
}

func MakeController() *Controller {
	return &Controller{}
}
