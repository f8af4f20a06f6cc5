package vehicle

import (
	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Module wires the VIN decoding route.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.VINConfig, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewClient(cfg, log), log)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "vehicle"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Root.Group("/vin")
	group.POST("/details", m.handler.DecodeVIN)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
