package hubspot

import (
	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Module wires the CRM passthrough HTTP routes.
type Module struct {
	handler *Handler
}

// NewModule creates the hubspot module on top of an already-constructed resolver.
func NewModule(resolver *Resolver, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(resolver, log)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "hubspot"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Root.Group("/hubspot")
	group.GET("/companies", m.handler.ListCompanies)
	group.GET("/company/details", m.handler.CompanyDetails)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
