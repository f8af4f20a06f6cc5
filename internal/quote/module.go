// Package quote wires the quote generation module: pricing, CRM
// orchestration, route history, and the quote email workflow.
package quote

import (
	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/internal/quote/handler"
	"github.com/Avi0202/hubspot-task/internal/quote/service"
	"github.com/Avi0202/hubspot-task/platform/logger"
	"github.com/Avi0202/hubspot-task/platform/validator"
)

// Module wires the quote HTTP routes.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the quote module on top of already-constructed
// collaborators.
func NewModule(svc *service.Service, validate *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: handler.NewHandler(svc, validate, log)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quote"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Root.Group("/quote")
	group.POST("/generate", m.handler.GenerateQuote)
	group.POST("/generate-email", m.handler.GenerateEmail)
	group.POST("/send-quote-email", m.handler.SendQuoteEmail)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
