package location

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/httpkit"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Module wires the ZIP lookup route.
type Module struct {
	client *Client
}

func NewModule(cfg config.LocationConfig, log *logger.Logger) *Module {
	return &Module{client: NewClient(cfg, log)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "location"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Root.Group("/location")
	group.GET("/:zipcode", m.lookup)
}

func (m *Module) lookup(c *gin.Context) {
	zip := c.Param("zipcode")
	if len(zip) < 3 {
		httpkit.Error(c, http.StatusUnprocessableEntity, "zipcode is too short", nil)
		return
	}

	place, err := m.client.Lookup(c.Request.Context(), zip)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, place)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
