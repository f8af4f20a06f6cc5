package vehicle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avi0202/hubspot-task/platform/httpkit"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Handler exposes the VIN decoding endpoint.
type Handler struct {
	client *Client
	log    *logger.Logger
}

func NewHandler(client *Client, log *logger.Logger) *Handler {
	return &Handler{client: client, log: log}
}

type decodeVINRequest struct {
	VIN string `json:"vin" binding:"required,len=17"`
}

// DecodeVIN handles POST /vin/details.
func (h *Handler) DecodeVIN(c *gin.Context) {
	var req decodeVINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "vin must be a 17 character string", nil)
		return
	}

	descriptor, err := h.client.DecodeVIN(c.Request.Context(), req.VIN)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, descriptor)
}
