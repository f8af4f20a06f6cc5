// Package handler exposes the quote HTTP endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Avi0202/hubspot-task/internal/quote/service"
	"github.com/Avi0202/hubspot-task/internal/quote/transport"
	"github.com/Avi0202/hubspot-task/platform/httpkit"
	"github.com/Avi0202/hubspot-task/platform/logger"
	"github.com/Avi0202/hubspot-task/platform/validator"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
	log      *logger.Logger
}

func NewHandler(svc *service.Service, validate *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, validate: validate, log: log}
}

// GenerateQuote handles POST /quote/generate.
func (h *Handler) GenerateQuote(c *gin.Context) {
	var req transport.GenerateQuoteRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.GenerateQuote(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GenerateEmail handles POST /quote/generate-email.
func (h *Handler) GenerateEmail(c *gin.Context) {
	var req transport.GenerateEmailRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.GenerateEmail(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// SendQuoteEmail handles POST /quote/send-quote-email.
func (h *Handler) SendQuoteEmail(c *gin.Context) {
	var req transport.QuoteEmailRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.SendQuoteEmail(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// bind decodes the JSON body and validates it, answering 422 with per-field
// details on failure.
func (h *Handler) bind(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		httpkit.ValidationFailed(c, []string{err.Error()})
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		httpkit.ValidationFailed(c, validator.Fields(err))
		return false
	}
	return true
}
