package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/internal/quote/transport"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// AgentChat posts a message to an agent endpoint and decodes the JSON
// payload nested in its reply.
type AgentChat interface {
	ChatJSON(ctx context.Context, endpoint string, req agent.ChatRequest, out interface{}) error
}

// EmailComposer produces quote email copy. When an email generation agent is
// configured the copy comes from it; otherwise a deterministic local template
// is used.
type EmailComposer struct {
	chat    AgentChat
	cfg     config.AgentConfig
	log     *logger.Logger
	printer *message.Printer
}

func NewEmailComposer(chat AgentChat, cfg config.AgentConfig, log *logger.Logger) *EmailComposer {
	return &EmailComposer{
		chat:    chat,
		cfg:     cfg,
		log:     log,
		printer: message.NewPrinter(language.English),
	}
}

type agentEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Compose generates the email subject and body for a quote. A malformed
// agent reply degrades to empty copy rather than failing the request.
func (c *EmailComposer) Compose(ctx context.Context, req transport.GenerateEmailRequest) (*transport.GenerateEmailResponse, error) {
	endpoint := c.cfg.GetEmailGenerationURL()
	if endpoint == "" {
		return c.composeLocal(req), nil
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal email context: %w", err)
	}

	var out agentEmail
	err = c.chat.ChatJSON(ctx, endpoint, agent.ChatRequest{
		SessionID: c.cfg.GetEmailSessionID(),
		Message:   string(payload),
		AgentID:   c.cfg.GetEmailAgentID(),
	}, &out)
	if err != nil {
		var parseErr *agent.ParseError
		if errors.As(err, &parseErr) {
			c.log.Warn("email agent returned malformed content", "raw", parseErr.Raw)
			return &transport.GenerateEmailResponse{}, nil
		}
		return nil, err
	}
	return &transport.GenerateEmailResponse{Subject: out.Subject, Body: out.Body}, nil
}

func (c *EmailComposer) composeLocal(req transport.GenerateEmailRequest) *transport.GenerateEmailResponse {
	vehicles := make([]string, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		vehicles = append(vehicles, fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
	}
	vehicleText := joinWithAnd(vehicles)

	pickup := fmt.Sprintf("%s, %s", req.PickupCity, req.PickupState)
	delivery := fmt.Sprintf("%s, %s", req.DeliveryCity, req.DeliveryState)
	amount := c.printer.Sprintf("$%d", int64(math.Round(req.QuoteAmount)))

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for your inquiry about shipping your %s from %s to %s.\n\n"+
			"I'm pleased to provide you with a quote of %s for this transport. This includes:\n\n"+
			"• Full insurance coverage during transport\n"+
			"• Door-to-door service\n"+
			"• Real-time tracking updates\n"+
			"• Estimated delivery within 3-5 business days\n\n"+
			"Our team has successfully completed similar routes recently with excellent customer satisfaction. "+
			"If you'd like to proceed or have any questions, please don't hesitate to reach out.\n\n"+
			"Best regards,\n"+
			"Ethan Valentine\n"+
			"First Source Auto",
		req.ContactName, vehicleText, pickup, delivery, amount,
	)

	return &transport.GenerateEmailResponse{
		Subject: fmt.Sprintf("Auto Transport Quote - %s to %s", pickup, delivery),
		Body:    body,
	}
}

func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
