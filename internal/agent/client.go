// Package agent implements the client for agent-style chat collaborators
// (company enrichment, email generation). These endpoints wrap their real
// payload as a JSON string inside the response's "text" field, so decoding
// is an explicit two-stage step with its own failure type.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// ParseError reports malformed nested JSON in an agent response. It is
// recovered locally by the caller substituting default fields, never
// conflated with a transport failure.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("agent payload parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ChatRequest is the wire shape every agent collaborator accepts.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	AgentID   string `json:"agent_id"`
}

type chatResponse struct {
	Text   string `json:"text"`
	Status string `json:"status,omitempty"`
}

// Client posts chat messages to agent endpoints. The timeout is long because
// upstream agents routinely take tens of seconds to answer.
type Client struct {
	http *http.Client
	log  *logger.Logger
}

// NewClient creates an agent-chat client.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: 90 * time.Second},
		log:  log,
	}
}

// ChatJSON sends the request and decodes the JSON payload embedded in the
// response's text field into out. A *ParseError means the transport worked
// but the nested payload was malformed; callers decide whether that is
// recoverable.
func (c *Client) ChatJSON(ctx context.Context, endpoint string, req ChatRequest, out interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "marshal agent request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "build agent request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.UpstreamError("agent", endpoint, err)
		return apperr.Wrap(apperr.KindUnavailable, "agent endpoint unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.Upstream(fmt.Sprintf("agent endpoint returned status %d", resp.StatusCode))
	}

	var outer chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&outer); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "decode agent envelope", err)
	}

	c.log.UpstreamCall("agent", http.MethodPost, endpoint, resp.StatusCode)

	// Agents pad the nested JSON with whitespace and newlines.
	text := strings.TrimSpace(outer.Text)
	if text == "" {
		text = "{}"
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &ParseError{Raw: text, Err: err}
	}
	return nil
}
