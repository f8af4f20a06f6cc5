// Package hubspot implements the CRM collaborator: a bearer-token REST
// client, get-or-create entity resolution with conflict recovery, and
// bidirectional association management.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"

	"golang.org/x/time/rate"
)

// Client is a thin HubSpot v3 REST client shared by the resolver, the
// association manager, and the passthrough handlers.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates a HubSpot client. The rate limiter keeps the process
// under HubSpot's per-account request budget.
func NewClient(cfg config.HubSpotConfig, log *logger.Logger) *Client {
	rps := cfg.GetHubSpotRequestsPerSecond()
	if rps <= 0 {
		rps = 8
	}

	return &Client{
		baseURL: cfg.GetHubSpotBaseURL(),
		token:   cfg.GetHubSpotToken(),
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
		log:     log,
	}
}

// APIResponse is the raw outcome of a HubSpot call. Non-2xx statuses are
// returned here rather than as errors so callers can inspect conflict bodies.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response status is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into out.
func (r *APIResponse) Decode(out interface{}) error {
	return json.Unmarshal(r.Body, out)
}

// Do performs a single HubSpot request. A transport failure is returned as a
// typed unavailable error; HTTP-level failures are returned in the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (*APIResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "hubspot rate limit wait interrupted", err)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "marshal hubspot payload", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build hubspot request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("hubspot", endpoint, err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "hubspot unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "read hubspot response", err)
	}

	c.log.UpstreamCall("hubspot", method, endpoint, resp.StatusCode)

	return &APIResponse{StatusCode: resp.StatusCode, Body: buf.Bytes()}, nil
}

// rejected builds the typed error for a non-2xx, non-conflict response.
func rejected(endpoint string, resp *APIResponse) error {
	return apperr.Upstream(fmt.Sprintf("hubspot rejected %s with status %d", endpoint, resp.StatusCode)).
		WithDetails(string(resp.Body))
}

func objectPath(objectType string) string {
	return "/crm/v3/objects/" + objectType
}
