// Package vehicle implements VIN decoding through the NHTSA vPIC API.
package vehicle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Descriptor is the decoded vehicle view returned to clients.
type Descriptor struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Type  string `json:"type"`
}

type decodeResponse struct {
	Results []map[string]string `json:"Results"`
}

// Client decodes VINs against the NHTSA vPIC API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(cfg config.VINConfig, log *logger.Logger) *Client {
	timeout := cfg.GetVINTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.GetVINAPIURL(), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// DecodeVIN fetches the decoded values for one VIN. Timeouts map to a
// gateway-timeout error, any other transport failure to service-unavailable.
func (c *Client) DecodeVIN(ctx context.Context, vin string) (Descriptor, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	endpoint := fmt.Sprintf("%s/DecodeVinValues/%s?format=json", c.baseURL, vin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Descriptor{}, apperr.Wrap(apperr.KindInternal, "build vin request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("nhtsa", endpoint, err)
		if isTimeout(err) {
			return Descriptor{}, apperr.Wrap(apperr.KindTimeout, "vin decode request timed out", err)
		}
		return Descriptor{}, apperr.Wrap(apperr.KindUnavailable, "vin decode request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Descriptor{}, apperr.Upstream(fmt.Sprintf("vin decode returned status %d", resp.StatusCode))
	}

	var parsed decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Descriptor{}, apperr.Wrap(apperr.KindUpstream, "decode vin response", err)
	}
	if len(parsed.Results) == 0 {
		return Descriptor{}, apperr.Upstream("vin decode returned no results")
	}

	c.log.UpstreamCall("nhtsa", http.MethodGet, endpoint, resp.StatusCode)

	result := parsed.Results[0]
	bodyClass := result["BodyClass"]
	if bodyClass == "" {
		bodyClass = "Unknown"
	}
	return Descriptor{
		Year:  result["ModelYear"],
		Make:  result["Make"],
		Model: result["Model"],
		Type:  bodyClass,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
