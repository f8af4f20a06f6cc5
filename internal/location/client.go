// Package location resolves US ZIP codes to city and state through the
// Zippopotam API.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// Place is the resolved view of a ZIP code.
type Place struct {
	Zip       string `json:"zip"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateAbbr string `json:"state_abbr"`
}

type zippoResponse struct {
	Places []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state"`
		StateAbbr string `json:"state abbreviation"`
	} `json:"places"`
}

// Client looks up ZIP codes.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(cfg config.LocationConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GetZippoBaseURL(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Lookup resolves one ZIP code. Unknown ZIP codes map to a not-found error.
func (c *Client) Lookup(ctx context.Context, zip string) (Place, error) {
	endpoint := c.baseURL + "/" + zip

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Place{}, apperr.Wrap(apperr.KindInternal, "build zip lookup request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("zippopotam", endpoint, err)
		return Place{}, apperr.Wrap(apperr.KindUnavailable, "zip lookup request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Place{}, apperr.NotFound(fmt.Sprintf("invalid or unknown ZIP code %s", zip))
	}

	var parsed zippoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Place{}, apperr.Wrap(apperr.KindUpstream, "decode zip lookup response", err)
	}
	if len(parsed.Places) == 0 {
		return Place{}, apperr.NotFound(fmt.Sprintf("invalid or unknown ZIP code %s", zip))
	}

	c.log.UpstreamCall("zippopotam", http.MethodGet, endpoint, resp.StatusCode)

	place := parsed.Places[0]
	return Place{
		Zip:       zip,
		City:      place.PlaceName,
		State:     place.State,
		StateAbbr: place.StateAbbr,
	}, nil
}
