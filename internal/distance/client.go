// Package distance implements the shipping-distance estimator on top of
// OpenRouteService: each ZIP is geocoded to coordinates, then a driving
// route between the two points yields the distance in miles.
package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"

	"golang.org/x/sync/errgroup"
)

const metersPerMile = 1609.34

// searchRadiusMeters widens route snapping to tolerate imprecise
// ZIP-centroid geocoding.
const searchRadiusMeters = 5000

// Truck profile restriction parameters for the driving-hgv profile.
const (
	truckWidthMeters  = 2.6
	truckHeightMeters = 4.11
	truckLengthMeters = 21.0
	truckWeightTons   = 36.0
)

const (
	profileDriving = "driving-car"
	profileTruck   = "driving-hgv"
)

// Client talks to OpenRouteService.
type Client struct {
	baseURL string
	apiKey  string
	country string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an OpenRouteService client.
func NewClient(cfg config.DistanceConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GetORSBaseURL(),
		apiKey:  cfg.GetORSAPIKey(),
		country: cfg.GetORSCountry(),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// EstimateDistanceMiles geocodes both ZIP codes concurrently, routes between
// them, and converts the meter distance to miles rounded to two decimals.
func (c *Client) EstimateDistanceMiles(ctx context.Context, originZip, destZip string, useTruckProfile bool) (float64, error) {
	var origin, dest coordinate

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		coord, err := c.geocode(gctx, originZip)
		if err != nil {
			return err
		}
		origin = coord
		return nil
	})
	g.Go(func() error {
		coord, err := c.geocode(gctx, destZip)
		if err != nil {
			return err
		}
		dest = coord
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	meters, err := c.route(ctx, origin, dest, useTruckProfile)
	if err != nil {
		return 0, err
	}

	return round2(meters / metersPerMile), nil
}

// geocode resolves one ZIP code to a (lon, lat) pair, restricted to the
// configured country.
func (c *Client) geocode(ctx context.Context, zip string) (coordinate, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("text", zip)
	params.Set("boundary.country", c.country)

	reqURL := c.baseURL + "/geocode/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return coordinate{}, &GeocodeError{Zip: zip, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("openrouteservice", "/geocode/search", err)
		return coordinate{}, &GeocodeError{Zip: zip, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return coordinate{}, &GeocodeError{Zip: zip, Err: fmt.Errorf("upstream status %d", resp.StatusCode)}
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return coordinate{}, &GeocodeError{Zip: zip, Err: err}
	}

	if len(parsed.Features) == 0 || len(parsed.Features[0].Geometry.Coordinates) < 2 {
		return coordinate{}, &GeocodeError{Zip: zip}
	}

	coords := parsed.Features[0].Geometry.Coordinates
	return coordinate{coords[0], coords[1]}, nil
}

// route requests a route between two coordinate pairs and returns the meter
// distance. The truck profile carries heavy-goods restrictions and a widened
// search radius.
func (c *Client) route(ctx context.Context, origin, dest coordinate, useTruckProfile bool) (float64, error) {
	profile := profileDriving
	body := directionsRequest{
		Coordinates: [][2]float64{origin, dest},
	}

	if useTruckProfile {
		profile = profileTruck
		body.Radiuses = []float64{searchRadiusMeters, searchRadiusMeters}
		body.Options = &directionsOptions{
			ProfileParams: profileParams{
				Restrictions: truckRestrictions{
					Width:  truckWidthMeters,
					Height: truckHeightMeters,
					Length: truckLengthMeters,
					Weight: truckWeightTons,
				},
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, &RoutingError{Err: err}
	}

	endpoint := c.baseURL + "/v2/directions/" + profile
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, &RoutingError{Err: err}
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("openrouteservice", "/v2/directions/"+profile, err)
		return 0, &RoutingError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, &RoutingError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		detail := fmt.Sprintf("upstream status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			detail += ": " + parsed.Error.Message
		}
		return 0, &RoutingError{Detail: detail}
	}

	if len(parsed.Routes) == 0 {
		return 0, &RoutingError{Detail: "no route returned"}
	}

	return parsed.Routes[0].Summary.Distance, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
