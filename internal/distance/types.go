package distance

import "fmt"

// GeocodeError reports that a ZIP code could not be resolved to coordinates.
// It is terminal for the quote request: pricing cannot proceed without a distance.
type GeocodeError struct {
	Zip string
	Err error
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode failed for ZIP %s: %v", e.Zip, e.Err)
	}
	return fmt.Sprintf("geocode failed for ZIP %s", e.Zip)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// RoutingError reports that no route was returned between two geocoded points.
type RoutingError struct {
	Detail string
	Err    error
}

func (e *RoutingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routing failed: %v", e.Err)
	}
	return "routing failed: " + e.Detail
}

func (e *RoutingError) Unwrap() error { return e.Err }

// coordinate is an ORS (lon, lat) pair.
type coordinate [2]float64

// ── OpenRouteService wire shapes ──────────────────────────────────────────────

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type directionsRequest struct {
	Coordinates [][2]float64       `json:"coordinates"`
	Radiuses    []float64          `json:"radiuses,omitempty"`
	Options     *directionsOptions `json:"options,omitempty"`
}

type directionsOptions struct {
	ProfileParams profileParams `json:"profile_params"`
}

type profileParams struct {
	Restrictions truckRestrictions `json:"restrictions"`
}

type truckRestrictions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
		} `json:"summary"`
	} `json:"routes"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
