package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Avi0202/hubspot-task/platform/logger"
)

type stubConfig struct {
	baseURL string
}

func (s stubConfig) GetORSBaseURL() string { return s.baseURL }
func (s stubConfig) GetORSAPIKey() string  { return "test-key" }
func (s stubConfig) GetORSCountry() string { return "US" }

// fakeORS answers geocode and directions calls with canned coordinates and
// a fixed meter distance, recording the directions request bodies.
type fakeORS struct {
	mux *http.ServeMux

	mu             sync.Mutex
	geocoded       []string
	directionsBody []directionsRequest
	failZip        string
	meters         float64
}

func newFakeORS(meters float64) *fakeORS {
	f := &fakeORS{mux: http.NewServeMux(), meters: meters}

	f.mux.HandleFunc("/geocode/search", func(w http.ResponseWriter, r *http.Request) {
		zip := r.URL.Query().Get("text")
		f.mu.Lock()
		f.geocoded = append(f.geocoded, zip)
		f.mu.Unlock()

		if zip == f.failZip {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"features":[]}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"features":[{"geometry":{"coordinates":[-122.08,37.67]}}]}`)
	})

	f.mux.HandleFunc("/v2/directions/", func(w http.ResponseWriter, r *http.Request) {
		var req directionsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.directionsBody = append(f.directionsBody, req)
		f.mu.Unlock()
		_, _ = fmt.Fprintf(w, `{"routes":[{"summary":{"distance":%f}}]}`, f.meters)
	})

	return f
}

func newTestClient(t *testing.T, ors *fakeORS) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(ors.mux)
	return NewClient(stubConfig{baseURL: srv.URL}, logger.New("test")), srv.Close
}

func TestEstimateDistanceMiles_ConvertsMetersToMiles(t *testing.T) {
	ors := newFakeORS(1609.34)
	client, done := newTestClient(t, ors)
	defer done()

	miles, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if miles != 1.00 {
		t.Fatalf("expected 1.00 miles, got %v", miles)
	}
}

func TestEstimateDistanceMiles_RoundsToTwoDecimals(t *testing.T) {
	ors := newFakeORS(4_578_901.0)
	client, done := newTestClient(t, ors)
	defer done()

	miles, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4578901 / 1609.34 = 2845.2046...
	if miles != 2845.20 {
		t.Fatalf("expected 2845.20 miles, got %v", miles)
	}
}

func TestEstimateDistanceMiles_GeocodesBothZips(t *testing.T) {
	ors := newFakeORS(1000)
	client, done := newTestClient(t, ors)
	defer done()

	if _, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ors.mu.Lock()
	defer ors.mu.Unlock()
	if len(ors.geocoded) != 2 {
		t.Fatalf("expected 2 geocode calls, got %d", len(ors.geocoded))
	}
	seen := map[string]bool{}
	for _, zip := range ors.geocoded {
		seen[zip] = true
	}
	if !seen["94544"] || !seen["22201"] {
		t.Fatalf("expected both ZIPs geocoded, got %v", ors.geocoded)
	}
}

func TestEstimateDistanceMiles_GeocodeFailureIsTyped(t *testing.T) {
	ors := newFakeORS(1000)
	ors.failZip = "00000"
	client, done := newTestClient(t, ors)
	defer done()

	_, err := client.EstimateDistanceMiles(context.Background(), "00000", "22201", false)
	if err == nil {
		t.Fatalf("expected error for unresolvable ZIP")
	}
	var geocodeErr *GeocodeError
	if !errors.As(err, &geocodeErr) {
		t.Fatalf("expected *GeocodeError, got %T: %v", err, err)
	}
	if geocodeErr.Zip != "00000" {
		t.Fatalf("expected failing ZIP 00000, got %q", geocodeErr.Zip)
	}
}

func TestEstimateDistanceMiles_TruckProfileCarriesRestrictions(t *testing.T) {
	ors := newFakeORS(1000)
	client, done := newTestClient(t, ors)
	defer done()

	if _, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ors.mu.Lock()
	defer ors.mu.Unlock()
	if len(ors.directionsBody) != 1 {
		t.Fatalf("expected 1 directions call, got %d", len(ors.directionsBody))
	}
	body := ors.directionsBody[0]
	if body.Options == nil {
		t.Fatalf("expected truck restrictions on directions request")
	}
	restr := body.Options.ProfileParams.Restrictions
	if restr.Width != 2.6 || restr.Height != 4.11 || restr.Length != 21.0 || restr.Weight != 36.0 {
		t.Fatalf("unexpected restrictions: %+v", restr)
	}
	if len(body.Radiuses) != 2 || body.Radiuses[0] != 5000 {
		t.Fatalf("expected widened search radiuses, got %v", body.Radiuses)
	}
}

func TestEstimateDistanceMiles_CarProfileOmitsRestrictions(t *testing.T) {
	ors := newFakeORS(1000)
	client, done := newTestClient(t, ors)
	defer done()

	if _, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ors.mu.Lock()
	defer ors.mu.Unlock()
	if body := ors.directionsBody[0]; body.Options != nil || len(body.Radiuses) != 0 {
		t.Fatalf("expected plain car request, got %+v", body)
	}
}

func TestEstimateDistanceMiles_NoRouteIsRoutingError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"features":[{"geometry":{"coordinates":[-122.08,37.67]}}]}`)
	})
	mux.HandleFunc("/v2/directions/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(stubConfig{baseURL: srv.URL}, logger.New("test"))
	_, err := client.EstimateDistanceMiles(context.Background(), "94544", "22201", false)

	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("expected *RoutingError, got %T: %v", err, err)
	}
}
