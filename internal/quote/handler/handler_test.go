package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Avi0202/hubspot-task/internal/quote/service"
	"github.com/Avi0202/hubspot-task/platform/logger"
	"github.com/Avi0202/hubspot-task/platform/validator"
)

// newValidationRouter builds a router whose service collaborators are never
// reached; only the binding and validation layer is exercised.
func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")
	h := NewHandler(&service.Service{}, validator.New(), log)

	engine := gin.New()
	engine.POST("/quote/generate", h.GenerateQuote)
	engine.POST("/quote/generate-email", h.GenerateEmail)
	engine.POST("/quote/send-quote-email", h.SendQuoteEmail)
	return engine
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGenerateQuote_RejectsMissingFields(t *testing.T) {
	engine := newValidationRouter()

	rec := post(engine, "/quote/generate", `{"contact_name":"Alice"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateQuote_RejectsMalformedJSON(t *testing.T) {
	engine := newValidationRouter()

	rec := post(engine, "/quote/generate", `{not json`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestGenerateQuote_RejectsShortZip(t *testing.T) {
	engine := newValidationRouter()

	body := `{
		"contact_name": "Alice Smith",
		"email": "alice@example.com",
		"phone": "+14155550100",
		"vehicles": [{"vin": "1HGBH41JXMN109186", "year": 2021, "make": "Honda", "model": "Civic"}],
		"pickup": {"name": "Pickup", "city": "Hayward", "state": "CA", "zip": "945"},
		"delivery": {"name": "Delivery", "city": "Arlington", "state": "VA", "zip": "22201"}
	}`
	rec := post(engine, "/quote/generate", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for short zip, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Zip") {
		t.Fatalf("expected field detail naming Zip, got %s", rec.Body.String())
	}
}

func TestGenerateQuote_RejectsEmptyVehicles(t *testing.T) {
	engine := newValidationRouter()

	body := `{
		"contact_name": "Alice Smith",
		"email": "alice@example.com",
		"phone": "+14155550100",
		"vehicles": [],
		"pickup": {"name": "Pickup", "city": "Hayward", "state": "CA", "zip": "94544"},
		"delivery": {"name": "Delivery", "city": "Arlington", "state": "VA", "zip": "22201"}
	}`
	rec := post(engine, "/quote/generate", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty vehicles, got %d", rec.Code)
	}
}

func TestGenerateEmail_RejectsInvalidEmail(t *testing.T) {
	engine := newValidationRouter()

	body := `{
		"contact_name": "Alice",
		"email": "not-an-email",
		"vehicles": [{"year": 2021, "make": "Honda", "model": "Civic"}],
		"pickup_city": "Hayward", "pickup_state": "CA",
		"delivery_city": "Arlington", "delivery_state": "VA",
		"final_quote_amount": 3186.62
	}`
	rec := post(engine, "/quote/generate-email", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad email, got %d", rec.Code)
	}
}

func TestSendQuoteEmail_RequiresDealAndContact(t *testing.T) {
	engine := newValidationRouter()

	rec := post(engine, "/quote/send-quote-email", `{"email_subject":"s","email_body":"b","quote_amount":100}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without deal and contact ids, got %d", rec.Code)
	}
}
