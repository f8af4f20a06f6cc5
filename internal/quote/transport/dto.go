// Package transport defines the request and response shapes for the quote API.
package transport

// Vehicle is one vehicle on a transport quote request, echoed back on the response.
type Vehicle struct {
	VIN   string `json:"vin" validate:"required"`
	Year  int    `json:"year" validate:"required"`
	Make  string `json:"make" validate:"required"`
	Model string `json:"model" validate:"required"`
	Type  string `json:"type"`
}

// Location is a pickup or delivery point.
type Location struct {
	Name   string `json:"name" validate:"required"`
	Street string `json:"street,omitempty"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	Zip    string `json:"zip" validate:"required,min=5,max=10"`
}

// GenerateQuoteRequest is the body for POST /quote/generate.
type GenerateQuoteRequest struct {
	CompanyName     string    `json:"company_name"`
	ContactName     string    `json:"contact_name" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	Phone           string    `json:"phone" validate:"required"`
	AddressLine1    string    `json:"address_line1,omitempty"`
	AddressLine2    string    `json:"address_line2,omitempty"`
	ZipCode         string    `json:"zip_code" validate:"omitempty,min=5,max=10"`
	Country         string    `json:"country,omitempty"`
	State           string    `json:"state,omitempty"`
	City            string    `json:"city,omitempty"`
	Vehicles        []Vehicle `json:"vehicles" validate:"required,min=1,dive"`
	Pickup          Location  `json:"pickup" validate:"required"`
	Delivery        Location  `json:"delivery" validate:"required"`
	UseTruckProfile bool      `json:"use_truck_profile"`
}

// RouteHistory is one comparable past job shown alongside a quote.
type RouteHistory struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DistanceMiles float64 `json:"distance_miles"`
	Date          string  `json:"date"`
	Status        string  `json:"status"` // Won or Lost
	Price         float64 `json:"price"`
	Company       string  `json:"company"`
}

// QuoteResponse is the body for POST /quote/generate. CRM identifiers are
// pointers: a null value means that entity never resolved and the response
// succeeded in degraded form.
type QuoteResponse struct {
	Origin             string         `json:"origin"`
	Destination        string         `json:"destination"`
	DistanceMiles      float64        `json:"distance_miles"`
	SuperDispatchPrice float64        `json:"super_dispatch_price"`
	InternalAiPrice    float64        `json:"internal_ai_price"`
	MarkupPercentage   float64        `json:"markup_percentage"`
	QuoteAmount        float64        `json:"quote_amount"`
	RouteHistory       []RouteHistory `json:"route_history"`
	Vehicles           []Vehicle      `json:"vehicles"`
	CompanyID          *string        `json:"company_id"`
	ContactID          *string        `json:"contact_id"`
	DealID             *string        `json:"deal_id"`
}

// VehicleShort carries the fields needed to describe a vehicle in email copy.
type VehicleShort struct {
	Year  int    `json:"year" validate:"required"`
	Make  string `json:"make" validate:"required"`
	Model string `json:"model" validate:"required"`
}

// GenerateEmailRequest is the body for POST /quote/generate-email.
type GenerateEmailRequest struct {
	ContactName   string         `json:"contact_name" validate:"required"`
	Email         string         `json:"email" validate:"required,email"`
	Vehicles      []VehicleShort `json:"vehicles" validate:"required,min=1,dive"`
	PickupCity    string         `json:"pickup_city" validate:"required"`
	PickupState   string         `json:"pickup_state" validate:"required"`
	DeliveryCity  string         `json:"delivery_city" validate:"required"`
	DeliveryState string         `json:"delivery_state" validate:"required"`
	QuoteAmount   float64        `json:"final_quote_amount" validate:"required,gt=0"`
}

// GenerateEmailResponse is the generated email copy. Fields may be empty
// when the upstream agent returned malformed content.
type GenerateEmailResponse struct {
	Subject string `json:"email_subject"`
	Body    string `json:"email_body"`
}

// QuoteEmailRequest is the body for POST /quote/send-quote-email. The
// company identifier is optional; deal and contact identifiers come from a
// prior generate call.
type QuoteEmailRequest struct {
	CompanyID     string  `json:"company_id"`
	ContactID     string  `json:"contact_id" validate:"required"`
	DealID        string  `json:"deal_id" validate:"required"`
	ToEmail       string  `json:"to_email" validate:"omitempty,email"`
	EmailSubject  string  `json:"email_subject" validate:"required"`
	EmailBody     string  `json:"email_body" validate:"required"`
	DistanceMiles float64 `json:"distance_miles" validate:"gte=0"`
	QuoteAmount   float64 `json:"quote_amount" validate:"gt=0"`
}

// QuoteEmailResponse reports the CRM records written for a sent quote email.
type QuoteEmailResponse struct {
	Status  string `json:"status"`
	DealID  string `json:"deal_id"`
	EmailID string `json:"email_id"`
	QuoteID string `json:"quote_id,omitempty"`
}
