package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Avi0202/hubspot-task/platform/logger"
	"github.com/Avi0202/hubspot-task/platform/phone"
)

// dealToCompanyTypeID is the HubSpot-defined association type attached when
// a deal is created with a known company.
const dealToCompanyTypeID = 341

var companyProperties = []string{"name", "domain", "phone", "address"}

// Resolver maps logical business keys to CRM identifiers, creating records
// when absent. Companies take the idempotent search-first path; contacts and
// deals are created optimistically and rely on the server's 409 conflict
// response to converge on the existing identifier.
type Resolver struct {
	client    *Client
	conflicts ConflictResolver
	log       *logger.Logger
}

// NewResolver creates an entity resolver on top of the shared client.
func NewResolver(client *Client, log *logger.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// ResolveCompany returns the identifier for the company with the given name,
// creating the record when no exact-name match exists.
func (r *Resolver) ResolveCompany(ctx context.Context, name, phoneNumber, address string) (CompanyRef, error) {
	existing, err := r.searchCompanyExact(ctx, name)
	if err != nil {
		return CompanyRef{Name: name}, err
	}
	if existing != nil {
		r.log.Info("company resolved via search", "name", name, "id", existing.ID)
		return CompanyRef{ID: existing.ID, Name: name}, nil
	}

	props := map[string]string{"name": name}
	if phoneNumber != "" {
		props["phone"] = phone.NormalizeE164(phoneNumber)
	}
	if address != "" {
		props["address"] = address
	}

	id, err := r.createObject(ctx, ObjectCompanies, objectRequest{Properties: props})
	if err != nil {
		return CompanyRef{Name: name}, err
	}
	return CompanyRef{ID: id, Name: name}, nil
}

// CreateContact creates a contact record optimistically. A 409 conflict with
// a parseable existing identifier resolves to that identifier.
func (r *Resolver) CreateContact(ctx context.Context, name, email, phoneNumber string) (ContactRef, error) {
	first, last := splitName(name)
	props := map[string]string{
		"email": email,
	}
	if first != "" {
		props["firstname"] = first
	}
	if last != "" {
		props["lastname"] = last
	}
	if phoneNumber != "" {
		props["phone"] = phone.NormalizeE164(phoneNumber)
	}

	id, err := r.createObject(ctx, ObjectContacts, objectRequest{Properties: props})
	if err != nil {
		return ContactRef{}, err
	}
	return ContactRef{ID: id}, nil
}

// DealInput carries the fields needed to create a transport deal.
type DealInput struct {
	ContactName  string
	CompanyID    string
	PickupCity   string
	DeliveryCity string
	Vehicles     []VehicleDescriptor
}

// CreateDeal creates the transport deal. When the company identifier is
// known it is attached on the create call itself so the deal lands linked.
func (r *Resolver) CreateDeal(ctx context.Context, in DealInput) (DealRef, error) {
	name := DealName(in.ContactName, in.Vehicles)
	props := map[string]string{
		"dealname":    name,
		"description": fmt.Sprintf("Vehicle transport from %s to %s", in.PickupCity, in.DeliveryCity),
	}

	req := objectRequest{Properties: props}
	if in.CompanyID != "" {
		req.Associations = []objectAssociation{{
			To: associationTarget{ID: in.CompanyID},
			Types: []associationType{{
				AssociationCategory: "HUBSPOT_DEFINED",
				AssociationTypeID:   dealToCompanyTypeID,
			}},
		}}
	}

	id, err := r.createObject(ctx, ObjectDeals, req)
	if err != nil {
		return DealRef{Name: name}, err
	}
	return DealRef{ID: id, Name: name}, nil
}

// CreateEmailEngagement logs an email as a CRM engagement record with a
// millisecond Unix timestamp.
func (r *Resolver) CreateEmailEngagement(ctx context.Context, subject, body string, at time.Time) (string, error) {
	props := map[string]string{
		"hs_timestamp":       strconv.FormatInt(at.UnixMilli(), 10),
		"hs_email_subject":   subject,
		"hs_email_text":      body,
		"hs_email_direction": "EMAIL",
	}
	return r.createObject(ctx, ObjectEmails, objectRequest{Properties: props})
}

// CreateQuoteRecord creates the CRM quote object recorded alongside a sent
// quote email.
func (r *Resolver) CreateQuoteRecord(ctx context.Context, title string, amount float64, expiresAt time.Time) (string, error) {
	props := map[string]string{
		"hs_title":           title,
		"hs_expiration_date": expiresAt.UTC().Format("2006-01-02"),
		"amount":             strconv.FormatFloat(amount, 'f', 2, 64),
	}
	return r.createObject(ctx, ObjectQuotes, objectRequest{Properties: props})
}

// UpdateDeal patches deal properties by identifier.
func (r *Resolver) UpdateDeal(ctx context.Context, dealID string, props map[string]string) error {
	return r.patchObject(ctx, ObjectDeals, dealID, props)
}

// UpdateCompany patches company properties by identifier.
func (r *Resolver) UpdateCompany(ctx context.Context, companyID string, props map[string]string) error {
	return r.patchObject(ctx, ObjectCompanies, companyID, props)
}

// SearchCompaniesByToken runs a contains-token name search, used by the
// passthrough company-details endpoint.
func (r *Resolver) SearchCompaniesByToken(ctx context.Context, name string) ([]Company, error) {
	return r.searchCompanies(ctx, searchFilter{
		PropertyName: "name",
		Operator:     "CONTAINS_TOKEN",
		Value:        name,
	})
}

// ListCompanies fetches up to limit companies.
func (r *Resolver) ListCompanies(ctx context.Context, limit int) ([]Company, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("properties", strings.Join(companyProperties, ","))

	resp, err := r.client.Do(ctx, http.MethodGet, objectPath(ObjectCompanies), params, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, rejected(objectPath(ObjectCompanies), resp)
	}

	var parsed listResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]Company, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		out = append(out, companyFromObject(result))
	}
	return out, nil
}

// DealName composes the human-readable deal name. Vehicles are joined with
// commas and a final "and"; a request without vehicles yields "<contact> Quote".
func DealName(contactName string, vehicles []VehicleDescriptor) string {
	if len(vehicles) == 0 {
		return contactName + " Quote"
	}

	described := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		described = append(described, fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
	}

	joined := described[0]
	if len(described) > 1 {
		joined = strings.Join(described[:len(described)-1], ", ") + " and " + described[len(described)-1]
	}
	return fmt.Sprintf("%s Quote for %s", contactName, joined)
}

// ── internals ─────────────────────────────────────────────────────────────────

// createObject issues a create call and applies the conflict policy: 2xx
// yields the new identifier, 409 with a parseable existing identifier yields
// that identifier, 409 without one yields an empty identifier and the
// workflow continues degraded. Any other status is an upstream rejection.
func (r *Resolver) createObject(ctx context.Context, objectType string, req objectRequest) (string, error) {
	endpoint := objectPath(objectType)
	resp, err := r.client.Do(ctx, http.MethodPost, endpoint, nil, req)
	if err != nil {
		return "", err
	}

	switch {
	case resp.OK():
		var parsed objectResponse
		if err := resp.Decode(&parsed); err != nil {
			return "", err
		}
		return parsed.ID, nil

	case resp.StatusCode == http.StatusConflict:
		if id, ok := r.conflicts.ExtractExistingID(resp.Body); ok {
			r.log.Info("conflict resolved to existing record", "objectType", objectType, "id", id)
			return id, nil
		}
		r.log.Warn("conflict without parseable existing id", "objectType", objectType, "body", string(resp.Body))
		return "", nil

	default:
		return "", rejected(endpoint, resp)
	}
}

func (r *Resolver) patchObject(ctx context.Context, objectType, id string, props map[string]string) error {
	endpoint := objectPath(objectType) + "/" + id
	resp, err := r.client.Do(ctx, http.MethodPatch, endpoint, nil, objectRequest{Properties: props})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return rejected(endpoint, resp)
	}
	return nil
}

func (r *Resolver) searchCompanyExact(ctx context.Context, name string) (*Company, error) {
	results, err := r.searchCompanies(ctx, searchFilter{
		PropertyName: "name",
		Operator:     "EQ",
		Value:        name,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *Resolver) searchCompanies(ctx context.Context, filter searchFilter) ([]Company, error) {
	endpoint := objectPath(ObjectCompanies) + "/search"
	req := searchRequest{
		FilterGroups: []searchFilterGroup{{Filters: []searchFilter{filter}}},
		Properties:   companyProperties,
	}

	resp, err := r.client.Do(ctx, http.MethodPost, endpoint, nil, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, rejected(endpoint, resp)
	}

	var parsed searchResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]Company, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		out = append(out, companyFromObject(result))
	}
	return out, nil
}

func companyFromObject(obj objectResponse) Company {
	return Company{
		ID:      obj.ID,
		Name:    obj.Properties["name"],
		Domain:  obj.Properties["domain"],
		Phone:   obj.Properties["phone"],
		Address: obj.Properties["address"],
	}
}

func splitName(full string) (string, string) {
	trimmed := strings.TrimSpace(full)
	if trimmed == "" {
		return "", ""
	}
	idx := strings.LastIndex(trimmed, " ")
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
}
