// Package service implements quote generation: CRM entity resolution,
// distance estimation, pricing, and the quote email workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Avi0202/hubspot-task/internal/distance"
	"github.com/Avi0202/hubspot-task/internal/hubspot"
	"github.com/Avi0202/hubspot-task/internal/quote/transport"
	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

const routeHistoryLimit = 5

// quoteValidityDays is how long a created CRM quote record stays open.
const quoteValidityDays = 30

// EntityResolver resolves and creates CRM records.
type EntityResolver interface {
	ResolveCompany(ctx context.Context, name, phone, address string) (hubspot.CompanyRef, error)
	CreateContact(ctx context.Context, name, email, phone string) (hubspot.ContactRef, error)
	CreateDeal(ctx context.Context, in hubspot.DealInput) (hubspot.DealRef, error)
	CreateEmailEngagement(ctx context.Context, subject, body string, at time.Time) (string, error)
	CreateQuoteRecord(ctx context.Context, title string, amount float64, expiresAt time.Time) (string, error)
	UpdateDeal(ctx context.Context, dealID string, props map[string]string) error
}

// Associator links resolved CRM entities. Calls are fire-and-log.
type Associator interface {
	Associate(ctx context.Context, fromType, toType, fromID, toID, semanticType string) bool
	LinkBoth(ctx context.Context, typeA, typeB, idA, idB, semanticAB, semanticBA string)
}

// DistanceEstimator computes road miles between two ZIP codes.
type DistanceEstimator interface {
	EstimateDistanceMiles(ctx context.Context, originZip, destZip string, useTruckProfile bool) (float64, error)
}

// EnrichmentScheduler detaches a company enrichment run.
type EnrichmentScheduler interface {
	ScheduleCompanyEnrichment(ctx context.Context, companyID, companyName string) error
}

// RouteHistoryProvider returns comparable past jobs for a lane.
type RouteHistoryProvider interface {
	SimilarRoutes(ctx context.Context, originZip, destZip string, limit int) ([]transport.RouteHistory, error)
}

// EmailSender delivers the quote email to the customer.
type EmailSender interface {
	SendQuoteEmail(ctx context.Context, toEmail, subject, body string) error
}

// Service orchestrates the quote workflows. CRM failures degrade the
// response to null identifiers; a distance failure is terminal because there
// is no price without a distance.
type Service struct {
	crm      EntityResolver
	assoc    Associator
	distance DistanceEstimator
	pricing  *PricingEngine
	routes   RouteHistoryProvider
	enrich   EnrichmentScheduler
	composer *EmailComposer
	sender   EmailSender
	log      *logger.Logger
	now      func() time.Time
}

func NewService(
	crm EntityResolver,
	assoc Associator,
	distance DistanceEstimator,
	pricing *PricingEngine,
	routes RouteHistoryProvider,
	enrich EnrichmentScheduler,
	composer *EmailComposer,
	sender EmailSender,
	log *logger.Logger,
) *Service {
	return &Service{
		crm:      crm,
		assoc:    assoc,
		distance: distance,
		pricing:  pricing,
		routes:   routes,
		enrich:   enrich,
		composer: composer,
		sender:   sender,
		log:      log,
		now:      time.Now,
	}
}

// GenerateQuote runs the full quote workflow: resolve CRM entities, link
// them, estimate the route distance, and price it. Only the distance step can
// fail the request.
func (s *Service) GenerateQuote(ctx context.Context, req transport.GenerateQuoteRequest) (*transport.QuoteResponse, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		companyName = "Individual Customer"
	}

	company, err := s.crm.ResolveCompany(ctx, companyName, req.Phone, s.composeAddress(req))
	if err != nil {
		s.log.Warn("company resolution failed, continuing without company", "name", companyName, "error", err.Error())
		company = hubspot.CompanyRef{Name: companyName}
	}
	if company.ID != "" {
		if err := s.enrich.ScheduleCompanyEnrichment(ctx, company.ID, company.Name); err != nil {
			s.log.Warn("enrichment scheduling failed", "companyId", company.ID, "error", err.Error())
		}
	}

	contact, err := s.crm.CreateContact(ctx, req.ContactName, req.Email, req.Phone)
	if err != nil {
		s.log.Warn("contact creation failed, continuing without contact", "email", req.Email, "error", err.Error())
	}

	deal, err := s.crm.CreateDeal(ctx, hubspot.DealInput{
		ContactName:  req.ContactName,
		CompanyID:    company.ID,
		PickupCity:   req.Pickup.City,
		DeliveryCity: req.Delivery.City,
		Vehicles:     vehicleDescriptors(req.Vehicles),
	})
	if err != nil {
		s.log.Warn("deal creation failed, continuing without deal", "contact", req.ContactName, "error", err.Error())
	}

	s.linkEntities(ctx, company.ID, contact.ID, deal.ID)

	miles, err := s.distance.EstimateDistanceMiles(ctx, req.Pickup.Zip, req.Delivery.Zip, req.UseTruckProfile)
	if err != nil {
		return nil, distanceFailure(err)
	}

	price := s.pricing.PriceQuote(miles)

	history, err := s.routes.SimilarRoutes(ctx, req.Pickup.Zip, req.Delivery.Zip, routeHistoryLimit)
	if err != nil {
		s.log.Warn("route history unavailable", "error", err.Error())
		history = nil
	}

	return &transport.QuoteResponse{
		Origin:             locationLabel(req.Pickup),
		Destination:        locationLabel(req.Delivery),
		DistanceMiles:      miles,
		SuperDispatchPrice: price.SuperDispatchPrice,
		InternalAiPrice:    price.InternalAiPrice,
		MarkupPercentage:   price.MarkupPercentage,
		QuoteAmount:        price.QuoteAmount,
		RouteHistory:       history,
		Vehicles:           req.Vehicles,
		CompanyID:          optionalID(company.ID),
		ContactID:          optionalID(contact.ID),
		DealID:             optionalID(deal.ID),
	}, nil
}

// GenerateEmail produces quote email copy for a priced route.
func (s *Service) GenerateEmail(ctx context.Context, req transport.GenerateEmailRequest) (*transport.GenerateEmailResponse, error) {
	return s.composer.Compose(ctx, req)
}

// SendQuoteEmail records the quote email against the CRM: the deal is
// patched with the final figures, a quote record and an email engagement are
// created, and all three are cross linked. The engagement is the one write
// this endpoint cannot succeed without.
func (s *Service) SendQuoteEmail(ctx context.Context, req transport.QuoteEmailRequest) (*transport.QuoteEmailResponse, error) {
	now := s.now()

	props := map[string]string{
		"amount":         strconv.FormatFloat(req.QuoteAmount, 'f', 2, 64),
		"distance_miles": strconv.FormatFloat(req.DistanceMiles, 'f', 2, 64),
	}
	if err := s.crm.UpdateDeal(ctx, req.DealID, props); err != nil {
		s.log.Warn("deal update failed, continuing", "dealId", req.DealID, "error", err.Error())
	}

	quoteID, err := s.crm.CreateQuoteRecord(ctx, req.EmailSubject, req.QuoteAmount, now.AddDate(0, 0, quoteValidityDays))
	if err != nil {
		s.log.Warn("quote record creation failed, continuing", "dealId", req.DealID, "error", err.Error())
		quoteID = ""
	}

	emailID, err := s.crm.CreateEmailEngagement(ctx, req.EmailSubject, req.EmailBody, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.GetKind(err), "log email engagement", err)
	}

	s.assoc.LinkBoth(ctx, hubspot.ObjectEmails, hubspot.ObjectDeals, emailID, req.DealID,
		hubspot.AssocEmailToDeal, hubspot.AssocDealToEmail)
	s.assoc.LinkBoth(ctx, hubspot.ObjectEmails, hubspot.ObjectContacts, emailID, req.ContactID,
		hubspot.AssocEmailToContact, hubspot.AssocContactToEmail)
	if req.CompanyID != "" {
		s.assoc.LinkBoth(ctx, hubspot.ObjectEmails, hubspot.ObjectCompanies, emailID, req.CompanyID,
			hubspot.AssocEmailToCompany, hubspot.AssocCompanyToEmail)
	}
	if quoteID != "" {
		s.assoc.LinkBoth(ctx, hubspot.ObjectQuotes, hubspot.ObjectDeals, quoteID, req.DealID,
			"quote_to_deal", "deal_to_quote")
	}

	if req.ToEmail != "" {
		if err := s.sender.SendQuoteEmail(ctx, req.ToEmail, req.EmailSubject, req.EmailBody); err != nil {
			s.log.Warn("quote email delivery failed", "to", req.ToEmail, "error", err.Error())
		}
	}

	return &transport.QuoteEmailResponse{
		Status:  "Email logged",
		DealID:  req.DealID,
		EmailID: emailID,
		QuoteID: quoteID,
	}, nil
}

func (s *Service) linkEntities(ctx context.Context, companyID, contactID, dealID string) {
	s.assoc.LinkBoth(ctx, hubspot.ObjectDeals, hubspot.ObjectCompanies, dealID, companyID,
		hubspot.AssocDealToCompany, hubspot.AssocCompanyToDeal)
	s.assoc.LinkBoth(ctx, hubspot.ObjectDeals, hubspot.ObjectContacts, dealID, contactID,
		hubspot.AssocDealToContact, hubspot.AssocContactToDeal)
	s.assoc.LinkBoth(ctx, hubspot.ObjectCompanies, hubspot.ObjectContacts, companyID, contactID,
		hubspot.AssocCompanyToContact, hubspot.AssocContactToCompany)
}

func (s *Service) composeAddress(req transport.GenerateQuoteRequest) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{req.AddressLine1, req.AddressLine2, req.City, req.State, req.ZipCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

func vehicleDescriptors(vehicles []transport.Vehicle) []hubspot.VehicleDescriptor {
	out := make([]hubspot.VehicleDescriptor, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, hubspot.VehicleDescriptor{Year: v.Year, Make: v.Make, Model: v.Model})
	}
	return out
}

func locationLabel(loc transport.Location) string {
	return fmt.Sprintf("%s, %s, %s", loc.City, loc.State, loc.Zip)
}

// distanceFailure translates an estimator error into a typed upstream error
// naming the step that failed. Distance is the one required collaborator in
// the quote flow.
func distanceFailure(err error) error {
	var geocodeErr *distance.GeocodeError
	if errors.As(err, &geocodeErr) {
		return apperr.Wrap(apperr.KindUpstream, fmt.Sprintf("could not geocode ZIP code %s", geocodeErr.Zip), err)
	}
	var routingErr *distance.RoutingError
	if errors.As(err, &routingErr) {
		return apperr.Wrap(apperr.KindUpstream, "could not compute route distance", err)
	}
	return apperr.Wrap(apperr.KindUpstream, "distance estimation failed", err)
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
