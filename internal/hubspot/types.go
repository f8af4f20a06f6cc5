package hubspot

// CRM object type slugs as used in the v3 objects API paths.
const (
	ObjectCompanies = "companies"
	ObjectContacts  = "contacts"
	ObjectDeals     = "deals"
	ObjectEmails    = "emails"
	ObjectQuotes    = "quotes"
)

// Association semantic types. Each pair is written in both directions
// as two independent calls.
const (
	AssocDealToCompany  = "deal_to_company"
	AssocCompanyToDeal  = "company_to_deal"
	AssocDealToContact  = "deal_to_contact"
	AssocContactToDeal  = "contact_to_deal"
	AssocCompanyToContact = "company_to_contact"
	AssocContactToCompany = "contact_to_company"
	AssocEmailToDeal    = "email_to_deal"
	AssocDealToEmail    = "deal_to_email"
	AssocEmailToContact = "email_to_contact"
	AssocContactToEmail = "contact_to_email"
	AssocEmailToCompany = "email_to_company"
	AssocCompanyToEmail = "company_to_email"
)

// CompanyRef identifies a resolved CRM company. An empty ID means the
// company could not be resolved and dependent associations are skipped.
type CompanyRef struct {
	ID   string
	Name string
}

// ContactRef identifies a resolved CRM contact.
type ContactRef struct {
	ID string
}

// DealRef identifies a resolved CRM deal.
type DealRef struct {
	ID   string
	Name string
}

// VehicleDescriptor carries the fields needed to compose a human-readable
// vehicle string for deal naming.
type VehicleDescriptor struct {
	Year  int
	Make  string
	Model string
}

// Company is the trimmed company view returned by the passthrough endpoints.
type Company struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Domain  string `json:"domain,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ── Wire shapes for the HubSpot v3 objects API ────────────────────────────────

type objectRequest struct {
	Properties   map[string]string   `json:"properties"`
	Associations []objectAssociation `json:"associations,omitempty"`
}

type objectAssociation struct {
	To    associationTarget `json:"to"`
	Types []associationType `json:"types"`
}

type associationTarget struct {
	ID string `json:"id"`
}

type associationType struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int    `json:"associationTypeId"`
}

type objectResponse struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchFilterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []searchFilterGroup `json:"filterGroups"`
	Properties   []string            `json:"properties,omitempty"`
	Limit        int                 `json:"limit,omitempty"`
}

type searchResponse struct {
	Total   int              `json:"total"`
	Results []objectResponse `json:"results"`
}

type listResponse struct {
	Results []objectResponse `json:"results"`
}

type batchAssociationRequest struct {
	Inputs []batchAssociationInput `json:"inputs"`
}

type batchAssociationInput struct {
	From associationTarget `json:"from"`
	To   associationTarget `json:"to"`
	Type string            `json:"type"`
}
