package hubspot

import (
	"net/http"

	"github.com/Avi0202/hubspot-task/platform/httpkit"
	"github.com/Avi0202/hubspot-task/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler exposes the CRM passthrough endpoints restored from the original
// API surface: company listing and name-based lookup with auto-create.
type Handler struct {
	resolver *Resolver
	log      *logger.Logger
}

// NewHandler creates the passthrough handler.
func NewHandler(resolver *Resolver, log *logger.Logger) *Handler {
	return &Handler{resolver: resolver, log: log}
}

type listCompaniesQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

type companyListResponse struct {
	Count     int       `json:"count"`
	Companies []Company `json:"companies"`
}

// ListCompanies handles GET /hubspot/companies.
func (h *Handler) ListCompanies(c *gin.Context) {
	var query listCompaniesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "invalid limit", nil)
		return
	}

	companies, err := h.resolver.ListCompanies(c.Request.Context(), query.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, companyListResponse{Count: len(companies), Companies: companies})
}

type companyDetailsQuery struct {
	CompanyName string `form:"company_name" binding:"required,min=1"`
}

// CompanyDetails handles GET /hubspot/company/details. A miss creates the
// company so subsequent quote requests resolve it by search.
func (h *Handler) CompanyDetails(c *gin.Context) {
	var query companyDetailsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "company_name is required", nil)
		return
	}

	ctx := c.Request.Context()
	results, err := h.resolver.SearchCompaniesByToken(ctx, query.CompanyName)
	if httpkit.HandleError(c, err) {
		return
	}

	if len(results) == 0 {
		h.log.Info("company not found, creating", "name", query.CompanyName)
		if _, err := h.resolver.ResolveCompany(ctx, query.CompanyName, "", ""); httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, gin.H{"message": "No results found for '" + query.CompanyName + "', added new company."})
		return
	}

	httpkit.OK(c, gin.H{
		"name":   results[0].Name,
		"domain": results[0].Domain,
		"phone":  results[0].Phone,
	})
}
