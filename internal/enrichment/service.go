// Package enrichment implements the background company-enrichment workflow:
// an agent lookup by company name followed by a CRM company patch. The
// workflow never raises into its caller; every failure ends in a log line.
package enrichment

import (
	"context"
	"errors"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// CompanyPatcher is the slice of the CRM resolver the enrichment workflow needs.
type CompanyPatcher interface {
	UpdateCompany(ctx context.Context, companyID string, props map[string]string) error
}

// enrichmentPayload is the parsed nested agent response.
type enrichmentPayload struct {
	Domain    string `json:"domain"`
	OwnerName string `json:"Owner_name"`
}

// Service runs the enrichment lookup and CRM patch.
type Service struct {
	agents    *agent.Client
	crm       CompanyPatcher
	endpoint  string
	sessionID string
	agentID   string
	log       *logger.Logger
}

// NewService creates the enrichment service. When no extractor endpoint is
// configured the service reports disabled and scheduling becomes a no-op.
func NewService(agents *agent.Client, crm CompanyPatcher, cfg config.AgentConfig, log *logger.Logger) *Service {
	return &Service{
		agents:    agents,
		crm:       crm,
		endpoint:  cfg.GetEnrichmentURL(),
		sessionID: cfg.GetEnrichmentSessionID(),
		agentID:   cfg.GetEnrichmentAgentID(),
		log:       log,
	}
}

// Enabled reports whether an extractor endpoint is configured.
func (s *Service) Enabled() bool {
	return s.endpoint != ""
}

// EnrichCompany fetches domain and owner for the company and patches the CRM
// record. When the agent returns neither field the patch is skipped. The
// returned error is observability only; callers must not propagate it into
// any client-visible path.
func (s *Service) EnrichCompany(ctx context.Context, companyID, companyName string) error {
	if !s.Enabled() {
		return nil
	}
	if companyID == "" {
		s.log.CRMWriteSkipped("company enrichment", "missing company identifier")
		return nil
	}

	var payload enrichmentPayload
	err := s.agents.ChatJSON(ctx, s.endpoint, agent.ChatRequest{
		SessionID: s.sessionID,
		Message:   companyName,
		AgentID:   s.agentID,
	}, &payload)

	var parseErr *agent.ParseError
	if errors.As(err, &parseErr) {
		s.log.Warn("enrichment payload malformed", "company", companyName, "raw", parseErr.Raw)
		return nil
	}
	if err != nil {
		s.log.Warn("enrichment lookup failed", "company", companyName, "error", err.Error())
		return err
	}

	if payload.Domain == "" && payload.OwnerName == "" {
		s.log.Warn("no enrichment data for company", "company", companyName)
		return nil
	}

	props := map[string]string{}
	if payload.Domain != "" {
		props["domain"] = payload.Domain
	}
	if payload.OwnerName != "" {
		props["hubspot_owner_id"] = payload.OwnerName
	}

	if err := s.crm.UpdateCompany(ctx, companyID, props); err != nil {
		s.log.Warn("enrichment company patch failed", "company", companyName, "companyId", companyID, "error", err.Error())
		return err
	}

	s.log.Info("company enriched", "company", companyName, "companyId", companyID, "domain", payload.Domain)
	return nil
}
