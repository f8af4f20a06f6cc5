package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

type stubAgentConfig struct {
	endpoint string
}

func (c stubAgentConfig) GetEnrichmentURL() string       { return c.endpoint }
func (c stubAgentConfig) GetEnrichmentSessionID() string { return "session-1" }
func (c stubAgentConfig) GetEnrichmentAgentID() string   { return "agent-1" }
func (c stubAgentConfig) GetEmailGenerationURL() string  { return "" }
func (c stubAgentConfig) GetEmailSessionID() string      { return "" }
func (c stubAgentConfig) GetEmailAgentID() string        { return "" }

type fakePatcher struct {
	patchedID    string
	patchedProps map[string]string
}

func (f *fakePatcher) UpdateCompany(_ context.Context, companyID string, props map[string]string) error {
	f.patchedID = companyID
	f.patchedProps = props
	return nil
}

func extractorServer(text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

func TestEnrichCompany_PatchesDomainAndOwner(t *testing.T) {
	srv := extractorServer(`{"domain":"acme.com","Owner_name":"98765"}`)
	defer srv.Close()

	log := logger.New("test")
	patcher := &fakePatcher{}
	svc := NewService(agent.NewClient(log), patcher, stubAgentConfig{endpoint: srv.URL}, log)

	if err := svc.EnrichCompany(context.Background(), "company-1", "Acme Transport"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patcher.patchedID != "company-1" {
		t.Fatalf("expected company-1 patched, got %q", patcher.patchedID)
	}
	if patcher.patchedProps["domain"] != "acme.com" {
		t.Fatalf("expected domain patched, got %v", patcher.patchedProps)
	}
	if patcher.patchedProps["hubspot_owner_id"] != "98765" {
		t.Fatalf("expected owner patched, got %v", patcher.patchedProps)
	}
}

func TestEnrichCompany_MalformedAgentReplyIsRecovered(t *testing.T) {
	srv := extractorServer("not json at all")
	defer srv.Close()

	log := logger.New("test")
	patcher := &fakePatcher{}
	svc := NewService(agent.NewClient(log), patcher, stubAgentConfig{endpoint: srv.URL}, log)

	if err := svc.EnrichCompany(context.Background(), "company-1", "Acme"); err != nil {
		t.Fatalf("expected recovery from malformed reply, got %v", err)
	}
	if patcher.patchedID != "" {
		t.Fatalf("expected no patch, got %q", patcher.patchedID)
	}
}

func TestEnrichCompany_NoDataSkipsPatch(t *testing.T) {
	srv := extractorServer(`{"domain":"","Owner_name":""}`)
	defer srv.Close()

	log := logger.New("test")
	patcher := &fakePatcher{}
	svc := NewService(agent.NewClient(log), patcher, stubAgentConfig{endpoint: srv.URL}, log)

	if err := svc.EnrichCompany(context.Background(), "company-1", "Acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patcher.patchedID != "" {
		t.Fatalf("expected no patch when agent returned no data")
	}
}

func TestEnrichCompany_DisabledWithoutEndpoint(t *testing.T) {
	log := logger.New("test")
	patcher := &fakePatcher{}
	svc := NewService(agent.NewClient(log), patcher, stubAgentConfig{}, log)

	if svc.Enabled() {
		t.Fatalf("expected service disabled without endpoint")
	}
	if err := svc.EnrichCompany(context.Background(), "company-1", "Acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patcher.patchedID != "" {
		t.Fatalf("expected no patch when disabled")
	}
}

func TestEnrichCompany_MissingCompanyIDSkips(t *testing.T) {
	srv := extractorServer(`{"domain":"acme.com"}`)
	defer srv.Close()

	log := logger.New("test")
	patcher := &fakePatcher{}
	svc := NewService(agent.NewClient(log), patcher, stubAgentConfig{endpoint: srv.URL}, log)

	if err := svc.EnrichCompany(context.Background(), "", "Acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patcher.patchedID != "" {
		t.Fatalf("expected no patch without company id")
	}
}
