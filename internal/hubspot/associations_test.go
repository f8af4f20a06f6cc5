package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Avi0202/hubspot-task/platform/logger"
)

type recordedAssociation struct {
	path string
	body batchAssociationRequest
}

func newAssociationRecorder() (*httptest.Server, func() []recordedAssociation) {
	var mu sync.Mutex
	var calls []recordedAssociation

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchAssociationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		calls = append(calls, recordedAssociation{path: r.URL.Path, body: req})
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"COMPLETE"}`))
	}))

	return srv, func() []recordedAssociation {
		mu.Lock()
		defer mu.Unlock()
		out := make([]recordedAssociation, len(calls))
		copy(out, calls)
		return out
	}
}

func newTestAssociations(baseURL string) *Associations {
	log := logger.New("test")
	return NewAssociations(NewClient(stubConfig{baseURL: baseURL}, log), log)
}

func TestAssociate_SkipsOnMissingIdentifier(t *testing.T) {
	srv, recorded := newAssociationRecorder()
	defer srv.Close()
	assoc := newTestAssociations(srv.URL)

	if assoc.Associate(context.Background(), ObjectDeals, ObjectCompanies, "", "company-1", AssocDealToCompany) {
		t.Fatalf("expected skip when from id missing")
	}
	if assoc.Associate(context.Background(), ObjectDeals, ObjectCompanies, "deal-1", "", AssocDealToCompany) {
		t.Fatalf("expected skip when to id missing")
	}
	if calls := recorded(); len(calls) != 0 {
		t.Fatalf("expected no CRM calls, got %d", len(calls))
	}
}

func TestLinkBoth_WritesBothDirections(t *testing.T) {
	srv, recorded := newAssociationRecorder()
	defer srv.Close()
	assoc := newTestAssociations(srv.URL)

	assoc.LinkBoth(context.Background(), ObjectDeals, ObjectContacts, "deal-1", "contact-1",
		AssocDealToContact, AssocContactToDeal)

	calls := recorded()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].path != "/crm/v3/associations/deals/contacts/batch/create" {
		t.Fatalf("unexpected first path %q", calls[0].path)
	}
	if calls[1].path != "/crm/v3/associations/contacts/deals/batch/create" {
		t.Fatalf("unexpected second path %q", calls[1].path)
	}
	if got := calls[0].body.Inputs[0].Type; got != AssocDealToContact {
		t.Fatalf("unexpected first semantic type %q", got)
	}
	if got := calls[1].body.Inputs[0]; got.From.ID != "contact-1" || got.To.ID != "deal-1" {
		t.Fatalf("reverse direction not swapped: from=%q to=%q", got.From.ID, got.To.ID)
	}
}

func TestAssociate_FailureDoesNotPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()
	assoc := newTestAssociations(srv.URL)

	if assoc.Associate(context.Background(), ObjectDeals, ObjectCompanies, "deal-1", "company-1", AssocDealToCompany) {
		t.Fatalf("expected false on rejected association")
	}
}
