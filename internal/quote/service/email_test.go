package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Avi0202/hubspot-task/internal/agent"
	"github.com/Avi0202/hubspot-task/internal/quote/transport"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

type agentConfigWithEmail struct {
	stubAgentConfig
	url string
}

func (c agentConfigWithEmail) GetEmailGenerationURL() string { return c.url }
func (c agentConfigWithEmail) GetEmailSessionID() string     { return "session-1" }
func (c agentConfigWithEmail) GetEmailAgentID() string       { return "agent-1" }

type fakeChat struct {
	subject string
	body    string
	err     error

	lastEndpoint string
	lastReq      agent.ChatRequest
}

func (f *fakeChat) ChatJSON(_ context.Context, endpoint string, req agent.ChatRequest, out interface{}) error {
	f.lastEndpoint = endpoint
	f.lastReq = req
	if f.err != nil {
		return f.err
	}
	email := out.(*agentEmail)
	email.Subject = f.subject
	email.Body = f.body
	return nil
}

func emailRequest() transport.GenerateEmailRequest {
	return transport.GenerateEmailRequest{
		ContactName:   "Alice",
		Email:         "alice@example.com",
		Vehicles:      []transport.VehicleShort{{Year: 2021, Make: "Honda", Model: "Civic"}},
		PickupCity:    "Hayward",
		PickupState:   "CA",
		DeliveryCity:  "Arlington",
		DeliveryState: "VA",
		QuoteAmount:   3360.4,
	}
}

func TestCompose_LocalTemplate(t *testing.T) {
	composer := NewEmailComposer(nil, stubAgentConfig{}, logger.New("test"))

	resp, err := composer.Compose(context.Background(), emailRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Subject != "Auto Transport Quote - Hayward, CA to Arlington, VA" {
		t.Fatalf("unexpected subject %q", resp.Subject)
	}
	if !strings.Contains(resp.Body, "Hi Alice,") {
		t.Fatalf("body missing greeting: %q", resp.Body)
	}
	if !strings.Contains(resp.Body, "2021 Honda Civic") {
		t.Fatalf("body missing vehicle: %q", resp.Body)
	}
	if !strings.Contains(resp.Body, "$3,360") {
		t.Fatalf("body missing formatted amount: %q", resp.Body)
	}
}

func TestCompose_LocalTemplateJoinsVehiclesWithAnd(t *testing.T) {
	composer := NewEmailComposer(nil, stubAgentConfig{}, logger.New("test"))

	req := emailRequest()
	req.Vehicles = append(req.Vehicles, transport.VehicleShort{Year: 2019, Make: "Ford", Model: "F-150"})

	resp, err := composer.Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Body, "2021 Honda Civic and 2019 Ford F-150") {
		t.Fatalf("vehicles not joined with and: %q", resp.Body)
	}
}

func TestCompose_AgentProvidesCopy(t *testing.T) {
	chat := &fakeChat{subject: "Your quote", body: "Hi Alice, here is your quote."}
	composer := NewEmailComposer(chat, agentConfigWithEmail{url: "https://agent.example/chat"}, logger.New("test"))

	resp, err := composer.Compose(context.Background(), emailRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Subject != "Your quote" || resp.Body != "Hi Alice, here is your quote." {
		t.Fatalf("unexpected copy: %+v", resp)
	}
	if chat.lastEndpoint != "https://agent.example/chat" {
		t.Fatalf("unexpected endpoint %q", chat.lastEndpoint)
	}
	if chat.lastReq.SessionID != "session-1" || chat.lastReq.AgentID != "agent-1" {
		t.Fatalf("unexpected chat identity: %+v", chat.lastReq)
	}
	if !strings.Contains(chat.lastReq.Message, "alice@example.com") {
		t.Fatalf("quote context not serialized into message: %q", chat.lastReq.Message)
	}
}

func TestCompose_MalformedAgentReplyDegradesToEmptyCopy(t *testing.T) {
	chat := &fakeChat{err: &agent.ParseError{Raw: "not json"}}
	composer := NewEmailComposer(chat, agentConfigWithEmail{url: "https://agent.example/chat"}, logger.New("test"))

	resp, err := composer.Compose(context.Background(), emailRequest())
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if resp.Subject != "" || resp.Body != "" {
		t.Fatalf("expected empty copy, got %+v", resp)
	}
}

func TestCompose_TransportFailurePropagates(t *testing.T) {
	chat := &fakeChat{err: context.DeadlineExceeded}
	composer := NewEmailComposer(chat, agentConfigWithEmail{url: "https://agent.example/chat"}, logger.New("test"))

	if _, err := composer.Compose(context.Background(), emailRequest()); err == nil {
		t.Fatalf("expected transport failure to propagate")
	}
}
