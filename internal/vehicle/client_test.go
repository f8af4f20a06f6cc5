package vehicle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Avi0202/hubspot-task/platform/apperr"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

type stubVINConfig struct {
	baseURL string
	timeout time.Duration
}

func (c stubVINConfig) GetVINAPIURL() string         { return c.baseURL }
func (c stubVINConfig) GetVINTimeout() time.Duration { return c.timeout }

func TestDecodeVIN_MapsFields(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"Results":[{"ModelYear":"2021","Make":"HONDA","Model":"Civic","BodyClass":"Sedan"}]}`))
	}))
	defer srv.Close()

	client := NewClient(stubVINConfig{baseURL: srv.URL}, logger.New("test"))
	descriptor, err := client.DecodeVIN(context.Background(), " 1hgbh41jxmn109186 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(requestedPath, "/DecodeVinValues/1HGBH41JXMN109186") {
		t.Fatalf("VIN not trimmed and uppercased in path: %q", requestedPath)
	}
	if descriptor.Year != "2021" || descriptor.Make != "HONDA" || descriptor.Model != "Civic" || descriptor.Type != "Sedan" {
		t.Fatalf("unexpected descriptor: %+v", descriptor)
	}
}

func TestDecodeVIN_MissingBodyClassDefaultsToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Results":[{"ModelYear":"2019","Make":"FORD","Model":"F-150"}]}`))
	}))
	defer srv.Close()

	client := NewClient(stubVINConfig{baseURL: srv.URL}, logger.New("test"))
	descriptor, err := client.DecodeVIN(context.Background(), "1FTEW1EP5KFA12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if descriptor.Type != "Unknown" {
		t.Fatalf("expected Unknown body class, got %q", descriptor.Type)
	}
}

func TestDecodeVIN_EmptyResultsIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(stubVINConfig{baseURL: srv.URL}, logger.New("test"))
	_, err := client.DecodeVIN(context.Background(), "1HGBH41JXMN109186")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream kind, got %v", err)
	}
}

func TestDecodeVIN_TimeoutIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(stubVINConfig{baseURL: srv.URL, timeout: 20 * time.Millisecond}, logger.New("test"))
	_, err := client.DecodeVIN(context.Background(), "1HGBH41JXMN109186")
	if !apperr.Is(err, apperr.KindTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestDecodeVIN_UnreachableHostIsUnavailable(t *testing.T) {
	client := NewClient(stubVINConfig{baseURL: "http://127.0.0.1:1"}, logger.New("test"))
	_, err := client.DecodeVIN(context.Background(), "1HGBH41JXMN109186")
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", err)
	}
}
