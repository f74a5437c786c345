package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	relaymodel "github.com/zhouzirui/captain-jack/backend/internal/model/relay"
	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
)

type staticReplier struct{}

func (staticReplier) GenerateReply(_ context.Context, msg relaymodel.Message) (*relaymodel.Reply, error) {
	return &relaymodel.Reply{Content: "Ahoy!", ScenarioKey: msg.ScenarioKey}, nil
}

type panickingReplier struct{}

func (panickingReplier) GenerateReply(_ context.Context, _ relaymodel.Message) (*relaymodel.Reply, error) {
	panic("provider adapter exploded")
}

func TestRouterPanicReturnsDetail(t *testing.T) {
	router := NewRouter(scenario.NewMemoryStore(scenario.Seed()), panickingReplier{}, false)

	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewReader([]byte(`{"message":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}
	var body relaymodel.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body err: %v (%q)", err, resp.Body.String())
	}
	if body.Detail != "provider adapter exploded" {
		t.Fatalf("unexpected detail %q", body.Detail)
	}
}

func TestRouterCORSEchoesOrigin(t *testing.T) {
	router := NewRouter(scenario.NewMemoryStore(scenario.Seed()), staticReplier{}, false)

	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewReader([]byte(`{"message":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://parents.example")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://parents.example" {
		t.Fatalf("expected echoed origin, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}
}

func TestRouterServesAllRoutes(t *testing.T) {
	router := NewRouter(scenario.NewMemoryStore(scenario.Seed()), nil, false)

	for _, path := range []string{"/", "/scenarios"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
		}
	}
}
