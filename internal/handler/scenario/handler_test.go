package scenario

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
)

func TestListScenarios(t *testing.T) {
	r := chi.NewRouter()
	New(scenario.NewMemoryStore(scenario.Seed())).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/scenarios", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got []scenario.Scenario
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	wantKeys := []string{"morning", "bedtime", "homework", "meals", "chores", "general"}
	if len(got) != len(wantKeys) {
		t.Fatalf("expected %d scenarios, got %d", len(wantKeys), len(got))
	}
	for i, key := range wantKeys {
		if got[i].Key != key {
			t.Fatalf("position %d: expected %s, got %s", i, key, got[i].Key)
		}
	}
	if got[0].Description != "getting ready for the day" {
		t.Fatalf("unexpected description %q", got[0].Description)
	}
}
