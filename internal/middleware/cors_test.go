package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newCORSHandler() http.Handler {
	return CORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCORSPreflightAnyMethod(t *testing.T) {
	handler := newCORSHandler()

	for _, method := range []string{http.MethodPost, "PROPFIND", "purge"} {
		req := httptest.NewRequest(http.MethodOptions, "/message", nil)
		req.Header.Set("Origin", "https://parents.example")
		req.Header.Set("Access-Control-Request-Method", method)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://parents.example" {
			t.Fatalf("%s: expected echoed origin, got %q", method, got)
		}
		if got := resp.Header().Get("Access-Control-Allow-Methods"); !strings.EqualFold(got, method) {
			t.Fatalf("%s: unexpected allowed methods %q", method, got)
		}
		if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Fatalf("%s: expected credentials allowed, got %q", method, got)
		}
	}
}

func TestCORSActualNonStandardMethod(t *testing.T) {
	req := httptest.NewRequest("PROPFIND", "/message", nil)
	req.Header.Set("Origin", "https://parents.example")
	resp := httptest.NewRecorder()

	newCORSHandler().ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected request to reach handler, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://parents.example" {
		t.Fatalf("expected echoed origin, got %q", got)
	}
}
