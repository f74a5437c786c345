package relay

import (
	"encoding/json"
	"errors"
	"testing"
)

func decode(t *testing.T, body string) MessageRequest {
	t.Helper()
	var req MessageRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	return req
}

func TestValidateDefaults(t *testing.T) {
	msg, err := decode(t, `{"message":"hi"}`).Validate()
	if err != nil {
		t.Fatalf("Validate err: %v", err)
	}
	if msg.Text != "hi" || msg.ScenarioKey != "general" || msg.HasChild() {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestValidateNullScenarioUsesGeneral(t *testing.T) {
	msg, err := decode(t, `{"message":"hi","scenario":null,"child_name":null}`).Validate()
	if err != nil {
		t.Fatalf("Validate err: %v", err)
	}
	if msg.ScenarioKey != "general" {
		t.Fatalf("expected general, got %q", msg.ScenarioKey)
	}
}

func TestValidateKeepsFields(t *testing.T) {
	msg, err := decode(t, `{"message":"Finished homework","child_name":"Sam","scenario":"homework"}`).Validate()
	if err != nil {
		t.Fatalf("Validate err: %v", err)
	}
	if msg.ChildName != "Sam" || msg.ScenarioKey != "homework" || !msg.HasChild() {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestValidateAllowsEmptyMessage(t *testing.T) {
	if _, err := decode(t, `{"message":""}`).Validate(); err != nil {
		t.Fatalf("expected empty message to pass, got %v", err)
	}
}

func TestValidateMissingMessage(t *testing.T) {
	_, err := decode(t, `{"child_name":"Sam"}`).Validate()
	if err == nil {
		t.Fatal("expected error for missing message")
	}
	if !errors.Is(err, ErrValidation) || KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "message is required" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestKindOfForeignErrorIsProvider(t *testing.T) {
	err := errors.New("boom")
	if KindOf(err) != KindProvider {
		t.Fatalf("expected provider kind, got %s", KindOf(err))
	}
	wrapped := NewProviderError(err)
	if !errors.Is(wrapped, ErrProvider) || errors.Is(wrapped, ErrValidation) {
		t.Fatalf("sentinel matching broken for %v", wrapped)
	}
	if !errors.Is(wrapped, err) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
}
