package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(context.Background(), rr, NewError("not_found", "card\nmissing", http.StatusNotFound).
		WithDetails(map[string]any{"folder": "a1"}))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "not_found" {
		t.Fatalf("unexpected code %v", body["error"])
	}
	if body["message"] != "card missing" {
		t.Fatalf("expected newline to be flattened, got %q", body["message"])
	}
	if body["folder"] != "a1" {
		t.Fatalf("expected details to be merged, got %v", body)
	}
	if _, ok := body["request_id"]; ok {
		t.Fatalf("request_id should be omitted without middleware")
	}
}
