// pkg/logging/logger_test.go
package logging

import (
	"context"
	"testing"
)

func TestWithCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc123")
	if got := GetCorrelationID(ctx); got != "abc123" {
		t.Errorf("GetCorrelationID() = %q, expected %q", got, "abc123")
	}
}

func TestWithCorrelationID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	if got := GetCorrelationID(ctx); got == "" {
		t.Error("expected generated correlation ID, got empty string")
	}
}

func TestGetCorrelationID_MissingReturnsEmpty(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("GetCorrelationID() on bare context = %q, expected empty", got)
	}
}

func TestGenerateCorrelationID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateCorrelationID()
		if len(id) != 16 {
			t.Fatalf("correlation ID %q has length %d, expected 16", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate correlation ID %q", id)
		}
		seen[id] = true
	}
}
