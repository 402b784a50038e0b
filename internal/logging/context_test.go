package logging_test

import (
	"context"
	"testing"

	"github.com/gurukulhq/gurukul/internal/logging"
)

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"admin": "a@b.example"})
	ctx = logging.ContextWithFields(ctx, map[string]any{"request_id": "r-1", "admin": "c@d.example"})

	fields := logging.ContextFields(ctx)
	if fields["admin"] != "c@d.example" {
		t.Fatalf("expected later value to win, got %v", fields["admin"])
	}
	if fields["request_id"] != "r-1" {
		t.Fatalf("expected merged field, got %v", fields["request_id"])
	}
}

func TestContextFieldsReturnsCopy(t *testing.T) {
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"admin": "a@b.example"})

	first := logging.ContextFields(ctx)
	first["admin"] = "mutated"

	if got := logging.ContextFields(ctx)["admin"]; got != "a@b.example" {
		t.Fatalf("context fields mutated through copy: %v", got)
	}
}

func TestContextFieldsEmpty(t *testing.T) {
	if fields := logging.ContextFields(context.Background()); fields != nil {
		t.Fatalf("expected nil for unannotated context, got %v", fields)
	}
	if ctx := logging.ContextWithFields(context.Background(), nil); logging.ContextFields(ctx) != nil {
		t.Fatal("expected no fields when none provided")
	}
}
