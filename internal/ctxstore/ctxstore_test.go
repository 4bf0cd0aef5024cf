package ctxstore

import (
	"context"
	"testing"
)

func TestWithFrom(t *testing.T) {
	t.Parallel()

	ctx := With(context.Background(), Key("userId"), "u-123")

	got, ok := From[string](ctx, Key("userId"))
	if !ok || got != "u-123" {
		t.Fatalf("From = %q, %v; want \"u-123\", true", got, ok)
	}

	if _, ok := From[string](ctx, Key("missing")); ok {
		t.Fatal("From reported a missing key as present")
	}

	// A type mismatch must not leak the value.
	if _, ok := From[int](ctx, Key("userId")); ok {
		t.Fatal("From reported a mismatched type as present")
	}
}

func TestMustFrom(t *testing.T) {
	t.Parallel()

	ctx := With(context.Background(), Key("traceId"), "t-1")

	if got := MustFrom[string](ctx, Key("traceId")); got != "t-1" {
		t.Fatalf("MustFrom = %q, want \"t-1\"", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustFrom did not panic on a missing key")
		}
	}()
	MustFrom[string](context.Background(), Key("traceId"))
}
