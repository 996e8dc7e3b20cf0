package requestctx

import (
	"context"
	"testing"
)

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()

	want := Client{ID: 42, Company: 3}
	ctx := WithClient(context.Background(), want)
	got, ok := ClientFromContext(ctx)
	if !ok {
		t.Fatal("client identity lost")
	}
	if got != want {
		t.Fatalf("client = %+v, want %+v", got, want)
	}
}

func TestClientFromEmptyContext(t *testing.T) {
	t.Parallel()

	if _, ok := ClientFromContext(context.Background()); ok {
		t.Fatal("expected no client identity")
	}
	if _, ok := ClientFromContext(nil); ok {
		t.Fatal("expected no client identity from nil context")
	}
}
