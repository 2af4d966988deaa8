package cache

import (
	"context"
	"testing"
)

func TestMemoryStore_MarkProcessed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ok, err := store.MarkProcessed(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected first mark to succeed")
	}

	ok, err = store.MarkProcessed(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected second mark to report already processed")
	}

	processed, err := store.IsProcessed(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !processed {
		t.Fatal("expected rec-1 to be processed")
	}

	processed, err = store.IsProcessed(ctx, "rec-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed {
		t.Fatal("expected rec-2 to be unprocessed")
	}
}
