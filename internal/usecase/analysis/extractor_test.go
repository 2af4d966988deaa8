package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

func TestExtract_ModelSuccess(t *testing.T) {
	llm := &stubCompletion{response: `[
		{"title": "Update docs", "assignee": "Alice", "priority": "High"},
		{"title": "Send report", "assignee": "Bob", "priority": "Low"}
	]`}
	extractor := NewExtractor(llm, nil, nil)
	extractor.now = fixedClock

	items, source := extractor.Extract(context.Background(), "transcript", []string{"Alice", "Bob"})
	if source != entities.SourceModel {
		t.Fatalf("expected model source got %q", source)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d", len(items))
	}
	for i, item := range items {
		if item.ID != i+1 {
			t.Fatalf("item %d: expected id %d got %d", i, i+1, item.ID)
		}
		if item.Status != "pending" {
			t.Fatalf("item %d: expected pending status got %q", i, item.Status)
		}
		if !item.CreatedAt.Equal(fixedClock()) {
			t.Fatalf("item %d: unexpected created_at %v", i, item.CreatedAt)
		}
	}
	if llm.lastMaxTokens != DefaultExtractMaxTokens || llm.lastTemperature != DefaultExtractTemperature {
		t.Fatalf("unexpected tuning: tokens=%d temp=%v", llm.lastMaxTokens, llm.lastTemperature)
	}
	if !strings.Contains(llm.lastPrompt, "Alice, Bob") {
		t.Fatal("prompt missing participants")
	}
}

func TestExtract_CallFailureReturnsEmpty(t *testing.T) {
	llm := &stubCompletion{err: errors.New("connection refused")}
	extractor := NewExtractor(llm, nil, nil)

	items, source := extractor.Extract(context.Background(), "We need to update the docs.", nil)
	if source != entities.SourceFallback {
		t.Fatalf("expected fallback source got %q", source)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice on call failure got %+v", items)
	}
}

func TestExtract_UnparseableResponseRunsFallback(t *testing.T) {
	llm := &stubCompletion{response: "I could not find any action items."}
	extractor := NewExtractor(llm, nil, nil)
	extractor.now = fixedClock

	items, source := extractor.Extract(context.Background(), "We need to update the docs.", nil)
	if source != entities.SourceFallback {
		t.Fatalf("expected fallback source got %q", source)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 pattern candidate got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Status != "pending" {
		t.Fatalf("expected stamped lifecycle fields got %+v", items[0])
	}
	if items[0].Title != "update the docs" {
		t.Fatalf("unexpected title %q", items[0].Title)
	}
}

func TestExtract_NoParticipantsUsesPlaceholder(t *testing.T) {
	llm := &stubCompletion{response: "[]"}
	extractor := NewExtractor(llm, nil, nil)

	_, _ = extractor.Extract(context.Background(), "transcript", nil)
	if !strings.Contains(llm.lastPrompt, "Team Member") {
		t.Fatal("prompt missing participant placeholder")
	}
}

func TestExtract_EmptyArray(t *testing.T) {
	llm := &stubCompletion{response: "[]"}
	extractor := NewExtractor(llm, nil, nil)

	items, source := extractor.Extract(context.Background(), "transcript", nil)
	if source != entities.SourceModel {
		t.Fatalf("expected model source got %q", source)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice got %+v", items)
	}
}
