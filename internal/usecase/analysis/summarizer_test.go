package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// stubCompletion is a CompletionClient returning a canned response.
type stubCompletion struct {
	response string
	err      error
	calls    int

	lastPrompt      string
	lastMaxTokens   int
	lastTemperature float64
}

func (s *stubCompletion) Complete(_ context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastMaxTokens = maxTokens
	s.lastTemperature = temperature
	return s.response, s.err
}

func TestSummarize_ModelSuccess(t *testing.T) {
	llm := &stubCompletion{response: `{"executive_summary": "Weekly sync.", "participants": ["Alice"]}`}
	summarizer := NewSummarizer(llm, nil)

	record, source := summarizer.Summarize(context.Background(), "transcript text", "Weekly Sync")
	if source != entities.SourceModel {
		t.Fatalf("expected model source got %q", source)
	}
	if record.ExecutiveSummary != "Weekly sync." {
		t.Fatalf("unexpected summary %q", record.ExecutiveSummary)
	}
	if llm.lastMaxTokens != DefaultSummaryMaxTokens || llm.lastTemperature != DefaultSummaryTemperature {
		t.Fatalf("unexpected tuning: tokens=%d temp=%v", llm.lastMaxTokens, llm.lastTemperature)
	}
	if !strings.Contains(llm.lastPrompt, "transcript text") || !strings.Contains(llm.lastPrompt, "Weekly Sync") {
		t.Fatal("prompt missing transcript or title")
	}
}

func TestSummarize_CallFailure(t *testing.T) {
	llm := &stubCompletion{err: errors.New("rate limited")}
	summarizer := NewSummarizer(llm, nil)

	record, source := summarizer.Summarize(context.Background(), "transcript", "Sync")
	if source != entities.SourceFallback {
		t.Fatalf("expected fallback source got %q", source)
	}
	if record.ExecutiveSummary != "Error generating summary" {
		t.Fatalf("unexpected summary %q", record.ExecutiveSummary)
	}
	if record.KeyPoints == nil || len(record.KeyPoints) != 0 {
		t.Fatalf("expected empty key points got %v", record.KeyPoints)
	}
}

func TestSummarize_UnparseableResponseUsesPrefix(t *testing.T) {
	raw := "The meeting covered " + strings.Repeat("x", 600)
	llm := &stubCompletion{response: raw}
	summarizer := NewSummarizer(llm, nil)

	record, source := summarizer.Summarize(context.Background(), "transcript", "Sync")
	if source != entities.SourceFallback {
		t.Fatalf("expected fallback source got %q", source)
	}
	want := string([]rune(raw)[:500]) + "..."
	if record.ExecutiveSummary != want {
		t.Fatalf("expected 500-char prefix with ellipsis, got %d chars", len(record.ExecutiveSummary))
	}
}

func TestSummarize_ShortUnparseableResponse(t *testing.T) {
	llm := &stubCompletion{response: "not json"}
	summarizer := NewSummarizer(llm, nil)

	record, _ := summarizer.Summarize(context.Background(), "transcript", "Sync")
	if record.ExecutiveSummary != "not json..." {
		t.Fatalf("unexpected summary %q", record.ExecutiveSummary)
	}
}
