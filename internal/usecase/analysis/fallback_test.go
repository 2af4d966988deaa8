package analysis

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
}

func TestFallbackExtract_ObligationPhrases(t *testing.T) {
	extractor := NewFallbackExtractor()
	extractor.now = fixedClock

	items := extractor.Extract("We need to update the docs. John will send the report by Friday.")

	// Pattern scans run independently: "need to" and "will" both hit the
	// obligation scan, and "John will send..." also hits the subject scan.
	if len(items) != 3 {
		t.Fatalf("expected 3 candidates got %d", len(items))
	}
	if items[0].Title != "update the docs" {
		t.Fatalf("unexpected first title %q", items[0].Title)
	}
	if items[0].Description != "need to update the docs." {
		t.Fatalf("unexpected first description %q", items[0].Description)
	}
	for i, item := range items {
		if item.DueDate != "2026-01-17" {
			t.Fatalf("item %d: expected due date a week out got %q", i, item.DueDate)
		}
		if item.Priority != "Medium" || item.Category != "Follow-up" {
			t.Fatalf("item %d: unexpected priority/category %q/%q", i, item.Priority, item.Category)
		}
		if item.Assignee != "Unassigned" {
			t.Fatalf("item %d: unexpected assignee %q", i, item.Assignee)
		}
		if item.Context != "Extracted from transcript" {
			t.Fatalf("item %d: unexpected context %q", i, item.Context)
		}
	}
}

func TestFallbackExtract_FollowUpPhrase(t *testing.T) {
	extractor := NewFallbackExtractor()
	extractor.now = fixedClock

	items := extractor.Extract("Let's follow up on the vendor contract.")
	found := false
	for _, item := range items {
		if item.Title == "the vendor contract" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a follow-up candidate, got %+v", items)
	}
}

func TestFallbackExtract_CapsAtMaxItems(t *testing.T) {
	extractor := NewFallbackExtractor()
	extractor.now = fixedClock

	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString("We need to do thing number ")
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString(". ")
	}

	items := extractor.Extract(sb.String())
	if len(items) != DefaultFallbackMaxItems {
		t.Fatalf("expected cap of %d got %d", DefaultFallbackMaxItems, len(items))
	}
}

func TestFallbackExtract_LongTitleTruncated(t *testing.T) {
	extractor := NewFallbackExtractor()
	extractor.now = fixedClock

	items := extractor.Extract("We must " + strings.Repeat("a", 150) + ".")
	if len(items) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if got := len([]rune(items[0].Title)); got != 100 {
		t.Fatalf("expected 100-rune title got %d", got)
	}
}

func TestFallbackExtract_Dedupe(t *testing.T) {
	transcript := "We need to call Bob. We need to call Bob."

	plain := NewFallbackExtractor()
	plain.now = fixedClock
	if items := plain.Extract(transcript); len(items) != 2 {
		t.Fatalf("expected 2 duplicate candidates got %d", len(items))
	}

	deduped := NewFallbackExtractor()
	deduped.now = fixedClock
	deduped.Dedupe = true
	if items := deduped.Extract(transcript); len(items) != 1 {
		t.Fatalf("expected 1 deduplicated candidate got %d", len(items))
	}
}

func TestFallbackExtract_NoMatches(t *testing.T) {
	extractor := NewFallbackExtractor()
	extractor.now = fixedClock

	items := extractor.Extract("Nice weather today")
	if items == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Fatalf("expected no candidates got %+v", items)
	}
}
