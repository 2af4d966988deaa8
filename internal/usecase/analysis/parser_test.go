package analysis

import (
	"testing"
)

func TestParseSummary_PlainJSON(t *testing.T) {
	parser := NewParser()

	record, err := parser.ParseSummary(`{
		"executive_summary": "Team discussed the launch.",
		"key_points": ["launch date set"],
		"decisions": ["ship Friday"],
		"participants": ["Alice", "Bob"],
		"follow_up_topics": ["pricing"]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ExecutiveSummary != "Team discussed the launch." {
		t.Fatalf("unexpected summary %q", record.ExecutiveSummary)
	}
	if len(record.Participants) != 2 || record.Participants[0] != "Alice" {
		t.Fatalf("unexpected participants %v", record.Participants)
	}
}

func TestParseSummary_MarkdownFences(t *testing.T) {
	parser := NewParser()

	raw := "```json\n{\"executive_summary\": \"Short sync.\"}\n```"
	record, err := parser.ParseSummary(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ExecutiveSummary != "Short sync." {
		t.Fatalf("unexpected summary %q", record.ExecutiveSummary)
	}
}

func TestParseSummary_MissingListsBackfilled(t *testing.T) {
	parser := NewParser()

	record, err := parser.ParseSummary(`{"executive_summary": "Short sync."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.KeyPoints == nil || record.Decisions == nil || record.Participants == nil || record.FollowUpTopics == nil {
		t.Fatalf("expected all list fields non-nil, got %+v", record)
	}
}

func TestParseSummary_InvalidJSON(t *testing.T) {
	parser := NewParser()

	if _, err := parser.ParseSummary("Sure! Here is the summary you asked for."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestParseActionItems_Array(t *testing.T) {
	parser := NewParser()

	items, err := parser.ParseActionItems(`[
		{"title": "Update docs", "description": "Refresh the API docs", "assignee": "Alice", "due_date": "2026-09-05", "priority": "High", "category": "Development", "context": "docs are stale"},
		{"title": "Send report", "description": "Weekly report", "due_date": "2026-09-01", "priority": "Low", "category": "Communication"}
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items got %d", len(items))
	}
	if items[0].Assignee != "Alice" || items[0].Priority != "High" {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].Assignee != "Unassigned" {
		t.Fatalf("expected default assignee got %q", items[1].Assignee)
	}
}

func TestParseActionItems_ObjectIsError(t *testing.T) {
	parser := NewParser()

	if _, err := parser.ParseActionItems(`{"items": []}`); err == nil {
		t.Fatal("expected error for non-array response")
	}
}

func TestParseActionItems_FencedArray(t *testing.T) {
	parser := NewParser()

	items, err := parser.ParseActionItems("```\n[{\"title\": \"Ping legal\"}]\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Ping legal" {
		t.Fatalf("unexpected items %+v", items)
	}
}
