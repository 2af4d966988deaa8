package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// Parser handles parsing of language-model responses into domain records.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSummary parses a model response into a SummaryRecord. The response may
// be wrapped in markdown code fences. Nil list fields are initialized so the
// record always carries all five fields.
func (p *Parser) ParseSummary(raw string) (*entities.SummaryRecord, error) {
	cleaned := extractJSON(raw)

	var record entities.SummaryRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}

	if record.KeyPoints == nil {
		record.KeyPoints = []string{}
	}
	if record.Decisions == nil {
		record.Decisions = []string{}
	}
	if record.Participants == nil {
		record.Participants = []string{}
	}
	if record.FollowUpTopics == nil {
		record.FollowUpTopics = []string{}
	}

	return &record, nil
}

// actionItemPayload is the wire shape the model is instructed to return for
// each action item. Lifecycle fields (id, status, created_at) are assigned by
// the extractor, never by the model.
type actionItemPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Context     string `json:"context"`
}

// ParseActionItems parses a model response into action items. The response
// must decode to a JSON array; any other shape (object, scalar, parse error)
// is an error so the caller can run the fallback extractor.
func (p *Parser) ParseActionItems(raw string) ([]entities.ActionItem, error) {
	cleaned := extractJSON(raw)

	var payloads []actionItemPayload
	if err := json.Unmarshal([]byte(cleaned), &payloads); err != nil {
		return nil, fmt.Errorf("failed to parse action items response: %w", err)
	}

	items := make([]entities.ActionItem, 0, len(payloads))
	for _, payload := range payloads {
		assignee := payload.Assignee
		if assignee == "" {
			assignee = entities.ActionItemDefaultAssignee
		}
		items = append(items, entities.ActionItem{
			Title:       payload.Title,
			Description: payload.Description,
			Assignee:    assignee,
			DueDate:     payload.DueDate,
			Priority:    payload.Priority,
			Category:    payload.Category,
			Context:     payload.Context,
		})
	}

	return items, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
