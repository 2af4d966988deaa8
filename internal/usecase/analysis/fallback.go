package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// DefaultFallbackMaxItems caps the fallback extractor's output.
const DefaultFallbackMaxItems = 10

// fallbackDueDateDays is the default deadline for pattern-extracted items.
const fallbackDueDateDays = 7

// The four independent scans, applied in order. Candidates from all scans
// are concatenated in this order before the cap is applied.
var fallbackPatterns = []*regexp.Regexp{
	// obligation phrases up to a sentence boundary
	regexp.MustCompile(`(?i)(?:need to|should|must|will|going to|action item|todo|task)\s+(.+?)(?:\.|$)`),
	// "<subject> will/should/needs to <text>"
	regexp.MustCompile(`(?i)([A-Za-z\s]+)\s+(?:will|should|needs to)\s+(.+?)(?:\.|$)`),
	// "follow up on/with <text>"
	regexp.MustCompile(`(?i)follow up (?:on|with)\s+(.+?)(?:\.|$)`),
	// "by <day-name|date|'next week'|'tomorrow'> ... <text>"
	regexp.MustCompile(`(?i)by\s+(\w+day|\d+/\d+|\d+-\d+-\d+|next week|tomorrow).*?([^.]+)`),
}

// FallbackExtractor finds action-item candidates with text patterns alone,
// used when the language-model response cannot be parsed as an array. The
// four scans run independently, so overlapping matches produce duplicate
// candidates unless Dedupe is enabled.
type FallbackExtractor struct {
	MaxItems int
	Dedupe   bool

	now func() time.Time
}

// NewFallbackExtractor creates a fallback extractor with the default cap.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{
		MaxItems: DefaultFallbackMaxItems,
		now:      time.Now,
	}
}

// Extract scans the transcript and returns at most MaxItems candidates.
// Lifecycle fields (id, status, created_at) are left for the caller.
func (f *FallbackExtractor) Extract(transcript string) []entities.ActionItem {
	dueDate := f.now().AddDate(0, 0, fallbackDueDateDays).Format("2006-01-02")

	items := make([]entities.ActionItem, 0)
	seen := make(map[string]bool)

	for _, pattern := range fallbackPatterns {
		for _, match := range pattern.FindAllStringSubmatch(transcript, -1) {
			title := "Follow-up Item"
			if len(match) > 1 && match[1] != "" {
				title = truncateRunes(match[1], 100)
			}

			if f.Dedupe {
				key := strings.ToLower(strings.TrimSpace(match[0]))
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			items = append(items, entities.ActionItem{
				Title:       title,
				Description: match[0],
				Assignee:    entities.ActionItemDefaultAssignee,
				DueDate:     dueDate,
				Priority:    entities.ActionItemPriorityMedium,
				Category:    "Follow-up",
				Context:     "Extracted from transcript",
			})
		}
	}

	max := f.MaxItems
	if max <= 0 {
		max = DefaultFallbackMaxItems
	}
	if len(items) > max {
		items = items[:max]
	}

	return items
}
