package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// Extractor defaults. The lower temperature favors consistency over variety,
// since this output drives downstream scheduling.
const (
	DefaultExtractMaxTokens   = 2000
	DefaultExtractTemperature = 0.3
)

// defaultParticipant stands in when the caller knows no participant names.
const defaultParticipant = "Team Member"

// Extractor produces the ordered action-item sequence for one transcript.
// It never returns an error: an unparseable model response triggers the
// pattern fallback, and a failed collaborator call yields an empty sequence.
type Extractor struct {
	llm      CompletionClient
	parser   *Parser
	fallback *FallbackExtractor
	logger   *zap.Logger

	MaxTokens   int
	Temperature float64

	now func() time.Time
}

// NewExtractor constructs an Extractor with default tuning.
func NewExtractor(llm CompletionClient, fallback *FallbackExtractor, logger *zap.Logger) *Extractor {
	if fallback == nil {
		fallback = NewFallbackExtractor()
	}
	return &Extractor{
		llm:         llm,
		parser:      NewParser(),
		fallback:    fallback,
		logger:      logger,
		MaxTokens:   DefaultExtractMaxTokens,
		Temperature: DefaultExtractTemperature,
		now:         time.Now,
	}
}

// Extract returns action items with sequential 1-based ids, pending status
// and a creation timestamp, plus a source tag for the path taken.
func (e *Extractor) Extract(ctx context.Context, transcript string, participants []string) ([]entities.ActionItem, entities.ResultSource) {
	prompt := buildActionItemsPrompt(transcript, participants, e.now())

	raw, err := e.llm.Complete(ctx, prompt, e.MaxTokens, e.Temperature)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("❌ Action item completion call failed", zap.Error(err))
		}
		return []entities.ActionItem{}, entities.SourceFallback
	}

	source := entities.SourceModel
	items, parseErr := e.parser.ParseActionItems(raw)
	if parseErr != nil {
		if e.logger != nil {
			e.logger.Warn("⚠️ Action item response was not a JSON array, running pattern fallback",
				zap.Error(parseErr),
			)
		}
		items = e.fallback.Extract(transcript)
		source = entities.SourceFallback
	}

	createdAt := e.now()
	for i := range items {
		items[i].ID = i + 1
		items[i].Status = entities.ActionItemStatusPending
		items[i].CreatedAt = createdAt
	}

	return items, source
}

func buildActionItemsPrompt(transcript string, participants []string, now time.Time) string {
	if len(participants) == 0 {
		participants = []string{defaultParticipant}
	}

	return fmt.Sprintf(`Analyze this meeting transcript and extract all action items, tasks, and follow-ups mentioned.

TRANSCRIPT: %s
KNOWN PARTICIPANTS: %s

For each action item, identify:
1. What needs to be done (clear, actionable description)
2. Who should do it (assign to a participant if mentioned, otherwise "Unassigned")
3. When it should be done (extract or infer deadline, default to 1 week if not specified)
4. Priority level (High/Medium/Low based on urgency indicators)
5. Category (Research, Development, Communication, Decision, etc.)

Return as JSON array with objects containing:
- title: Brief action item title
- description: Detailed description
- assignee: Person responsible
- due_date: Date in YYYY-MM-DD format
- priority: High/Medium/Low
- category: Action type
- context: Relevant meeting context

Current date: %s`, transcript, strings.Join(participants, ", "), now.Format("2006-01-02"))
}
