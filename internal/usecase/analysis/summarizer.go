package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// CompletionClient is the language-model collaborator contract: one prompt
// in, one text completion out. Network, auth and rate-limit failures surface
// as errors and are absorbed at the component boundary.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Summarizer defaults. The higher temperature favors coherent prose over
// deterministic output.
const (
	DefaultSummaryMaxTokens    = 1500
	DefaultSummaryTemperature  = 0.7
	DefaultSummaryPrefixLength = 500
)

// fallbackSummaryText is used when the collaborator call itself fails.
const fallbackSummaryText = "Error generating summary"

// Summarizer produces one SummaryRecord per transcript. It never returns an
// error: unparseable or failed model output degrades to a placeholder record
// tagged SourceFallback.
type Summarizer struct {
	llm    CompletionClient
	parser *Parser
	logger *zap.Logger

	MaxTokens    int
	Temperature  float64
	PrefixLength int
}

// NewSummarizer constructs a Summarizer with default tuning.
func NewSummarizer(llm CompletionClient, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		llm:          llm,
		parser:       NewParser(),
		logger:       logger,
		MaxTokens:    DefaultSummaryMaxTokens,
		Temperature:  DefaultSummaryTemperature,
		PrefixLength: DefaultSummaryPrefixLength,
	}
}

// Summarize generates a structured summary for the transcript. The returned
// source tag distinguishes confident model output from degraded fallback
// output.
func (s *Summarizer) Summarize(ctx context.Context, transcript, meetingTitle string) (*entities.SummaryRecord, entities.ResultSource) {
	prompt := buildSummaryPrompt(meetingTitle, transcript)

	raw, err := s.llm.Complete(ctx, prompt, s.MaxTokens, s.Temperature)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Summary completion call failed", zap.Error(err))
		}
		return entities.NewEmptySummaryRecord(fallbackSummaryText), entities.SourceFallback
	}

	record, err := s.parser.ParseSummary(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Summary response was not valid JSON, using raw prefix",
				zap.Error(err),
				zap.Int("response_length", len(raw)),
			)
		}
		return entities.NewEmptySummaryRecord(truncateRunes(raw, s.PrefixLength) + "..."), entities.SourceFallback
	}

	return record, entities.SourceModel
}

// truncateRunes returns at most limit runes of s, never splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func buildSummaryPrompt(meetingTitle, transcript string) string {
	return fmt.Sprintf(`Please analyze this meeting transcript and provide a comprehensive summary:

MEETING: %s
TRANSCRIPT: %s

Please provide:
1. A brief executive summary (2-3 sentences)
2. Key discussion points (bullet points)
3. Important decisions made
4. Main participants and their contributions
5. Topics that need follow-up

Format your response as JSON with these keys:
- executive_summary
- key_points (array)
- decisions (array)
- participants (array)
- follow_up_topics (array)`, meetingTitle, transcript)
}
