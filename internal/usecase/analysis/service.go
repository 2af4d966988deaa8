package analysis

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/insightloop/insightloop/errors"
	"github.com/insightloop/insightloop/internal/domain/entities"
)

// Transcriber is the speech-to-text collaborator contract. A language of
// "auto" requests detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*entities.TranscriptionResult, error)
}

// Service orchestrates one full meeting analysis run: transcription, speaker
// attribution, summarization and action-item extraction, aggregated into a
// single immutable report. Each stage runs exactly once per call; only a
// transcription failure aborts the run.
type Service struct {
	transcriber Transcriber
	speakers    SpeakerAssigner
	summarizer  *Summarizer
	extractor   *Extractor
	logger      *zap.Logger

	now func() time.Time
}

// NewService constructs the report service.
func NewService(
	transcriber Transcriber,
	speakers SpeakerAssigner,
	summarizer *Summarizer,
	extractor *Extractor,
	logger *zap.Logger,
) *Service {
	return &Service{
		transcriber: transcriber,
		speakers:    speakers,
		summarizer:  summarizer,
		extractor:   extractor,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateReport runs the pipeline over one audio file. The participants
// argument may be empty, in which case the summary's derived participant
// list is used for action-item extraction.
func (s *Service) GenerateReport(ctx context.Context, audioPath, meetingTitle, language string, participants []string) (*entities.MeetingReport, error) {
	if s.logger != nil {
		s.logger.Info("🚀 Starting meeting analysis",
			zap.String("audio_path", audioPath),
			zap.String("title", meetingTitle),
			zap.String("language", language),
		)
	}

	result, err := s.transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Transcription failed", zap.Error(err))
		}
		return nil, apperrors.ErrTranscriptionFailed(err)
	}
	if result == nil || result.FullText == "" {
		if s.logger != nil {
			s.logger.Error("❌ Transcription produced no text",
				zap.String("audio_path", audioPath),
			)
		}
		return nil, apperrors.ErrTranscriptionFailed(nil)
	}

	utterances := s.speakers.Assign(result.Segments)

	summary, summarySource := s.summarizer.Summarize(ctx, result.FullText, meetingTitle)

	effectiveParticipants := participants
	if len(effectiveParticipants) == 0 {
		effectiveParticipants = summary.Participants
	}

	items, itemsSource := s.extractor.Extract(ctx, result.FullText, effectiveParticipants)

	report := entities.NewMeetingReport()
	report.MeetingInfo = entities.MeetingInfo{
		Title:           meetingTitle,
		Date:            s.now().Format("2006-01-02 15:04:05"),
		DurationMinutes: math.Round(result.Duration/60*10) / 10,
		Language:        result.Language,
		Participants:    summary.Participants,
	}
	report.Transcription = entities.Transcription{
		FullText: result.FullText,
		Segments: utterances,
	}
	report.Summary = *summary
	report.ActionItems = items
	report.Stats = entities.NewReportStats(utterances, items)
	report.SummarySource = summarySource
	report.ActionItemsSource = itemsSource

	if s.logger != nil {
		s.logger.Info("✅ Analysis complete",
			zap.String("report_id", report.ID.String()),
			zap.Int("segments", report.Stats.TotalSegments),
			zap.Int("action_items", report.Stats.TotalActionItems),
			zap.Int("high_priority", report.Stats.HighPriorityItems),
		)
	}

	return report, nil
}
