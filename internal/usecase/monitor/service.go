package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/insightloop/insightloop/internal/adapter/report"
	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/internal/domain/repositories"
	"github.com/insightloop/insightloop/internal/infrastructure/external/zoom"
	"github.com/insightloop/insightloop/pkg/jobcontext"
)

// recordingLookback is how far back each poll scans for finished recordings.
const recordingLookback = 24 * time.Hour

// ZoomAPI is the subset of the Zoom client the monitor needs.
type ZoomAPI interface {
	ListRecordings(ctx context.Context, from, to time.Time) ([]zoom.RecordingMeeting, error)
	DownloadRecording(ctx context.Context, meeting *zoom.RecordingMeeting, file *zoom.RecordingFile) (string, error)
}

// ProcessedStore remembers which recording files were already analyzed.
type ProcessedStore interface {
	MarkProcessed(ctx context.Context, recordingID string) (bool, error)
	IsProcessed(ctx context.Context, recordingID string) (bool, error)
}

// ReportGenerator runs the analysis pipeline for one audio file.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, audioPath, meetingTitle, language string, participants []string) (*entities.MeetingReport, error)
}

// Archiver stores source audio and rendered reports in object storage.
type Archiver interface {
	UploadReport(ctx context.Context, reportID string, data []byte) (string, error)
	UploadAudio(ctx context.Context, reportID, audioPath string) (string, error)
}

// Service polls Zoom cloud recordings and runs the analysis pipeline over
// every new audio recording it finds. Repository and archiver are optional.
type Service struct {
	zoomClient ZoomAPI
	generator  ReportGenerator
	processed  ProcessedStore
	writer     *report.Writer
	repo       repositories.ReportRepository
	archive    Archiver
	logger     *zap.Logger

	interval  time.Duration
	outputDir string
	now       func() time.Time
}

// NewService creates a recording monitor.
func NewService(
	zoomClient ZoomAPI,
	generator ReportGenerator,
	processed ProcessedStore,
	writer *report.Writer,
	repo repositories.ReportRepository,
	archive Archiver,
	interval time.Duration,
	outputDir string,
	logger *zap.Logger,
) *Service {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Service{
		zoomClient: zoomClient,
		generator:  generator,
		processed:  processed,
		writer:     writer,
		repo:       repo,
		archive:    archive,
		logger:     logger,
		interval:   interval,
		outputDir:  outputDir,
		now:        time.Now,
	}
}

// Run polls until the context is cancelled. One scan runs immediately.
func (s *Service) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("👀 Recording monitor started",
			zap.Duration("interval", s.interval),
		)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(ctx)
	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("👋 Recording monitor stopped")
			}
			return ctx.Err()
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan lists recent recordings and processes every new audio file. Failures
// on one recording do not stop the rest of the scan.
func (s *Service) Scan(ctx context.Context) {
	to := s.now()
	from := to.Add(-recordingLookback)

	meetings, err := s.zoomClient.ListRecordings(ctx, from, to)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to list recordings", zap.Error(err))
		}
		return
	}

	for i := range meetings {
		meeting := &meetings[i]
		file := pickAudioFile(meeting)
		if file == nil {
			continue
		}

		done, err := s.processed.IsProcessed(ctx, file.ID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Processed check failed", zap.String("recording_id", file.ID), zap.Error(err))
			}
			continue
		}
		if done {
			continue
		}

		if err := s.processRecording(ctx, meeting, file); err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Recording processing failed",
					zap.String("recording_id", file.ID),
					zap.String("topic", meeting.Topic),
					zap.Error(err),
				)
			}
			continue
		}

		if _, err := s.processed.MarkProcessed(ctx, file.ID); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to mark recording processed", zap.String("recording_id", file.ID), zap.Error(err))
		}
	}
}

// pickAudioFile chooses the audio-only track when present, otherwise the
// first completed file.
func pickAudioFile(meeting *zoom.RecordingMeeting) *zoom.RecordingFile {
	var fallback *zoom.RecordingFile
	for i := range meeting.RecordingFiles {
		file := &meeting.RecordingFiles[i]
		if file.Status != "" && file.Status != "completed" {
			continue
		}
		if strings.EqualFold(file.FileType, "M4A") || file.RecordingType == "audio_only" {
			return file
		}
		if fallback == nil {
			fallback = file
		}
	}
	return fallback
}

func (s *Service) processRecording(parentCtx context.Context, meeting *zoom.RecordingMeeting, file *zoom.RecordingFile) error {
	jobCtx, cancel := jobcontext.JobBegin(parentCtx, uuid.New(), "zoom_recording")
	defer cancel()

	return jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		if s.logger != nil {
			s.logger.Info("🎬 Processing recording",
				zap.String("recording_id", file.ID),
				zap.String("topic", meeting.Topic),
			)
		}

		audioPath, err := s.zoomClient.DownloadRecording(ctx, meeting, file)
		if err != nil {
			return err
		}
		defer os.Remove(audioPath)

		generated, err := s.generator.GenerateReport(ctx, audioPath, meeting.Topic, "auto", nil)
		if err != nil {
			return err
		}

		if meta, err := json.Marshal(map[string]interface{}{
			"source":            "zoom",
			"meeting_uuid":      meeting.UUID,
			"meeting_id":        meeting.ID,
			"recording_id":      file.ID,
			"recording_started": meeting.StartTime,
		}); err == nil {
			generated.Metadata = datatypes.JSON(meta)
		}

		path, err := s.writer.Write(generated, s.reportPath(generated))
		if err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.Info("📝 Report written", zap.String("path", path))
		}

		if s.repo != nil {
			if err := s.repo.Create(ctx, generated); err != nil {
				return err
			}
		}

		if s.archive != nil {
			data, err := os.ReadFile(path)
			if err == nil {
				if _, err := s.archive.UploadReport(ctx, generated.ID.String(), data); err != nil && s.logger != nil {
					s.logger.Warn("⚠️ Report archive failed", zap.Error(err))
				}
			}
			if _, err := s.archive.UploadAudio(ctx, generated.ID.String(), audioPath); err != nil && s.logger != nil {
				s.logger.Warn("⚠️ Audio archive failed", zap.Error(err))
			}
		}

		return nil
	})
}

func (s *Service) reportPath(generated *entities.MeetingReport) string {
	if s.outputDir == "" {
		return ""
	}
	return filepath.Join(s.outputDir, "meeting_report_"+generated.ID.String()+".json")
}
