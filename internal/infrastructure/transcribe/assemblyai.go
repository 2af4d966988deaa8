package transcribe

import (
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/pkg/config"
)

// AssemblyAITranscriber uploads the audio file to AssemblyAI and waits for
// the hosted transcription to complete. Speaker labels from the service are
// ignored downstream; the pipeline applies its own attribution so both
// backends behave the same.
type AssemblyAITranscriber struct {
	client *aai.Client
	logger *zap.Logger
}

// NewAssemblyAITranscriber creates an AssemblyAI backed transcriber using the
// official SDK client.
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAITranscriber {
	apiKey := ""
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	return &AssemblyAITranscriber{
		client: aai.NewClient(apiKey),
		logger: logger,
	}
}

// Transcribe uploads the file and blocks until the hosted job completes.
// Pass "auto" as language to enable language detection.
func (a *AssemblyAITranscriber) Transcribe(ctx context.Context, audioPath, language string) (*entities.TranscriptionResult, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("audio file not accessible: %w", err)
	}
	defer f.Close()

	// Upload with retry; the file handle is rewound between attempts.
	var uploadURL string
	uploadFn := func() error {
		if _, err := f.Seek(0, 0); err != nil {
			return backoff.Permanent(err)
		}
		url, err := a.client.Upload(ctx, f)
		if err != nil {
			return err
		}
		uploadURL = url
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(uploadFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	if a.logger != nil {
		a.logger.Info("📤 File uploaded to AssemblyAI", zap.String("upload_url", uploadURL))
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if language == "" || language == "auto" {
		params.LanguageDetection = aai.Bool(true)
	} else {
		params.LanguageCode = aai.TranscriptLanguageCode(language)
	}

	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	result := &entities.TranscriptionResult{}
	if transcript.Text != nil {
		result.FullText = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		result.Duration = *transcript.AudioDuration
	}
	if transcript.LanguageCode != "" {
		result.Language = string(transcript.LanguageCode)
	} else {
		result.Language = language
	}

	segments := make([]entities.TranscriptSegment, 0, len(transcript.Utterances))
	for _, utt := range transcript.Utterances {
		segment := entities.TranscriptSegment{}
		if utt.Text != nil {
			segment.Text = *utt.Text
		}
		if utt.Start != nil {
			segment.StartTime = float64(*utt.Start) / 1000.0 // ms to seconds
		}
		if utt.End != nil {
			segment.EndTime = float64(*utt.End) / 1000.0
		}
		if utt.Confidence != nil {
			segment.Confidence = *utt.Confidence
		}
		segments = append(segments, segment)
	}
	result.Segments = segments

	if a.logger != nil {
		a.logger.Info("✅ AssemblyAI transcription complete",
			zap.Int("text_length", len(result.FullText)),
			zap.Int("segments", len(result.Segments)),
		)
	}

	return result, nil
}
