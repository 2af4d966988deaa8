package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/pkg/config"
)

// WhisperTranscriber runs a local whisper.cpp binary and parses its JSON
// output. No network access is needed, so it is the default backend.
type WhisperTranscriber struct {
	binaryPath string
	modelPath  string
	threads    int
	logger     *zap.Logger

	// run executes the binary; replaced in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewWhisperTranscriber creates a whisper.cpp backed transcriber.
func NewWhisperTranscriber(cfg *config.WhisperConfig, logger *zap.Logger) *WhisperTranscriber {
	w := &WhisperTranscriber{
		binaryPath: "whisper-cli",
		threads:    4,
		logger:     logger,
	}
	if cfg != nil {
		if cfg.BinaryPath != "" {
			w.binaryPath = cfg.BinaryPath
		}
		w.modelPath = cfg.ModelPath
		if cfg.Threads > 0 {
			w.threads = cfg.Threads
		}
	}
	w.run = w.runBinary
	return w
}

// whisperOutput mirrors the file written by whisper.cpp with -oj.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp over the audio file. Pass "auto" as language
// to let the model detect it.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath, language string) (*entities.TranscriptionResult, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file not accessible: %w", err)
	}

	outDir, err := os.MkdirTemp("", "whisper-out-")
	if err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if language == "" {
		language = "auto"
	}

	outPrefix := filepath.Join(outDir, "transcript")
	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-l", language,
		"-t", strconv.Itoa(w.threads),
		"-oj",
		"-of", outPrefix,
	}

	if w.logger != nil {
		w.logger.Info("🎙️ Running whisper.cpp",
			zap.String("binary", w.binaryPath),
			zap.String("audio_path", audioPath),
			zap.String("language", language),
		)
	}

	if err := w.run(ctx, w.binaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w", err)
	}

	data, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	segments := make([]entities.TranscriptSegment, 0, len(out.Transcription))
	texts := make([]string, 0, len(out.Transcription))
	duration := 0.0
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		end := float64(seg.Offsets.To) / 1000.0
		segments = append(segments, entities.TranscriptSegment{
			StartTime: float64(seg.Offsets.From) / 1000.0,
			EndTime:   end,
			Text:      text,
		})
		texts = append(texts, text)
		if end > duration {
			duration = end
		}
	}

	detected := out.Result.Language
	if detected == "" && language != "auto" {
		detected = language
	}

	return &entities.TranscriptionResult{
		FullText: strings.Join(texts, " "),
		Segments: segments,
		Language: detected,
		Duration: duration,
	}, nil
}

func (w *WhisperTranscriber) runBinary(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 500 {
			msg = msg[len(msg)-500:]
		}
		if msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
