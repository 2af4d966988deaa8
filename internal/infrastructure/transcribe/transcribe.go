package transcribe

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/usecase/analysis"
	"github.com/insightloop/insightloop/pkg/config"
)

// New builds the transcription backend selected by the config.
func New(cfg *config.Config, logger *zap.Logger) (analysis.Transcriber, error) {
	switch cfg.Transcribe.Backend {
	case "whisper":
		return NewWhisperTranscriber(&cfg.Whisper, logger), nil
	case "assemblyai":
		return NewAssemblyAITranscriber(&cfg.Assembly, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcribe.Backend)
	}
}
