package cli

import (
	"fmt"

	"github.com/insightloop/insightloop/internal/infrastructure/transcribe"
	"github.com/insightloop/insightloop/internal/usecase/analysis"
	"github.com/insightloop/insightloop/pkg/ai"
)

// buildPipeline wires the analysis service from the loaded config.
func buildPipeline() (*analysis.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	transcriber, err := transcribe.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	llm := ai.NewOpenAIClient(&cfg.OpenAI)

	speakers := analysis.NewGapSpeakerAssigner(cfg.Pipeline.SpeakerGapSeconds, cfg.Pipeline.SpeakerCount)

	summarizer := analysis.NewSummarizer(llm, logger)
	if cfg.Pipeline.SummaryMaxTokens > 0 {
		summarizer.MaxTokens = cfg.Pipeline.SummaryMaxTokens
	}
	if cfg.Pipeline.SummaryTemperature > 0 {
		summarizer.Temperature = cfg.Pipeline.SummaryTemperature
	}
	if cfg.Pipeline.SummaryPrefixLength > 0 {
		summarizer.PrefixLength = cfg.Pipeline.SummaryPrefixLength
	}

	fallback := analysis.NewFallbackExtractor()
	if cfg.Pipeline.FallbackMaxItems > 0 {
		fallback.MaxItems = cfg.Pipeline.FallbackMaxItems
	}
	fallback.Dedupe = cfg.Pipeline.FallbackDedupe

	extractor := analysis.NewExtractor(llm, fallback, logger)
	if cfg.Pipeline.ExtractMaxTokens > 0 {
		extractor.MaxTokens = cfg.Pipeline.ExtractMaxTokens
	}
	if cfg.Pipeline.ExtractTemperature > 0 {
		extractor.Temperature = cfg.Pipeline.ExtractTemperature
	}

	return analysis.NewService(transcriber, speakers, summarizer, extractor, logger), nil
}
