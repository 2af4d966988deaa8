package analysis

import (
	"fmt"
	"strings"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// SpeakerAssigner labels an ordered sequence of transcript segments with
// speaker identities. Implementations must preserve segment order.
type SpeakerAssigner interface {
	Assign(segments []entities.TranscriptSegment) []entities.SpeakerUtterance
}

// Defaults for the gap heuristic.
const (
	DefaultSpeakerGapSeconds = 2.0
	DefaultSpeakerCount      = 2
)

// GapSpeakerAssigner is a turn-taking heuristic used when no acoustic
// diarization backend is available: whenever the silence between two
// consecutive segments exceeds GapSeconds, the label rotates to the next
// synthetic speaker. It only detects conversational turn-taking, so two
// people talking back-to-back without a pause share one label.
type GapSpeakerAssigner struct {
	GapSeconds   float64
	SpeakerCount int
}

// NewGapSpeakerAssigner creates a gap-based assigner. Non-positive arguments
// fall back to the defaults (2.0 seconds, 2 speakers).
func NewGapSpeakerAssigner(gapSeconds float64, speakerCount int) *GapSpeakerAssigner {
	if gapSeconds <= 0 {
		gapSeconds = DefaultSpeakerGapSeconds
	}
	if speakerCount < 2 {
		speakerCount = DefaultSpeakerCount
	}
	return &GapSpeakerAssigner{
		GapSeconds:   gapSeconds,
		SpeakerCount: speakerCount,
	}
}

// Assign labels each segment, rotating the speaker at every detected gap.
// The last-end marker starts at zero, so leading silence longer than the
// threshold rotates away from Speaker 1 before the first utterance.
func (a *GapSpeakerAssigner) Assign(segments []entities.TranscriptSegment) []entities.SpeakerUtterance {
	utterances := make([]entities.SpeakerUtterance, 0, len(segments))

	current := 1
	lastEndTime := 0.0

	for _, seg := range segments {
		if seg.StartTime-lastEndTime > a.GapSeconds {
			current = current%a.SpeakerCount + 1
		}

		utterances = append(utterances, entities.SpeakerUtterance{
			Speaker:    fmt.Sprintf("Speaker %d", current),
			StartTime:  seg.StartTime,
			EndTime:    seg.EndTime,
			Text:       strings.TrimSpace(seg.Text),
			Confidence: seg.Confidence,
		})

		lastEndTime = seg.EndTime
	}

	return utterances
}
