package entities

// TranscriptSegment is a single timed span of recognized speech as produced
// by the speech-to-text collaborator. Times are seconds from audio start.
type TranscriptSegment struct {
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// SpeakerUtterance is a TranscriptSegment with a speaker label attached.
// The label is an open string type so an acoustic diarization backend can
// produce arbitrary identities; the built-in heuristic emits "Speaker N".
type SpeakerUtterance struct {
	Speaker    string  `json:"speaker"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionResult is the full output of one transcription call.
type TranscriptionResult struct {
	FullText string              `json:"full_text"`
	Segments []TranscriptSegment `json:"segments"`
	Language string              `json:"language"`
	Duration float64             `json:"duration"` // seconds
}
