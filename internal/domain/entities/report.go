package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SummaryRecord is the fixed-shape structured summary of one meeting.
// All fields are always present: a failed or unparseable model response is
// represented by a placeholder summary and empty lists, never by a nil record.
type SummaryRecord struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyPoints        []string `json:"key_points"`
	Decisions        []string `json:"decisions"`
	Participants     []string `json:"participants"`
	FollowUpTopics   []string `json:"follow_up_topics"`
}

// NewEmptySummaryRecord returns a SummaryRecord with the given summary text
// and all list fields initialized empty.
func NewEmptySummaryRecord(executiveSummary string) *SummaryRecord {
	return &SummaryRecord{
		ExecutiveSummary: executiveSummary,
		KeyPoints:        []string{},
		Decisions:        []string{},
		Participants:     []string{},
		FollowUpTopics:   []string{},
	}
}

// ActionItemPriority constants
const (
	ActionItemPriorityHigh   = "High"
	ActionItemPriorityMedium = "Medium"
	ActionItemPriorityLow    = "Low"
)

// ActionItemStatusPending is the only status assigned at extraction time.
const ActionItemStatusPending = "pending"

// ActionItemDefaultAssignee is used when no participant could be attributed.
const ActionItemDefaultAssignee = "Unassigned"

// ActionItem is one task extracted from a meeting. IDs are assigned
// sequentially (1-based) in emission order within a single report.
type ActionItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Context     string    `json:"context"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResultSource tags whether an analysis section came from the language model
// or from a deterministic fallback path.
type ResultSource string

const (
	SourceModel    ResultSource = "model"
	SourceFallback ResultSource = "fallback"
)

// MeetingInfo holds the meeting metadata of one report.
type MeetingInfo struct {
	Title           string   `json:"title"`
	Date            string   `json:"date"` // generation time, "2006-01-02 15:04:05"
	DurationMinutes float64  `json:"duration_minutes"`
	Language        string   `json:"language"`
	Participants    []string `json:"participants"`
}

// Transcription pairs the full recognized text with its speaker-attributed
// utterance sequence.
type Transcription struct {
	FullText string             `json:"full_text"`
	Segments []SpeakerUtterance `json:"segments"`
}

// ReportStats are derived counters computed purely from the other report fields.
type ReportStats struct {
	TotalSegments     int `json:"total_segments"`
	TotalActionItems  int `json:"total_action_items"`
	HighPriorityItems int `json:"high_priority_items"`
}

// NewReportStats computes the derived statistics for a report.
func NewReportStats(segments []SpeakerUtterance, items []ActionItem) ReportStats {
	high := 0
	for _, item := range items {
		if item.Priority == ActionItemPriorityHigh {
			high++
		}
	}
	return ReportStats{
		TotalSegments:     len(segments),
		TotalActionItems:  len(items),
		HighPriorityItems: high,
	}
}

// MeetingReport is the terminal, immutable artifact of one pipeline run.
type MeetingReport struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingInfo   MeetingInfo   `json:"meeting_info" gorm:"type:jsonb;serializer:json"`
	Transcription Transcription `json:"transcription" gorm:"type:jsonb;serializer:json"`
	Summary       SummaryRecord `json:"summary" gorm:"type:jsonb;serializer:json"`
	ActionItems   []ActionItem  `json:"action_items" gorm:"type:jsonb;serializer:json"`
	Stats         ReportStats   `json:"stats" gorm:"type:jsonb;serializer:json"`

	// Degradation tags: record whether summary and action items came from the
	// model or a fallback path, so callers can tell confident output apart
	// from best-effort output.
	SummarySource     ResultSource `json:"summary_source" gorm:"type:varchar(20)"`
	ActionItemsSource ResultSource `json:"action_items_source" gorm:"type:varchar(20)"`

	// Free-form provenance, e.g. the Zoom recording the audio came from.
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MeetingReport
func (MeetingReport) TableName() string {
	return "meeting_reports"
}

// NewMeetingReport creates a new MeetingReport entity
func NewMeetingReport() *MeetingReport {
	return &MeetingReport{
		ID: uuid.New(),
	}
}
