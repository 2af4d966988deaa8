package report

import (
	"github.com/insightloop/insightloop/internal/domain/entities"
)

// SummaryResponse is the condensed report view returned by list endpoints.
type SummaryResponse struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Date              string               `json:"date"`
	DurationMinutes   float64              `json:"duration_minutes"`
	Language          string               `json:"language"`
	Stats             entities.ReportStats `json:"stats"`
	SummarySource     string               `json:"summary_source"`
	ActionItemsSource string               `json:"action_items_source"`
}

// NewSummaryResponse builds the condensed view of a report.
func NewSummaryResponse(r *entities.MeetingReport) SummaryResponse {
	return SummaryResponse{
		ID:                r.ID.String(),
		Title:             r.MeetingInfo.Title,
		Date:              r.MeetingInfo.Date,
		DurationMinutes:   r.MeetingInfo.DurationMinutes,
		Language:          r.MeetingInfo.Language,
		Stats:             r.Stats,
		SummarySource:     string(r.SummarySource),
		ActionItemsSource: string(r.ActionItemsSource),
	}
}
