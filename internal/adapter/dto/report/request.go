package report

// GenerateReportRequest represents the request to analyze one audio file
type GenerateReportRequest struct {
	AudioPath    string   `json:"audio_path" validate:"required"`
	Title        string   `json:"title" validate:"required,min=1,max=255"`
	Language     string   `json:"language" validate:"omitempty,min=2,max=10"`
	Participants []string `json:"participants,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

// ListReportsRequest represents query parameters for listing reports
type ListReportsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}
