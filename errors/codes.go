package errors

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"

	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = "AI_TRANSCRIPTION_FAILED"
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = "AI_SUMMARY_FAILED"
	ErrorCode_AI_EXTRACTION_FAILED    ErrorCode = "AI_EXTRACTION_FAILED"
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = "AI_SERVICE_UNAVAILABLE"

	ErrorCode_REPORT_NOT_FOUND          ErrorCode = "REPORT_NOT_FOUND"
	ErrorCode_REPORT_GENERATION_FAILED  ErrorCode = "REPORT_GENERATION_FAILED"
	ErrorCode_REPORT_PERSISTENCE_FAILED ErrorCode = "REPORT_PERSISTENCE_FAILED"

	ErrorCode_ZOOM_AUTH_FAILED           ErrorCode = "ZOOM_AUTH_FAILED"
	ErrorCode_ZOOM_API_FAILED            ErrorCode = "ZOOM_API_FAILED"
	ErrorCode_RECORDING_DOWNLOAD_FAILED  ErrorCode = "RECORDING_DOWNLOAD_FAILED"
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = "INTEGRATION_CACHE_FAILED"

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED      ErrorCode = "DB_QUERY_FAILED"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
