package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// Writer persists reports as JSON documents on disk.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// DefaultFilename returns the timestamped name used when the caller does not
// choose one.
func (w *Writer) DefaultFilename() string {
	return fmt.Sprintf("meeting_report_%s.json", w.now().Format("20060102_150405"))
}

// Write renders the report to path. An empty path uses the default filename
// in the current directory. Non-ASCII transcript text is written verbatim.
func (w *Writer) Write(report *entities.MeetingReport, path string) (string, error) {
	if path == "" {
		path = w.DefaultFilename()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	return path, nil
}

// Load reads a previously written report document.
func (w *Writer) Load(path string) (*entities.MeetingReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report entities.MeetingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report file: %w", err)
	}
	return &report, nil
}
