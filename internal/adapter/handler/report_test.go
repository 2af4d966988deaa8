package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/insightloop/insightloop/errors"
	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/pkg/config"
	"github.com/insightloop/insightloop/pkg/validator"
)

type stubGenerator struct {
	report *entities.MeetingReport
	err    error
}

func (s *stubGenerator) GenerateReport(_ context.Context, _, _, _ string, _ []string) (*entities.MeetingReport, error) {
	return s.report, s.err
}

type stubRepo struct {
	reports map[uuid.UUID]*entities.MeetingReport
	created []*entities.MeetingReport
}

func newStubRepo() *stubRepo {
	return &stubRepo{reports: make(map[uuid.UUID]*entities.MeetingReport)}
}

func (s *stubRepo) Create(_ context.Context, report *entities.MeetingReport) error {
	s.created = append(s.created, report)
	s.reports[report.ID] = report
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingReport, error) {
	return s.reports[id], nil
}

func (s *stubRepo) List(_ context.Context, limit, offset int) ([]entities.MeetingReport, error) {
	out := make([]entities.MeetingReport, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.reports, id)
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

func testReport() *entities.MeetingReport {
	r := entities.NewMeetingReport()
	r.MeetingInfo = entities.MeetingInfo{Title: "Sync", Language: "en"}
	r.Summary = *entities.NewEmptySummaryRecord("summary")
	r.ActionItems = []entities.ActionItem{}
	return r
}

func TestGenerate_Success(t *testing.T) {
	e := newEcho()
	repo := newStubRepo()
	h := NewReportHandler(&stubGenerator{report: testReport()}, repo, nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	body := `{"audio_path": "/tmp/a.wav", "title": "Sync", "language": "en"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected report persisted, got %d", len(repo.created))
	}
}

func TestGenerate_MissingTitle(t *testing.T) {
	e := newEcho()
	h := NewReportHandler(&stubGenerator{report: testReport()}, nil, nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	body := `{"audio_path": "/tmp/a.wav"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGenerate_TranscriptionFailure(t *testing.T) {
	e := newEcho()
	h := NewReportHandler(&stubGenerator{err: apperrors.ErrTranscriptionFailed(errors.New("no audio"))}, nil, nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	body := `{"audio_path": "/tmp/a.wav", "title": "Sync"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Failed to transcribe audio" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestGet_NotFound(t *testing.T) {
	e := newEcho()
	h := NewReportHandler(&stubGenerator{}, newStubRepo(), nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestGet_Found(t *testing.T) {
	e := newEcho()
	repo := newStubRepo()
	report := testReport()
	repo.reports[report.ID] = report
	h := NewReportHandler(&stubGenerator{}, repo, nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/"+report.ID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := newEcho()
	h := NewReportHandler(&stubGenerator{}, nil, nil, nil)
	NewRouter(&config.Config{}, h).Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
