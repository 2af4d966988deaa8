package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/insightloop/insightloop/errors"
	reportdto "github.com/insightloop/insightloop/internal/adapter/dto/report"
	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/internal/domain/repositories"
)

// ReportGenerator runs the analysis pipeline for one audio file.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, audioPath, meetingTitle, language string, participants []string) (*entities.MeetingReport, error)
}

// ReportCache is the optional read-through cache for generated reports.
type ReportCache interface {
	CacheReport(ctx context.Context, report *entities.MeetingReport) error
	GetReport(ctx context.Context, id string) (*entities.MeetingReport, error)
}

// Report handles report endpoints. Repository and cache are optional; when
// nil the handler serves generation only.
type Report struct {
	generator ReportGenerator
	repo      repositories.ReportRepository
	cache     ReportCache
	logger    *zap.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(generator ReportGenerator, repo repositories.ReportRepository, cache ReportCache, logger *zap.Logger) *Report {
	return &Report{
		generator: generator,
		repo:      repo,
		cache:     cache,
		logger:    logger,
	}
}

// Generate runs the full pipeline over a server-local audio file.
func (h *Report) Generate(c echo.Context) error {
	var req reportdto.GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	language := req.Language
	if language == "" {
		language = "auto"
	}

	ctx := c.Request().Context()
	report, err := h.generator.GenerateReport(ctx, req.AudioPath, req.Title, language, req.Participants)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.repo != nil {
		if err := h.repo.Create(ctx, report); err != nil {
			return HandleError(h.logger, c, apperrors.ErrReportPersistenceFailed(err))
		}
	}
	if h.cache != nil {
		if err := h.cache.CacheReport(ctx, report); err != nil && h.logger != nil {
			h.logger.Warn("⚠️ Failed to cache report",
				zap.String("report_id", report.ID.String()),
				zap.Error(err),
			)
		}
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, report)
}

// Get returns one report by id, trying the cache before the database.
func (h *Report) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid report id"))
	}

	ctx := c.Request().Context()

	if h.cache != nil {
		if cached, err := h.cache.GetReport(ctx, id.String()); err == nil && cached != nil {
			return HandleSuccess(h.logger, c, http.StatusOK, cached)
		}
	}

	if h.repo == nil {
		return HandleError(h.logger, c, apperrors.ErrReportNotFound(id.String()))
	}

	report, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find report", err))
	}
	if report == nil {
		return HandleError(h.logger, c, apperrors.ErrReportNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, report)
}

// List returns condensed report summaries, newest first.
func (h *Report) List(c echo.Context) error {
	var req reportdto.ListReportsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	if h.repo == nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("report persistence is disabled"))
	}

	reports, err := h.repo.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list reports", err))
	}

	summaries := make([]reportdto.SummaryResponse, 0, len(reports))
	for i := range reports {
		summaries = append(summaries, reportdto.NewSummaryResponse(&reports[i]))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, summaries)
}
