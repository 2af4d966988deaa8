package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/internal/domain/repositories"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository backed by GORM
func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a new report
func (r *reportRepository) Create(ctx context.Context, report *entities.MeetingReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// FindByID retrieves a report by its ID. Returns nil when the report does
// not exist.
func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingReport, error) {
	var report entities.MeetingReport
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&report).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List retrieves reports ordered by creation time, newest first
func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]entities.MeetingReport, error) {
	var reports []entities.MeetingReport
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Delete removes a report
func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingReport{}, "id = ?", id).Error
}
