package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/insightloop/insightloop/internal/domain/entities"
)

// ReportRepository persists generated meeting reports.
type ReportRepository interface {
	Create(ctx context.Context, report *entities.MeetingReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingReport, error)
	List(ctx context.Context, limit, offset int) ([]entities.MeetingReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
