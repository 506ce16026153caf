package contracts

import (
	"context"

	"roster-service/internal/app/models"
	"roster-service/internal/pkg/coverage"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/dto/responses"
)

type CoverageUsecase interface {
	Resolver(ctx context.Context) (*coverage.Resolver, error)
	FindAll(ctx context.Context) ([]responses.ShiftCoverage, error)
	FindByCode(ctx context.Context, code string) (*responses.ShiftCoverage, error)
	Upsert(ctx context.Context, code string, request *requests.UpsertShiftCoverage) (*responses.ShiftCoverage, error)
	Refresh(ctx context.Context) error
}

type CoverageRepository interface {
	FindAll(ctx context.Context) ([]models.ShiftCoverage, error)
	FindByCode(ctx context.Context, code string) (*models.ShiftCoverage, error)
	Upsert(ctx context.Context, shiftCoverage *models.ShiftCoverage) error
}
