package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type FindListingsUseCase interface {
	Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.SearchResult, error)
}
