package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type GetHomeFeedUseCase interface {
	Execute(ctx context.Context) ([]domain.Listing, error)
}
