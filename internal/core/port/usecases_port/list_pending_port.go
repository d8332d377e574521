package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type ListPendingUseCase interface {
	Execute(ctx context.Context, userID string) ([]domain.PendingMessage, error)
}
