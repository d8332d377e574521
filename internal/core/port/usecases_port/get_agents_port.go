package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type GetAgentsUseCase interface {
	Execute(ctx context.Context) ([]domain.Agent, error)
}
