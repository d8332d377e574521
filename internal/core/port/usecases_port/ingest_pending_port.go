package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type IngestPendingUseCase interface {
	Execute(ctx context.Context, recipientID string, msg domain.PendingMessage) error
}
