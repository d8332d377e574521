package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type AcceptPendingUseCase interface {
	Execute(ctx context.Context, userID, messageID string) (*domain.Conversation, error)
}
