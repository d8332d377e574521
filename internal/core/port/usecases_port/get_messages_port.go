package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type GetMessagesUseCase interface {
	Execute(ctx context.Context, conversationID string) (*domain.MessageHistory, error)
}
