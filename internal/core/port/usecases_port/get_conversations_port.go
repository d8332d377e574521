package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type GetConversationsUseCase interface {
	Execute(ctx context.Context) (*domain.ConversationFeed, error)
}
