package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type SendMessageUseCase interface {
	Execute(ctx context.Context, conversationID, content string) (*domain.SendReceipt, error)
}
