package usecases_port

import "context"

type IgnorePendingUseCase interface {
	Execute(ctx context.Context, userID, messageID string) error
}
