package usecases_port

import "context"

type SaveDraftUseCase interface {
	Execute(ctx context.Context, userID, draftID string, payload []byte) error
}
