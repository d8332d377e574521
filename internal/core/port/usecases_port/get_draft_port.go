package usecases_port

import "context"

type GetDraftUseCase interface {
	// Execute returns the draft payload and the source it came from
	// ("store" or "sample").
	Execute(ctx context.Context, userID, draftID string) ([]byte, string, error)
}
