package usecases_port

import "context"

type SyncPendingUseCase interface {
	Execute(ctx context.Context) error
}
