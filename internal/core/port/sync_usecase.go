package port

import (
	"context"

	"adsync/internal/core/domain"
)

// EmitFunc receives the progress events of a run in order. It is never
// called concurrently.
type EmitFunc func(domain.SyncEvent)

// SyncUseCase reconciles the partner's programs of one owner into the store.
type SyncUseCase interface {
	// Sync runs fetch, diff, apply and link for req.Owner. Input errors
	// (*domain.ValidationError) and domain.ErrSyncInProgress are returned
	// before any event is emitted. Any later failure emits a terminal error
	// event and is returned.
	Sync(ctx context.Context, req SyncRequest, emit EmitFunc) (*domain.SyncReport, error)
}

// SyncRequest starts a run for Owner. Status optionally narrows the remote
// collection to one upstream program status.
type SyncRequest struct {
	Owner  string `validate:"required,max=150"`
	Status string `validate:"omitempty,oneof=ALL CURRENT PAST FUTURE PAUSED INACTIVE"`
}
