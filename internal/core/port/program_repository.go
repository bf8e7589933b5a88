package port

import (
	"context"
	"time"

	"adsync/internal/core/domain"
)

// ProgramRepository defines the persistence layer for mirrored programs. It
// is an outbound port in hexagonal architecture. Rows are scoped by owner and
// implementations must be safe for concurrent runs of different owners.
type ProgramRepository interface {
	// ListProgramIDs returns every program id stored for owner.
	ListProgramIDs(ctx context.Context, owner string) ([]string, error)
	// ApplyChanges inserts, updates and deletes programs of owner in a single
	// transaction. Inserting an existing id is a no-op, updating overwrites
	// and deleting an absent id is a no-op. Status is derived as of today.
	ApplyChanges(ctx context.Context, owner string, changes domain.ChangeSet, today time.Time) (domain.ApplyCounts, error)
	// LinkBusinesses sets the business foreign key of every program of owner
	// whose key is unset and whose business is stored. It returns the number
	// of programs linked.
	LinkBusinesses(ctx context.Context, owner string) (int64, error)

	// ListPrograms returns one page of programs matching filter and the
	// total number of matches.
	ListPrograms(ctx context.Context, filter domain.ProgramFilter) ([]domain.Program, int, error)
	// GetProgram returns a single program or domain.ErrProgramNotFound.
	GetProgram(ctx context.Context, owner, programID string) (*domain.Program, error)
}
