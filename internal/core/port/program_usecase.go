package port

import (
	"context"

	"adsync/internal/core/domain"
)

// ProgramUseCase serves the dashboard read side from the local store.
type ProgramUseCase interface {
	// ListPrograms validates q and returns one page of matching programs.
	ListPrograms(ctx context.Context, q ProgramQuery) (*ProgramPage, error)
	// GetProgram returns one program or domain.ErrProgramNotFound.
	GetProgram(ctx context.Context, owner, programID string) (*domain.Program, error)
}

// ProgramQuery carries raw listing parameters as received from a client.
// Dates are YYYY-MM-DD, budgets are decimal major units.
type ProgramQuery struct {
	Owner       string `validate:"required,max=150"`
	Status      string `validate:"omitempty,oneof=PAUSED FUTURE PAST CURRENT INACTIVE"`
	ProgramType string `validate:"omitempty,max=64"`
	BusinessID  string `validate:"omitempty,max=64"`
	Search      string `validate:"omitempty,max=100"`
	StartFrom   string `validate:"omitempty,date"`
	EndTo       string `validate:"omitempty,date"`
	MinBudget   string `validate:"omitempty,money"`
	MaxBudget   string `validate:"omitempty,money"`
	Limit       int    `validate:"min=0,max=200"`
	Offset      int    `validate:"min=0"`
}

// ProgramPage is one page of a program listing.
type ProgramPage struct {
	Items  []domain.Program
	Total  int
	Limit  int
	Offset int
}
