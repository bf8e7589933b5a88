package usecase

import (
	"context"
	"time"

	"adsync/internal/core/domain"
	"adsync/internal/core/port"
	"adsync/internal/validation"
)

const defaultPageLimit = 20

// ProgramService serves program listings from the local store. It
// implements port.ProgramUseCase.
type ProgramService struct {
	repo port.ProgramRepository
	now  func() time.Time
}

// NewProgramService creates a ProgramService over repo.
func NewProgramService(repo port.ProgramRepository) *ProgramService {
	return &ProgramService{repo: repo, now: time.Now}
}

// ListPrograms validates q before touching the store. Statuses are derived
// as of today rather than taken from the last sync.
func (s *ProgramService) ListPrograms(ctx context.Context, q port.ProgramQuery) (*port.ProgramPage, error) {
	if err := validation.Struct(&q); err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	filter := domain.ProgramFilter{
		Owner:       q.Owner,
		Today:       today,
		Status:      domain.ProgramStatus(q.Status),
		ProgramType: q.ProgramType,
		BusinessRef: q.BusinessID,
		Search:      q.Search,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	// Formats were checked by the validator.
	if q.StartFrom != "" {
		d, _ := time.Parse(time.DateOnly, q.StartFrom)
		filter.StartFrom = &d
	}
	if q.EndTo != "" {
		d, _ := time.Parse(time.DateOnly, q.EndTo)
		filter.EndTo = &d
	}
	if q.MinBudget != "" {
		m, _ := domain.ParseMoney(q.MinBudget)
		filter.MinBudget = &m
	}
	if q.MaxBudget != "" {
		m, _ := domain.ParseMoney(q.MaxBudget)
		filter.MaxBudget = &m
	}

	items, total, err := s.repo.ListPrograms(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Status = items[i].DerivedStatus(today)
	}
	return &port.ProgramPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// GetProgram returns a single program of owner.
func (s *ProgramService) GetProgram(ctx context.Context, owner, programID string) (*domain.Program, error) {
	if owner == "" || programID == "" {
		return nil, domain.ErrProgramNotFound
	}
	p, err := s.repo.GetProgram(ctx, owner, programID)
	if err != nil {
		return nil, err
	}
	p.Status = p.DerivedStatus(s.now())
	return p, nil
}
