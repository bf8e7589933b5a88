package domain

import "time"

// LifecycleActive is the upstream program_status of a running program.
const LifecycleActive = "ACTIVE"

// BidStrategy tells whether the partner bids automatically or up to a
// manual ceiling.
type BidStrategy string

const (
	BidAutomatic BidStrategy = "AUTOMATIC"
	BidManual    BidStrategy = "MANUAL"
)

// Program represents an advertising program mirrored from the partner API
// for a single owner. (Owner, ProgramID) is the natural key.
// Money fields are stored in integer minor units (cents).
type Program struct {
	Owner       string
	ProgramID   string
	ProgramType string
	Lifecycle   string // upstream program_status, e.g. ACTIVE
	Paused      bool

	// BusinessRef is the partner id of the first business linked to the
	// program, empty when the program carries none.
	BusinessRef string

	StartDate *time.Time
	EndDate   *time.Time // nil means open ended

	Budget      *Money
	Currency    string
	BidStrategy BidStrategy
	MaxBid      *Money // always nil for automatic bidding

	Impressions int64
	Clicks      int64
	Cost        Money

	ActiveFeatures    []string
	AvailableFeatures []string

	// Metadata is the raw upstream representation of linked sub-entities.
	Metadata []byte

	// Fields below are populated when reading from the store.
	Status       ProgramStatus
	BusinessName *string
	SyncedAt     time.Time
}

// DerivedStatus returns the dashboard status of p as of today.
func (p *Program) DerivedStatus(today time.Time) ProgramStatus {
	return DeriveStatus(p.Paused, p.Lifecycle, p.StartDate, p.EndDate, today)
}

// ProgramFilter narrows a program listing for one owner. Status is matched
// against the status derived as of Today.
type ProgramFilter struct {
	Owner       string
	Today       time.Time
	Status      ProgramStatus
	ProgramType string
	BusinessRef string
	Search      string
	StartFrom   *time.Time
	EndTo       *time.Time
	MinBudget   *Money
	MaxBudget   *Money
	Limit       int
	Offset      int
}
