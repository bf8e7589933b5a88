package domain

import "time"

// Credentials authenticate one owner against the partner APIs. Username and
// Password are used for basic auth on the programs API, BusinessToken as a
// bearer token on the business API.
type Credentials struct {
	Username      string
	Password      string
	BusinessToken string
}

// PageRequest addresses one page of the remote program collection.
type PageRequest struct {
	Offset int
	Limit  int
	Status string
}

// Page is one page of programs plus the upstream-reported total.
type Page struct {
	Programs []Program
	Total    int
	// Skipped holds the ids of records dropped as malformed. An empty
	// string stands for a record whose id could not be read.
	Skipped []string
}

// ChangeSet is the persistence input of one sync run.
type ChangeSet struct {
	Insert []Program
	Update []Program
	Delete []string
}

// ApplyCounts reports the rows touched by a ChangeSet.
type ApplyCounts struct {
	Inserted int64
	Updated  int64
	Deleted  int64
}

// SyncTimings is the per-phase wall clock of a run, in milliseconds.
type SyncTimings struct {
	FetchMS   int64 `json:"fetch_ms"`
	DiffMS    int64 `json:"diff_ms"`
	PersistMS int64 `json:"persist_ms"`
	LinkMS    int64 `json:"link_ms"`
	TotalMS   int64 `json:"total_ms"`
}

// SyncReport summarises a finished run.
type SyncReport struct {
	RunID   string `json:"run_id"`
	Owner   string `json:"owner"`
	Total   int    `json:"total"`
	Added   int64  `json:"added"`
	Updated int64  `json:"updated"`
	Deleted int64  `json:"deleted"`

	// DeletesDeferred counts local-only programs kept because some pages
	// could not be fetched.
	DeletesDeferred int `json:"deletes_deferred"`
	PagesFailed     int `json:"pages_failed"`
	// ProgramsSkipped counts remote records dropped as malformed. They are
	// never deleted locally.
	ProgramsSkipped int `json:"programs_skipped"`

	BusinessesCached  int   `json:"businesses_cached"`
	BusinessesFetched int   `json:"businesses_fetched"`
	BusinessesFailed  int   `json:"businesses_failed"`
	ProgramsLinked    int64 `json:"programs_linked"`

	Timings    SyncTimings `json:"timings"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

// BusinessSyncStats aggregates the outcome of a business resolution pass.
type BusinessSyncStats struct {
	Cached   int // served by the cache or the store
	Fetched  int // fetched successfully
	NotFound int // permanent misses (HTTP 404)
	Failed   int // transient misses
}
