package domain

// EventType enumerates the progress events emitted by a sync run. Events
// arrive in the order start, info, progress..., then exactly one of
// complete or error.
type EventType string

const (
	EventStart    EventType = "start"
	EventInfo     EventType = "info"
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Phase names the pipeline stage a progress event belongs to.
type Phase string

const (
	PhaseFetch Phase = "fetch"
	PhaseLink  Phase = "link"
)

// SyncInfo is carried by the info event once the remote total is known.
type SyncInfo struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
	Local int `json:"local"`
}

// Progress is carried by progress events.
type Progress struct {
	Phase      Phase   `json:"phase"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// NewProgress computes the percentage for completed out of total.
func NewProgress(phase Phase, completed, total int) *Progress {
	p := &Progress{Phase: phase, Completed: completed, Total: total}
	if total > 0 {
		p.Percentage = float64(completed*10000/total) / 100
	}
	return p
}

// SyncEvent is one element of the progress stream of a run.
type SyncEvent struct {
	Type     EventType   `json:"type"`
	RunID    string      `json:"run_id"`
	Owner    string      `json:"owner"`
	Message  string      `json:"message,omitempty"`
	Info     *SyncInfo   `json:"info,omitempty"`
	Progress *Progress   `json:"progress,omitempty"`
	Report   *SyncReport `json:"report,omitempty"`
}

// Terminal reports whether no further events follow e.
func (e SyncEvent) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}
