package domain

import "time"

// ProgramStatus is the status shown on the dashboard. It is derived from the
// upstream lifecycle status, the pause flag and the program's date range.
type ProgramStatus string

const (
	StatusPaused   ProgramStatus = "PAUSED"
	StatusFuture   ProgramStatus = "FUTURE"
	StatusPast     ProgramStatus = "PAST"
	StatusCurrent  ProgramStatus = "CURRENT"
	StatusInactive ProgramStatus = "INACTIVE"
)

// OpenEndedDate is the partner's sentinel end date for programs that never
// expire.
var OpenEndedDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// IsOpenEnded reports whether end is the "far future" sentinel.
func IsOpenEnded(end time.Time) bool {
	return end.Year() >= OpenEndedDate.Year()
}

// DeriveStatus computes the dashboard status. Priority is
// PAUSED > FUTURE > PAST > CURRENT > INACTIVE. A nil or sentinel end date
// never expires. Only the calendar date of every argument is considered.
func DeriveStatus(paused bool, lifecycle string, start, end *time.Time, today time.Time) ProgramStatus {
	if paused {
		return StatusPaused
	}
	day := DateOf(today)
	if start != nil && DateOf(*start).After(day) {
		return StatusFuture
	}
	expires := end != nil && !IsOpenEnded(*end)
	if expires && DateOf(*end).Before(day) {
		return StatusPast
	}
	if lifecycle == LifecycleActive {
		return StatusCurrent
	}
	return StatusInactive
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseStatus validates s as a ProgramStatus.
func ParseStatus(s string) (ProgramStatus, bool) {
	switch st := ProgramStatus(s); st {
	case StatusPaused, StatusFuture, StatusPast, StatusCurrent, StatusInactive:
		return st, true
	}
	return "", false
}
