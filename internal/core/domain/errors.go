package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrEmptyUpstream is returned when the partner reports zero programs.
	// It usually means an auth problem or an outage, never "nothing to sync".
	ErrEmptyUpstream = errors.New("partner API reported zero programs")

	// ErrSyncInProgress is returned when a run for the same owner is
	// already active.
	ErrSyncInProgress = errors.New("sync already in progress for owner")

	ErrProgramNotFound  = errors.New("program not found")
	ErrBusinessNotFound = errors.New("business not found")
)

// UpstreamError describes a failed call to a partner API. StatusCode is
// zero for transport failures.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the call may succeed.
func (e *UpstreamError) Temporary() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// Unauthorized reports whether the partner rejected the credentials.
func (e *UpstreamError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsPermanent reports whether err is an upstream error that retrying will
// not fix.
func IsPermanent(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && !upErr.Temporary()
}

// PersistenceError aborts the apply step of a run.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects caller input before any remote or store call.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}
