package supervisor

import (
	"context"
	"time"
)

// Periodic runs fn every interval until its context is cancelled.
type Periodic struct {
	name     string
	interval time.Duration
	fn       func()
}

func NewPeriodic(name string, interval time.Duration, fn func()) *Periodic {
	return &Periodic{name: name, interval: interval, fn: fn}
}

// Serve implements suture.Service.
func (p *Periodic) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() == nil {
				p.fn()
			}
		}
	}
}

func (p *Periodic) String() string {
	return p.name
}
