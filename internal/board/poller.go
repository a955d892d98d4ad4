package board

import (
	"context"
	"time"
)

// Poller re-lists notes on a fixed interval using whatever filter is active
// when each tick fires.
type Poller struct {
	ctrl     *Controller
	interval time.Duration
}

// NewPoller creates a Poller for ctrl.
func NewPoller(ctrl *Controller, interval time.Duration) *Poller {
	return &Poller{ctrl: ctrl, interval: interval}
}

// Run blocks until ctx is cancelled. A slow listing does not delay the next
// tick: every refresh runs on its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.ctrl.ListNotes(ctx)
		}
	}
}
