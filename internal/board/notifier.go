package board

import (
	"sync"
	"time"
)

// Notifier shows notices on a View and hides them after a fixed interval.
// A new notice restarts the interval; the hide scheduled for the previous
// one is cancelled.
type Notifier struct {
	view  View
	after time.Duration
	now   func() time.Time

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewNotifier creates a Notifier that hides notices after the given interval.
func NewNotifier(view View, after time.Duration) *Notifier {
	return &Notifier{view: view, after: after, now: time.Now}
}

// Notify displays message with the given severity.
func (n *Notifier) Notify(message string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq

	n.view.ShowNotice(Notice{Message: message, Severity: severity, ShownAt: n.now()})
	n.timer = time.AfterFunc(n.after, func() { n.hide(seq) })
}

// hide clears the notice unless a newer one replaced it after the timer fired.
func (n *Notifier) hide(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if seq != n.seq {
		return
	}
	n.timer = nil
	n.view.HideNotice()
}

// Interval returns how long a notice stays visible.
func (n *Notifier) Interval() time.Duration { return n.after }

// Stop cancels a pending hide.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
