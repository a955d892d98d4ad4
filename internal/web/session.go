package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"notesboard/internal/board"
)

const sessionCookie = "board_session"

// ControllerFactory builds the controller for a new session's screen.
type ControllerFactory func(screen *Screen) *board.Controller

// Session is one open board: a controller and the screen it renders into.
type Session struct {
	ID     string
	Ctrl   *board.Controller
	Screen *Screen

	lastSeen time.Time
}

// Sessions maps browser cookies to boards and drops idle ones.
type Sessions struct {
	newCtrl        ControllerFactory
	ttl            time.Duration
	pollInterval   time.Duration
	notifyInterval time.Duration
	log            *slog.Logger
	now            func() time.Time

	mu    sync.Mutex
	items map[string]*Session
}

// NewSessions creates an empty registry.
func NewSessions(newCtrl ControllerFactory, ttl, pollInterval, notifyInterval time.Duration, log *slog.Logger) *Sessions {
	return &Sessions{
		newCtrl:        newCtrl,
		ttl:            ttl,
		pollInterval:   pollInterval,
		notifyInterval: notifyInterval,
		log:            log,
		now:            time.Now,
		items:          make(map[string]*Session),
	}
}

// Get returns the session named by the request cookie, starting a new one
// (and setting the cookie) when there is none or it has expired. Only the
// page load calls it; fragments use Lookup.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.lookup(r); ok {
		return sess
	}

	screen := NewScreen(s.pollInterval, s.notifyInterval)
	sess := &Session{
		ID:       uuid.NewString(),
		Ctrl:     s.newCtrl(screen),
		Screen:   screen,
		lastSeen: s.now(),
	}
	s.items[sess.ID] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debug("session started", "session", sess.ID)
	return sess
}

// Lookup returns the live session named by the request cookie without
// starting one.
func (s *Sessions) Lookup(r *http.Request) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(r)
}

func (s *Sessions) lookup(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	sess, ok := s.items[c.Value]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep closes sessions idle for longer than the TTL.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.items {
		if sess.lastSeen.Before(cutoff) {
			sess.Ctrl.Close()
			delete(s.items, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("sessions expired", "count", removed)
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
