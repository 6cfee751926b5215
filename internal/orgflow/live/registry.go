// Package live delivers persisted notifications to open streaming
// connections. A Registry tracks the connections of each user, a Dispatcher
// fans one notification out to them, and a Heartbeater keeps idle streams
// observable.
package live

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
)

// ErrRegistryClosed is returned by Register after Close.
var ErrRegistryClosed = errors.New("live: registry closed")

// Registry maps a user ID to that user's open connections. It is created once
// at process start and is safe for concurrent use.
type Registry struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	mu     sync.RWMutex
	conns  map[string]map[string]Conn // userID -> connID -> conn
	closed bool
	now    func() time.Time
}

func NewRegistry(logger *slog.Logger, m *metrics.Metrics) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		Logger:  logger,
		Metrics: m,
		conns:   make(map[string]map[string]Conn),
		now:     time.Now,
	}
}

// Register adds c to the user's set. The heartbeat is queued before c becomes
// visible to dispatchers, so it is always the first frame on the stream. If it
// cannot be queued c is closed and the send error is returned.
func (r *Registry) Register(userID string, c Conn) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}

	// Send never blocks, so it is safe under the lock.
	if err := c.Send(HeartbeatFrame(r.now())); err != nil {
		r.mu.Unlock()
		c.Close()
		return err
	}

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]Conn)
		r.conns[userID] = set
	}
	set[c.ID()] = c
	r.mu.Unlock()

	r.Metrics.ConnectionOpened()
	r.Logger.Debug("live connection registered", "user_id", userID, "conn_id", c.ID())
	return nil
}

// Unregister removes c from the user's set and closes it. The user's entry is
// deleted once it has no connections left. It reports whether c was present,
// so concurrent callers unregister a connection exactly once.
func (r *Registry) Unregister(userID string, c Conn) bool {
	r.mu.Lock()
	set, ok := r.conns[userID]
	if ok {
		_, ok = set[c.ID()]
		delete(set, c.ID())
		if len(set) == 0 {
			delete(r.conns, userID)
		}
	}
	r.mu.Unlock()

	c.Close()
	if ok {
		r.Metrics.ConnectionClosed()
		r.Logger.Debug("live connection unregistered", "user_id", userID, "conn_id", c.ID())
	}
	return ok
}

// ConnectionsFor returns a snapshot of the user's connections, or nil.
func (r *Registry) ConnectionsFor(userID string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]Conn, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

// Snapshot returns every registered connection grouped by user.
func (r *Registry) Snapshot() map[string][]Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]Conn, len(r.conns))
	for userID, set := range r.conns {
		conns := make([]Conn, 0, len(set))
		for _, c := range set {
			conns = append(conns, c)
		}
		out[userID] = conns
	}
	return out
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, set := range r.conns {
		n += len(set)
	}
	return n
}

// Close closes every connection and rejects further registrations.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]map[string]Conn)
	r.closed = true
	r.mu.Unlock()

	for _, set := range conns {
		for _, c := range set {
			c.Close()
			r.Metrics.ConnectionClosed()
		}
	}
}
