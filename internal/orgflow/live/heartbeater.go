package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Heartbeater periodically sends a heartbeat frame to every live connection,
// dropping the ones that can no longer accept frames.
type Heartbeater struct {
	Dispatcher *Dispatcher
	Logger     *slog.Logger
	Interval   time.Duration

	stopCh    chan struct{}
	doneCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

func NewHeartbeater(d *Dispatcher, logger *slog.Logger, interval time.Duration) *Heartbeater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Heartbeater{
		Dispatcher: d,
		Logger:     logger,
		Interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background loop. Calls after the first are no-ops.
func (h *Heartbeater) Start(ctx context.Context) {
	h.startOnce.Do(func() {
		h.started.Store(true)
		go h.run(ctx)
		h.Logger.Info("heartbeater started", slog.Duration("interval", h.Interval))
	})
}

// Stop signals the loop to exit and waits for it. It returns at once when
// the loop was never started.
func (h *Heartbeater) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
	if !h.started.Load() {
		return
	}
	<-h.doneCh
	h.Logger.Info("heartbeater stopped")
}

func (h *Heartbeater) run(ctx context.Context) {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stopCh:
			return
		case now := <-ticker.C:
			h.Beat(now)
		}
	}
}

// Beat sends one heartbeat to every registered connection.
func (h *Heartbeater) Beat(now time.Time) Result {
	frame := HeartbeatFrame(now)

	var total Result
	for userID, conns := range h.Dispatcher.Registry.Snapshot() {
		res := h.Dispatcher.fanOut(h.Logger, userID, conns, frame, HeartbeatType)
		total.Delivered += res.Delivered
		total.Failed += res.Failed
	}

	if total.Failed > 0 {
		h.Logger.Info("heartbeat dropped dead connections", slog.Int("dropped", total.Failed))
	}
	return total
}
