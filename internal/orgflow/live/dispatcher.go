package live

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// Result summarizes one fan-out.
type Result struct {
	Delivered int
	Failed    int
}

// Dispatcher pushes persisted notifications to the recipient's live
// connections. Delivery is best effort: a failing connection is dropped from
// the registry and never affects its siblings or the caller.
type Dispatcher struct {
	Registry *Registry
	Metrics  *metrics.Metrics
}

func NewDispatcher(reg *Registry, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{Registry: reg, Metrics: m}
}

// Dispatch sends n to every connection registered for n.UserID at call time.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) Result {
	log := slogx.FromContext(ctx).With(
		slog.String("notification_id", n.ID),
		slog.String("user_id", n.UserID),
	)

	conns := d.Registry.ConnectionsFor(n.UserID)
	if len(conns) == 0 {
		return Result{}
	}

	frame, err := EncodeFrame(n)
	if err != nil {
		log.Error("failed to encode notification frame", slog.Any("err", err))
		return Result{Failed: len(conns)}
	}

	return d.fanOut(log, n.UserID, conns, frame, "notification")
}

func (d *Dispatcher) fanOut(log *slog.Logger, userID string, conns []Conn, frame []byte, kind string) Result {
	var res Result
	for _, c := range conns {
		if err := c.Send(frame); err != nil {
			res.Failed++
			d.Metrics.FrameSent(kind, false)
			d.Registry.Unregister(userID, c)
			log.Warn("dropping live connection after failed send",
				slog.String("conn_id", c.ID()),
				slog.String("frame", kind),
				slog.Any("err", err),
			)
			continue
		}
		res.Delivered++
		d.Metrics.FrameSent(kind, true)
	}
	return res
}
