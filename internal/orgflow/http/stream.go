package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/live"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// StreamHandler serves the caller's live notification stream.
type StreamHandler struct {
	Registry *live.Registry
	Buffer   int
}

// ServeHTTP godoc
//
//	@Summary		Live notification stream
//	@Description	Opens a text/event-stream. A heartbeat frame is sent immediately and then periodically;
//	@Description	each notification created for the caller is sent as a data frame with the notification JSON.
//	@Description	Browsers that cannot set headers may pass the token as ?access_token=.
//	@Tags			Notifications
//	@Produce		text/event-stream
//	@Success		200	{object}	orgflowsdk.Notification	"stream of data frames"
//	@Failure		401	{object}	orgflowsdk.ErrorResponse
//	@Failure		503	{object}	orgflowsdk.ErrorResponse	"shutting down"
//	@Security		BearerAuth
//	@Router			/v1/notifications/stream [get].
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := callerID(r)

	rc := http.NewResponseController(w)

	// The server write timeout would otherwise cut the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")

	conn := live.NewSSEConn(h.Buffer)
	if err := h.Registry.Register(userID, conn); err != nil {
		if errors.Is(err, live.ErrRegistryClosed) {
			httpx.WriteError(w, http.StatusServiceUnavailable, orgflowsdk.CodeServerError, "Server is shutting down")
			return
		}
		log.Error("failed to register live connection", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, orgflowsdk.CodeServerError, "Internal server error")
		return
	}
	defer h.Registry.Unregister(userID, conn)

	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Error("response does not support streaming", "error", err)
		return
	}

	err := conn.Stream(ctx, w, func() { _ = rc.Flush() })
	switch {
	case err == nil, errors.Is(err, ctx.Err()):
		log.Debug("live stream closed by client", "conn_id", conn.ID())
	case errors.Is(err, live.ErrConnClosed):
		log.Debug("live stream closed by server", "conn_id", conn.ID())
	default:
		log.Debug("live stream write failed", "conn_id", conn.ID(), "error", err)
	}
}
