package live

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrConnClosed is returned by Send after the connection was closed.
	ErrConnClosed = errors.New("live: connection closed")

	// ErrSlowConsumer is returned by Send when the connection's buffer is full.
	ErrSlowConsumer = errors.New("live: connection buffer full")
)

// Conn is one open streaming connection. Send must not block.
type Conn interface {
	ID() string
	Send(frame []byte) error
	Close()
}

// SSEConn is a Conn backed by a bounded frame buffer. The goroutine serving
// the HTTP response drains it with Stream; every other goroutine only calls
// Send, so the ResponseWriter is never written concurrently.
type SSEConn struct {
	id     string
	frames chan []byte
	done   chan struct{}
	once   sync.Once
}

// NewSSEConn creates a connection that buffers up to buffer frames.
func NewSSEConn(buffer int) *SSEConn {
	return &SSEConn{
		id:     uuid.NewString(),
		frames: make(chan []byte, max(buffer, 1)),
		done:   make(chan struct{}),
	}
}

func (c *SSEConn) ID() string { return c.id }

// Send enqueues frame without blocking.
func (c *SSEConn) Send(frame []byte) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.frames <- frame:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSlowConsumer
	}
}

// Close is idempotent. Frames still buffered are discarded.
func (c *SSEConn) Close() {
	c.once.Do(func() { close(c.done) })
}

// Done is closed once the connection has been closed.
func (c *SSEConn) Done() <-chan struct{} { return c.done }

// Stream writes buffered frames to w, calling flush after each, until ctx is
// cancelled, the connection is closed, or a write fails.
func (c *SSEConn) Stream(ctx context.Context, w io.Writer, flush func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrConnClosed
		case frame := <-c.frames:
			if _, err := w.Write(frame); err != nil {
				return err
			}
			flush()
		}
	}
}
