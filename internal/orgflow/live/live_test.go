package live

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/stretchr/testify/require"
)

// recordingConn captures frames and can be told to fail.
type recordingConn struct {
	id   string
	fail error

	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func newRecordingConn(id string) *recordingConn { return &recordingConn{id: id} }

func (c *recordingConn) ID() string { return c.id }

func (c *recordingConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	if c.closed {
		return ErrConnClosed
	}
	c.frames = append(c.frames, frame)
	return nil
}

func (c *recordingConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordingConn) Frames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.frames...)
}

func (c *recordingConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func decodeFrame(t *testing.T, frame []byte) map[string]any {
	t.Helper()

	s := string(frame)
	require.True(t, strings.HasPrefix(s, "data: "), "frame must start with data:")
	require.True(t, strings.HasSuffix(s, "\n\n"), "frame must end with a blank line")

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(s, "data: "), "\n\n")), &out))
	return out
}

func TestEncodeFrame(t *testing.T) {
	t.Parallel()

	frame, err := EncodeFrame(map[string]string{"hello": "world"})
	require.NoError(t, err)
	require.Equal(t, "data: {\"hello\":\"world\"}\n\n", string(frame))

	hb := decodeFrame(t, HeartbeatFrame(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "heartbeat", hb["type"])
	require.Equal(t, "2030-01-01T00:00:00Z", hb["timestamp"])
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("register sends a heartbeat", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		c := newRecordingConn("c1")

		require.NoError(t, reg.Register("u1", c))
		require.Len(t, c.Frames(), 1)
		require.Equal(t, "heartbeat", decodeFrame(t, c.Frames()[0])["type"])
		require.Len(t, reg.ConnectionsFor("u1"), 1)
	})

	t.Run("failed heartbeat never registers", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		c := newRecordingConn("c1")
		c.fail = ErrSlowConsumer

		require.ErrorIs(t, reg.Register("u1", c), ErrSlowConsumer)
		require.Empty(t, reg.ConnectionsFor("u1"))
		require.Zero(t, reg.Count())
		require.True(t, c.IsClosed())
	})

	t.Run("multiple connections per user", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		a, b := newRecordingConn("a"), newRecordingConn("b")
		require.NoError(t, reg.Register("u1", a))
		require.NoError(t, reg.Register("u1", b))
		require.Len(t, reg.ConnectionsFor("u1"), 2)

		require.True(t, reg.Unregister("u1", a))
		require.False(t, reg.Unregister("u1", a), "second unregister is a no-op")
		require.True(t, a.IsClosed())
		require.Len(t, reg.ConnectionsFor("u1"), 1)
	})

	t.Run("empty sets are removed", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		c := newRecordingConn("c1")
		require.NoError(t, reg.Register("u1", c))
		reg.Unregister("u1", c)

		reg.mu.RLock()
		_, present := reg.conns["u1"]
		reg.mu.RUnlock()
		require.False(t, present)
	})

	t.Run("close closes everything and rejects registrations", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		a, b := newRecordingConn("a"), newRecordingConn("b")
		require.NoError(t, reg.Register("u1", a))
		require.NoError(t, reg.Register("u2", b))

		reg.Close()
		require.True(t, a.IsClosed())
		require.True(t, b.IsClosed())
		require.Zero(t, reg.Count())
		require.ErrorIs(t, reg.Register("u1", newRecordingConn("c")), ErrRegistryClosed)
	})
}

func TestRegistryConcurrency(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil, nil)
	d := NewDispatcher(reg, nil)

	const users, perUser = 8, 25
	var wg sync.WaitGroup
	for u := range users {
		userID := fmt.Sprintf("u%d", u)
		for i := range perUser {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c := newRecordingConn(fmt.Sprintf("%s-%d", userID, i))
				if err := reg.Register(userID, c); err != nil {
					t.Error(err)
					return
				}
				d.Dispatch(context.Background(), domain.Notification{ID: "n", UserID: userID})
				if i%2 == 0 {
					reg.Unregister(userID, c)
				}
			}()
		}
	}
	wg.Wait()

	for u := range users {
		require.Len(t, reg.ConnectionsFor(fmt.Sprintf("u%d", u)), perUser/2)
	}
}

func TestRegisterHeartbeatIsFirstFrame(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil, nil)
	d := NewDispatcher(reg, nil)

	stop := make(chan struct{})
	var dispatching sync.WaitGroup
	dispatching.Add(1)
	go func() {
		defer dispatching.Done()
		for {
			select {
			case <-stop:
				return
			default:
				d.Dispatch(context.Background(), domain.Notification{ID: "n", UserID: "u1"})
			}
		}
	}()

	conns := make([]*recordingConn, 200)
	for i := range conns {
		conns[i] = newRecordingConn(fmt.Sprintf("c%d", i))
		require.NoError(t, reg.Register("u1", conns[i]))
	}
	close(stop)
	dispatching.Wait()

	for _, c := range conns {
		frames := c.Frames()
		require.NotEmpty(t, frames)
		require.Equal(t, "heartbeat", decodeFrame(t, frames[0])["type"], "conn %s", c.ID())
	}
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	n := domain.Notification{
		ID: "n1", UserID: "u1", OrganizationID: "o1",
		Type: domain.NotificationTaskAssigned, Message: "You were assigned",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("no connections", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		res := NewDispatcher(reg, nil).Dispatch(context.Background(), n)
		require.Equal(t, Result{}, res)
		require.Zero(t, reg.Count())
	})

	t.Run("all connections receive the event", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		conns := []*recordingConn{newRecordingConn("a"), newRecordingConn("b"), newRecordingConn("c")}
		for _, c := range conns {
			require.NoError(t, reg.Register("u1", c))
		}
		other := newRecordingConn("other")
		require.NoError(t, reg.Register("u2", other))

		res := NewDispatcher(reg, nil).Dispatch(context.Background(), n)
		require.Equal(t, Result{Delivered: 3}, res)

		for _, c := range conns {
			frames := c.Frames()
			require.Len(t, frames, 2)
			got := decodeFrame(t, frames[1])
			require.Equal(t, "n1", got["id"])
			require.Equal(t, "TASK_ASSIGNED", got["type"])
		}
		require.Len(t, other.Frames(), 1, "other users only saw their heartbeat")
	})

	t.Run("a failing connection is dropped and siblings still receive", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		good1, bad, good2 := newRecordingConn("g1"), newRecordingConn("bad"), newRecordingConn("g2")
		for _, c := range []*recordingConn{good1, bad, good2} {
			require.NoError(t, reg.Register("u1", c))
		}
		bad.mu.Lock()
		bad.fail = errors.New("broken pipe")
		bad.mu.Unlock()

		res := NewDispatcher(reg, nil).Dispatch(context.Background(), n)
		require.Equal(t, Result{Delivered: 2, Failed: 1}, res)

		require.Len(t, good1.Frames(), 2)
		require.Len(t, good2.Frames(), 2)
		require.True(t, bad.IsClosed())

		ids := []string{}
		for _, c := range reg.ConnectionsFor("u1") {
			ids = append(ids, c.ID())
		}
		require.ElementsMatch(t, []string{"g1", "g2"}, ids)
	})
}

func TestHeartbeater(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil, nil)
	alive, dead := newRecordingConn("alive"), newRecordingConn("dead")
	require.NoError(t, reg.Register("u1", alive))
	require.NoError(t, reg.Register("u2", dead))
	dead.mu.Lock()
	dead.fail = ErrSlowConsumer
	dead.mu.Unlock()

	hb := NewHeartbeater(NewDispatcher(reg, nil), nil, time.Hour)
	res := hb.Beat(time.Now())
	require.Equal(t, Result{Delivered: 1, Failed: 1}, res)
	require.Len(t, alive.Frames(), 2)
	require.Empty(t, reg.ConnectionsFor("u2"))

	t.Run("start and stop", func(t *testing.T) {
		hb := NewHeartbeater(NewDispatcher(reg, nil), nil, 5*time.Millisecond)
		hb.Start(context.Background())
		require.Eventually(t, func() bool { return len(alive.Frames()) > 2 }, time.Second, 5*time.Millisecond)
		hb.Stop()
	})

	t.Run("stop without start returns", func(t *testing.T) {
		hb := NewHeartbeater(NewDispatcher(reg, nil), nil, time.Hour)

		done := make(chan struct{})
		go func() {
			hb.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Stop blocked on a heartbeater that never started")
		}
	})
}

func TestSSEConn(t *testing.T) {
	t.Parallel()

	t.Run("buffer overflow is a send failure", func(t *testing.T) {
		c := NewSSEConn(1)
		require.NoError(t, c.Send([]byte("a")))
		require.ErrorIs(t, c.Send([]byte("b")), ErrSlowConsumer)
	})

	t.Run("send after close fails", func(t *testing.T) {
		c := NewSSEConn(4)
		c.Close()
		c.Close()
		require.ErrorIs(t, c.Send([]byte("a")), ErrConnClosed)
	})

	t.Run("stream writes and flushes frames in order", func(t *testing.T) {
		c := NewSSEConn(4)
		require.NoError(t, c.Send([]byte("one\n\n")))
		require.NoError(t, c.Send([]byte("two\n\n")))

		var (
			mu      sync.Mutex
			buf     bytes.Buffer
			flushes int
		)
		w := writerFunc(func(p []byte) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return buf.Write(p)
		})

		done := make(chan error, 1)
		go func() {
			done <- c.Stream(context.Background(), w, func() {
				mu.Lock()
				flushes++
				mu.Unlock()
			})
		}()

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return flushes == 2
		}, time.Second, time.Millisecond)

		c.Close()
		require.ErrorIs(t, <-done, ErrConnClosed)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, "one\n\ntwo\n\n", buf.String())
	})

	t.Run("stream stops on context cancel", func(t *testing.T) {
		c := NewSSEConn(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, c.Stream(ctx, &bytes.Buffer{}, func() {}), context.Canceled)
	})
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
