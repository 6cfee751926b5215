package orgflowsdk

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HeartbeatType is the "type" of a heartbeat frame.
const HeartbeatType = "heartbeat"

// Heartbeat is sent when a stream opens and periodically while it is idle.
type Heartbeat struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Event is one frame of the live stream. Exactly one field is set.
type Event struct {
	Heartbeat    *Heartbeat
	Notification *Notification
}

// Stream reads live notification frames. It is not safe for concurrent use.
type Stream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

// Stream opens the caller's live notification stream. The first event is
// always a heartbeat. Cancel ctx or call Close to disconnect.
func (s *Session) Stream(ctx context.Context) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.BaseURL+"/v1/notifications/stream", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Accept", "text/event-stream")

	// Streams are long lived; only the transport is shared.
	hc := &http.Client{Transport: s.client.HTTPClient.Transport}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp, body)
	}

	return NewStream(resp.Body), nil
}

// NewStream reads frames from an already open text/event-stream body.
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{body: body, reader: bufio.NewReader(body)}
}

// Next blocks until the next frame arrives. It returns io.EOF when the server
// closes the stream.
func (s *Stream) Next() (Event, error) {
	var data bytes.Buffer
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return Event{}, err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if data.Len() == 0 {
				continue
			}
			return decodeEvent(data.Bytes())
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// comments, ids and event names are not used
		}
	}
}

// Close disconnects the stream.
func (s *Stream) Close() error {
	return s.body.Close()
}

func decodeEvent(payload []byte) (Event, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return Event{}, fmt.Errorf("failed to decode frame: %w", err)
	}

	if probe.Type == HeartbeatType {
		var hb Heartbeat
		if err := json.Unmarshal(payload, &hb); err != nil {
			return Event{}, fmt.Errorf("failed to decode heartbeat: %w", err)
		}
		return Event{Heartbeat: &hb}, nil
	}

	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return Event{}, fmt.Errorf("failed to decode notification: %w", err)
	}
	return Event{Notification: &n}, nil
}
