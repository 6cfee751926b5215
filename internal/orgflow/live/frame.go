package live

import (
	"bytes"
	"encoding/json"
	"time"
)

// HeartbeatType is the "type" of the heartbeat payload.
const HeartbeatType = "heartbeat"

// Heartbeat is sent on registration and periodically afterwards so a client
// can tell a live stream from a hung one.
type Heartbeat struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// EncodeFrame serializes v as one text/event-stream message: "data: <json>\n\n".
func EncodeFrame(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(payload) + 8)
	buf.WriteString("data: ")
	buf.Write(payload)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}

// HeartbeatFrame returns the encoded heartbeat for now.
func HeartbeatFrame(now time.Time) []byte {
	// A struct of a string and a time cannot fail to marshal.
	frame, _ := EncodeFrame(Heartbeat{Type: HeartbeatType, Timestamp: now.UTC()})
	return frame
}
