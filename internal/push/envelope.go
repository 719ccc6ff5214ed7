package push

import "encoding/json"

// Server-push message types on the live-updates socket.
const (
	MsgQuota  = "quota"
	MsgUser   = "user"
	MsgLogout = "logout"
)

// Envelope is the wire wrapper for live-updates messages. The client
// only ever decodes; MustEnvelope exists for tests standing in as the
// server.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MustEnvelope wraps a payload, panicking on marshal failure.
func MustEnvelope(typ string, payload any) Envelope {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return Envelope{Type: typ, Payload: data}
}
