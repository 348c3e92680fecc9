// Package protocol defines the wire envelope and the message dispatch
// table, modeled on device/uapi.go's style of parsing a small structured
// inbound message and switching on a key to decide the action, adapted
// from UAPI's line-oriented key=value protocol to JSON envelopes carried
// over a WebSocket text frame.
package protocol

import (
	"encoding/json"
	"errors"
)

// Inbound frame types (client -> server).
const (
	TypeIntroduce  = "introduce"
	TypeDisconnect = "disconnect"
	TypePong       = "pong"
)

// Outbound frame types (server -> client).
const (
	TypeDisplayName = "display-name"
	TypePeers       = "peers"
	TypePeerJoined  = "peer-joined"
	TypePeerLeft    = "peer-left"
	TypePeerUpdated = "peer-updated"
	TypePing        = "ping"
)

// Envelope is the generic shape every inbound frame is parsed into. Raw
// preserves the full original object so relay forwarding can strip `to`
// and stamp `sender` without losing payload fields (sdp, ice candidates,
// file-transfer control messages, all opaque to this server).
type Envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to,omitempty"`
	Name *IntroduceName  `json:"name,omitempty"`
	Raw  json.RawMessage `json:"-"`
}

// IntroduceName carries the one field the router reads out of an
// "introduce" message's nested name object.
type IntroduceName struct {
	DeviceType string `json:"deviceType,omitempty"`
}

// ParseEnvelope parses a raw inbound frame. A parse failure (malformed
// JSON, or valid JSON with no `type` field) is reported so the caller can
// drop the frame silently; the connection stays open.
func ParseEnvelope(data []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A field of an unexpected JSON type (e.g. a string `name` on a
		// relayed frame) is not a parse failure; the fields that did
		// decode are kept.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return Envelope{}, false
		}
	}
	if env.Type == "" {
		return Envelope{}, false
	}
	env.Raw = data
	return env, true
}

// relayMap is the generic JSON object shape used to strip `to` and set
// `sender` before forwarding, since the server never interprets the rest of
// the relayed payload.
type relayMap map[string]json.RawMessage

// RelayPayload decodes env.Raw into a map, deletes `to`, sets `sender` to
// senderID, and returns the re-encoded bytes ready to forward verbatim to
// the recipient. The rest of the payload (sdp, ice candidates, transfer
// control fields) passes through untouched and uninterpreted.
func RelayPayload(env Envelope, senderID string) ([]byte, error) {
	var m relayMap
	if err := json.Unmarshal(env.Raw, &m); err != nil {
		return nil, err
	}
	delete(m, "to")
	senderJSON, err := json.Marshal(senderID)
	if err != nil {
		return nil, err
	}
	m["sender"] = senderJSON
	return json.Marshal(m)
}

// HasTo reports whether the raw frame actually carried a `to` field, even
// an empty one, distinguishing "to":"" (still a relay attempt, absent recipient)
// from no `to` field at all (not a relay, falls to "anything else:
// silently ignored").
func HasTo(env Envelope) bool {
	if env.Raw == nil {
		return env.To != ""
	}
	var probe struct {
		To *string `json:"to"`
	}
	if err := json.Unmarshal(env.Raw, &probe); err != nil {
		return env.To != ""
	}
	return probe.To != nil
}
