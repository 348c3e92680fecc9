package protocol

import (
	"github.com/drpl-co/drpl-signal/internal/logging"
	"github.com/drpl-co/drpl-signal/internal/peer"
	"github.com/drpl-co/drpl-signal/internal/registry"
)

// Router dispatches inbound frames by their `type` field. It never
// interprets payload beyond `type`, `to`, and `name.deviceType`.
type Router struct {
	reg      *registry.Registry
	log      logging.Logger
	teardown func(*peer.Peer)
}

// NewRouter builds a Router. teardown is invoked to run full connection
// teardown for the sender when a "disconnect" frame arrives. It is owned
// by the lifecycle package, not protocol, to avoid a dependency cycle:
// lifecycle already depends on protocol to emit join/leave frames.
func NewRouter(reg *registry.Registry, log logging.Logger, teardown func(*peer.Peer)) *Router {
	return &Router{reg: reg, log: log, teardown: teardown}
}

// Broadcast sends v to every peer in the slice, tolerating send failures
// to individual peers without aborting the fan-out. The slice is expected
// to be a Registry snapshot taken outside of this call so the registry
// lock is never held across sends.
func Broadcast(peers []*peer.Peer, v interface{}, log logging.Logger) {
	for _, p := range peers {
		if err := p.Send(v); err != nil {
			log.Errorf("send to %s failed: %v", p.ID, err)
		}
	}
}

// Handle parses and dispatches one inbound frame from sender. A parse
// failure or unrecognized shape is dropped silently; the connection stays
// open.
func (r *Router) Handle(sender *peer.Peer, raw []byte) {
	env, ok := ParseEnvelope(raw)
	if !ok {
		return
	}

	switch env.Type {
	case TypeIntroduce:
		r.handleIntroduce(sender, env)
	case TypeDisconnect:
		r.teardown(sender)
	case TypePong:
		sender.Touch()
	default:
		if HasTo(env) {
			r.handleRelay(sender, env)
			return
		}
		// anything else: silently ignored.
	}
}

func (r *Router) handleIntroduce(sender *peer.Peer, env Envelope) {
	if env.Name != nil && env.Name.DeviceType != "" {
		sender.SetDeviceType(env.Name.DeviceType)
	}

	others := r.reg.Snapshot(sender.RoomKey, sender.ID)
	Broadcast(others, NewPeerUpdatedFrame(sender), r.log)

	if err := sender.Send(NewPeersFrame(others)); err != nil {
		r.log.Errorf("peers snapshot to %s failed: %v", sender.ID, err)
	}
}

// handleRelay forwards an opaque envelope to a peer in the sender's room
// only. The recipient is looked up within that room exclusively, never
// cross-room, and the server overwrites `sender`, never trusting a
// client-forged value.
func (r *Router) handleRelay(sender *peer.Peer, env Envelope) {
	target, ok := r.reg.Lookup(sender.RoomKey, env.To)
	if !ok {
		return // relay target absent: drop silently
	}

	payload, err := RelayPayload(env, sender.ID)
	if err != nil {
		r.log.Errorf("relay re-encode from %s failed: %v", sender.ID, err)
		return
	}

	if err := target.SendRaw(payload); err != nil {
		r.log.Errorf("relay send from %s to %s failed: %v", sender.ID, target.ID, err)
	}
}
