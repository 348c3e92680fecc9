// Package lifecycle orchestrates a Peer's full journey from upgrade to
// teardown, tying together identity, the room registry, the keepalive
// supervisor, and the message router. It is modeled on device/peer.go's
// Peer.Start/Peer.Stop discipline, generalized from WireGuard's three
// packet-processing routines to one read loop plus one keepalive goroutine
// per connection.
package lifecycle

import (
	"github.com/gorilla/websocket"

	"github.com/drpl-co/drpl-signal/internal/identity"
	"github.com/drpl-co/drpl-signal/internal/keepalive"
	"github.com/drpl-co/drpl-signal/internal/logging"
	"github.com/drpl-co/drpl-signal/internal/peer"
	"github.com/drpl-co/drpl-signal/internal/protocol"
	"github.com/drpl-co/drpl-signal/internal/registry"
)

// Manager runs the connection lifecycle for every peer in the process.
type Manager struct {
	reg    *registry.Registry
	log    logging.Logger
	router *protocol.Router
}

// NewManager builds a Manager backed by reg. The Router it owns shares the
// same teardown entrypoint as the keepalive supervisor and the read loop,
// so all three triggers converge on one idempotent teardown.
func NewManager(reg *registry.Registry, log logging.Logger) *Manager {
	m := &Manager{reg: reg, log: log}
	m.router = protocol.NewRouter(reg, log, m.Teardown)
	return m
}

// Connect runs the full join sequence for a freshly upgraded connection,
// then blocks reading frames until the socket closes or errors, at which
// point it tears the peer down. Callers run one Connect per accepted
// connection (typically in the HTTP handler's goroutine, which is already
// per-connection).
func (m *Manager) Connect(conn *websocket.Conn, id, roomKey string, descriptor peer.Descriptor) {
	descriptor.DisplayName = identity.Disambiguate(identity.DisplayName(id), m.reg.Names(roomKey))

	p := peer.New(id, roomKey, conn, descriptor)

	// display-name goes out before p is registered, so nothing else may
	// reach p ahead of it; then peers, then peer-joined to the rest of the
	// room.
	if err := p.Send(protocol.NewDisplayNameFrame(p)); err != nil {
		m.log.Errorf("display-name send to %s failed: %v", p.ID, err)
	}

	evicted, others := m.reg.Join(p)
	if evicted != nil {
		// A live connection already held this identity in this room, a
		// fast reconnect race. Stop its keepalive and close its transport
		// now rather than waiting for its own read loop to notice; its
		// teardown is idempotent and a no-op Leave once this Join has
		// already replaced it in the registry.
		evicted.StopKeepalive()
		evicted.Close()
	}

	if err := p.Send(protocol.NewPeersFrame(others)); err != nil {
		m.log.Errorf("peers snapshot send to %s failed: %v", p.ID, err)
	}
	protocol.Broadcast(others, protocol.NewPeerJoinedFrame(p), m.log)

	go keepalive.Supervise(p, m.log, m.Teardown)

	m.readLoop(p)
	m.Teardown(p)
}

// readLoop reads frames until the socket errors or closes, dispatching
// each to the router. It never closes the connection itself; Teardown
// owns that, so every exit path (read error, explicit disconnect,
// keepalive timeout) converges on the same close.
func (m *Manager) readLoop(p *peer.Peer) {
	for {
		_, data, err := p.Conn.ReadMessage()
		if err != nil {
			return
		}
		m.router.Handle(p, data)
	}
}

// Teardown runs the full destruction sequence for p exactly once: cancel
// the keepalive timer, remove from the room, broadcast peer-left to
// whoever remains, close the transport. It is shared by all three teardown
// triggers so a peer is destroyed exactly once regardless of which one
// wins the race.
func (m *Manager) Teardown(p *peer.Peer) {
	p.Teardown(func() {
		p.StopKeepalive()

		remaining, wasPresent := m.reg.Leave(p)
		if wasPresent && len(remaining) > 0 {
			protocol.Broadcast(remaining, protocol.NewPeerLeftFrame(p.ID), m.log)
		}

		if err := p.Close(); err != nil {
			m.log.Debugf("close for %s: %v", p.ID, err)
		}
	})
}
