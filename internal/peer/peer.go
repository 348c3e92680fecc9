// Package peer holds the per-connection state for one live client, modeled
// on device/peer.go's Peer type: an RWMutex protecting mutable fields and
// a stop channel governing a single owned goroutine (there, three
// packet-processing routines; here, one keepalive loop). Stop and teardown
// are each guarded by a sync.Once rather than an atomic running flag.
package peer

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/drpl-co/drpl-signal/internal/useragent"
)

// Descriptor is the advisory device record carried in every info record:
// {model, os, browser, type, deviceName, displayName}.
type Descriptor = useragent.Descriptor

// Info is the public tuple broadcast to other peers: {id, name, rtcSupported}.
type Info struct {
	ID           string     `json:"id"`
	Name         Descriptor `json:"name"`
	RTCSupported bool       `json:"rtcSupported"`
}

// Peer is one active client connection.
type Peer struct {
	ID      string
	RoomKey string
	Conn    *websocket.Conn

	mu         sync.RWMutex
	name       Descriptor
	lastBeat   time.Time
	stopBeat   chan struct{}
	beatOnce   sync.Once
	sendMu     sync.Mutex // serializes writes to Conn; gorilla requires a single writer
	rtcSupport bool
	teardown   sync.Once
}

// New constructs a Peer with its initial device descriptor and heartbeat
// timestamp set to now.
func New(id, roomKey string, conn *websocket.Conn, name Descriptor) *Peer {
	return &Peer{
		ID:         id,
		RoomKey:    roomKey,
		Conn:       conn,
		name:       name,
		lastBeat:   time.Now(),
		stopBeat:   make(chan struct{}),
		rtcSupport: true, // always true today; carried for forward compatibility
	}
}

// Touch records a heartbeat reply, updating lastHeartbeat.
func (p *Peer) Touch() {
	p.mu.Lock()
	p.lastBeat = time.Now()
	p.mu.Unlock()
}

// LastBeat reports the last-heartbeat timestamp.
func (p *Peer) LastBeat() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastBeat
}

// SetDeviceType updates the device descriptor's Type field, the only
// mutation the router performs on a Peer's name.
func (p *Peer) SetDeviceType(t string) {
	p.mu.Lock()
	p.name.Type = t
	p.mu.Unlock()
}

// Descriptor returns a copy of the current device descriptor.
func (p *Peer) Descriptor() Descriptor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// ToInfo renders the current public info record.
func (p *Peer) ToInfo() Info {
	return Info{
		ID:           p.ID,
		Name:         p.Descriptor(),
		RTCSupported: p.rtcSupport,
	}
}

// StopSignal returns the channel closed exactly once when the peer's
// keepalive loop should stop. Reading it is safe from any goroutine.
func (p *Peer) StopSignal() <-chan struct{} {
	return p.stopBeat
}

// StopKeepalive closes the stop channel idempotently, mirroring the
// routines.stop discipline in device/peer.go (Stop() closing
// peer.routines.stop exactly once, guarded there by the isRunning atomic
// swap; here by sync.Once since there can be two stoppers: this peer's
// own connection teardown, and a newer connection with the same identity
// evicting it on join).
func (p *Peer) StopKeepalive() {
	p.beatOnce.Do(func() { close(p.stopBeat) })
}

// Send serializes v to JSON and writes it as a single text frame. If the
// underlying write fails (including because the socket already closed),
// the error is returned to the caller to log; it must never be allowed to
// abort a fan-out over other peers.
func (p *Peer) Send(v interface{}) error {
	if p.Conn == nil {
		return nil
	}
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	return p.Conn.WriteJSON(v)
}

// SendRaw writes pre-encoded JSON bytes as a single text frame, used by the
// relay path which re-serializes the forwarded envelope itself rather than
// handing protocol-package-unaware peer a typed struct.
func (p *Peer) SendRaw(data []byte) error {
	if p.Conn == nil {
		return nil
	}
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	return p.Conn.WriteMessage(websocket.TextMessage, data)
}

// Teardown runs fn exactly once for this peer, no matter how many of the
// three teardown triggers (socket close/error, explicit disconnect
// message, keepalive timeout) race to invoke it.
func (p *Peer) Teardown(fn func()) {
	p.teardown.Do(fn)
}

// Close closes the underlying transport. Safe to call multiple times.
func (p *Peer) Close() error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.Close()
}
