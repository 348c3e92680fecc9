// Package keepalive implements the per-peer liveness supervisor, modeled
// on the start/stop discipline of device/peer.go's packet routines: one
// goroutine per peer, started eagerly, stopped exactly once by closing a
// channel the loop selects on.
package keepalive

import (
	"time"

	"github.com/drpl-co/drpl-signal/internal/logging"
	"github.com/drpl-co/drpl-signal/internal/peer"
	"github.com/drpl-co/drpl-signal/internal/protocol"
)

// Interval is the ping cadence; DeadAfter is the inactivity deadline after
// which a peer that never replies is evicted.
const (
	Interval  = 30 * time.Second
	DeadAfter = 2 * Interval
)

// PingFrame is the server->client frame type sent on each tick.
type PingFrame struct {
	Type string `json:"type"`
}

var pingFrame = PingFrame{Type: protocol.TypePing}

// Supervise runs the keepalive loop for p until p.StopSignal() fires or the
// deadline is missed, at which point onDead is invoked to run connection
// teardown. Supervise blocks; callers run it in its own goroutine.
func Supervise(p *peer.Peer, log logging.Logger, onDead func(*peer.Peer)) {
	SuperviseWithTiming(p, log, onDead, Interval, DeadAfter)
}

// SuperviseWithTiming is Supervise with an injectable interval/deadline, so
// tests can exercise the eviction path without waiting out the real 60s
// deadline.
func SuperviseWithTiming(p *peer.Peer, log logging.Logger, onDead func(*peer.Peer), interval, deadAfter time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.StopSignal():
			return
		case <-ticker.C:
			if time.Since(p.LastBeat()) > deadAfter {
				onDead(p)
				return
			}
			if err := p.Send(pingFrame); err != nil {
				log.Errorf("ping send to %s failed: %v", p.ID, err)
			}
		}
	}
}
