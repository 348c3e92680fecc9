// Package registry is the room registry: the sole shared mutable structure
// in this server. It is modeled directly on device.Device's peers field in
// device/device.go, a single sync.RWMutex guarding a map keyed by identity,
// generalized from one flat map to a map-of-maps keyed first by room, then
// by peer identity.
package registry

import (
	"sync"

	"github.com/drpl-co/drpl-signal/internal/peer"
)

// Registry maps room key -> peer identity -> *peer.Peer.
//
// Invariants enforced by this type:
//   - every Peer reachable here has an open transport (removal happens
//     before Close, see Leave);
//   - a Peer appears in exactly one room;
//   - no two Peers in the same room share an identity (Join evicts any
//     prior holder of the same id first, to handle a client reconnecting
//     before its old connection is declared dead);
//   - Leave and keepalive-timer cancellation are performed together by the
//     lifecycle package so they are atomic with respect to delivery.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*peer.Peer
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{rooms: make(map[string]map[string]*peer.Peer)}
}

// Join places p in its room, evicting any existing peer with the same
// identity in that room first (the previously-registered connection is
// returned so the caller can tear it down). Returns the snapshot of other
// peers already in the room, taken atomically with insertion.
func (r *Registry) Join(p *peer.Peer) (evicted *peer.Peer, others []*peer.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[p.RoomKey]
	if room == nil {
		room = make(map[string]*peer.Peer)
		r.rooms[p.RoomKey] = room
	}

	if prior, ok := room[p.ID]; ok {
		evicted = prior
	}

	others = make([]*peer.Peer, 0, len(room))
	for id, existing := range room {
		if id == p.ID {
			continue
		}
		others = append(others, existing)
	}

	room[p.ID] = p
	return evicted, others
}

// Leave removes p from its room and, if the room is now empty, deletes the
// room entry. Returns the peers that remained in the room after removal
// (for the peer-left broadcast); nil if p wasn't present.
func (r *Registry) Leave(p *peer.Peer) (remaining []*peer.Peer, wasPresent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[p.RoomKey]
	if !ok {
		return nil, false
	}
	current, ok := room[p.ID]
	if !ok || current != p {
		// A different connection already re-registered this identity
		// (fast reconnect race); this call's p is stale, not present.
		return nil, false
	}

	delete(room, p.ID)
	if len(room) == 0 {
		delete(r.rooms, p.RoomKey)
		return nil, true
	}

	remaining = make([]*peer.Peer, 0, len(room))
	for _, existing := range room {
		remaining = append(remaining, existing)
	}
	return remaining, true
}

// Lookup finds a peer by identity within a single room only; cross-room
// lookup must never occur.
func (r *Registry) Lookup(roomKey, id string) (*peer.Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomKey]
	if !ok {
		return nil, false
	}
	p, ok := room[id]
	return p, ok
}

// Snapshot returns every peer in roomKey's room except the one identified
// by exceptID (pass "" to include everyone). The slice is a point-in-time
// copy taken under the lock; fan-out over it happens outside the lock to
// avoid holding the registry lock across sends.
func (r *Registry) Snapshot(roomKey, exceptID string) []*peer.Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomKey]
	if !ok {
		return nil
	}
	out := make([]*peer.Peer, 0, len(room))
	for id, p := range room {
		if id == exceptID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Names returns the current display names in roomKey's room, used to
// disambiguate a newly joining peer's name from others already present.
func (r *Registry) Names(roomKey string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomKey]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(room))
	for _, p := range room {
		names = append(names, p.Descriptor().DisplayName)
	}
	return names
}

// RoomCount and PeerCount back the /healthz liveness probe.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) PeerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, room := range r.rooms {
		n += len(room)
	}
	return n
}
