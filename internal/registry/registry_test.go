package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drpl-co/drpl-signal/internal/peer"
)

func mkPeer(id, room string) *peer.Peer {
	return peer.New(id, room, nil, peer.Descriptor{})
}

func TestJoin_SnapshotExcludesSelf(t *testing.T) {
	r := New()
	a := mkPeer("a", "room1")
	b := mkPeer("b", "room1")

	_, others := r.Join(a)
	require.Empty(t, others)

	_, others = r.Join(b)
	require.Len(t, others, 1)
	require.Equal(t, "a", others[0].ID)
}

func TestRoomIsolation(t *testing.T) {
	r := New()
	a := mkPeer("same-id", "room1")
	b := mkPeer("same-id", "room2")
	r.Join(a)
	r.Join(b)

	got, ok := r.Lookup("room1", "same-id")
	require.True(t, ok)
	require.Same(t, a, got)

	got, ok = r.Lookup("room2", "same-id")
	require.True(t, ok)
	require.Same(t, b, got)

	_, ok = r.Lookup("room3", "same-id")
	require.False(t, ok)
}

func TestJoin_EvictsPriorSameIdentityInSameRoom(t *testing.T) {
	r := New()
	a1 := mkPeer("id1", "room1")
	a2 := mkPeer("id1", "room1")

	r.Join(a1)
	evicted, _ := r.Join(a2)
	require.Same(t, a1, evicted)

	got, _ := r.Lookup("room1", "id1")
	require.Same(t, a2, got)
}

func TestLeave_EmptyRoomIsDeleted(t *testing.T) {
	r := New()
	a := mkPeer("a", "room1")
	r.Join(a)

	remaining, wasPresent := r.Leave(a)
	require.True(t, wasPresent)
	require.Empty(t, remaining)
	require.Equal(t, 0, r.RoomCount())
}

func TestLeave_RemainingPeersReturned(t *testing.T) {
	r := New()
	a := mkPeer("a", "room1")
	b := mkPeer("b", "room1")
	r.Join(a)
	r.Join(b)

	remaining, wasPresent := r.Leave(a)
	require.True(t, wasPresent)
	require.Len(t, remaining, 1)
	require.Equal(t, "b", remaining[0].ID)
}

func TestLeave_StaleReferenceIsNotPresent(t *testing.T) {
	r := New()
	a1 := mkPeer("id1", "room1")
	a2 := mkPeer("id1", "room1")
	r.Join(a1)
	r.Join(a2) // evicts a1's registry slot

	_, wasPresent := r.Leave(a1)
	require.False(t, wasPresent, "stale connection must not remove the newer one's registration")

	got, ok := r.Lookup("room1", "id1")
	require.True(t, ok)
	require.Same(t, a2, got)
}

func TestConcurrentJoinLeave_NoRace(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := mkPeer("p", "room1")
			r.Join(p)
			r.Snapshot("room1", "")
			r.Leave(p)
		}(i)
	}
	wg.Wait()
}

func TestPeerCount(t *testing.T) {
	r := New()
	r.Join(mkPeer("a", "room1"))
	r.Join(mkPeer("b", "room1"))
	r.Join(mkPeer("c", "room2"))
	require.Equal(t, 3, r.PeerCount())
	require.Equal(t, 2, r.RoomCount())
}
