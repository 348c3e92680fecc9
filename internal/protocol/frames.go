package protocol

import "github.com/drpl-co/drpl-signal/internal/peer"

// DisplayNameFrame is sent once per connection, before anything else.
type DisplayNameFrame struct {
	Type    string         `json:"type"`
	Message DisplayPayload `json:"message"`
}

type DisplayPayload struct {
	PeerID      string `json:"peerId"`
	DisplayName string `json:"displayName"`
	DeviceName  string `json:"deviceName"`
}

// PeersFrame snapshots the other peers currently in a room, sent on join
// and again after an "introduce" update.
type PeersFrame struct {
	Type  string      `json:"type"`
	Peers []peer.Info `json:"peers"`
}

// PeerJoinedFrame notifies existing peers of a new arrival.
type PeerJoinedFrame struct {
	Type string    `json:"type"`
	Peer peer.Info `json:"peer"`
}

// PeerLeftFrame notifies remaining peers of a departure.
type PeerLeftFrame struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
}

// PeerUpdatedFrame notifies other peers of an "introduce" update.
type PeerUpdatedFrame struct {
	Type string    `json:"type"`
	Peer peer.Info `json:"peer"`
}

func NewDisplayNameFrame(p *peer.Peer) DisplayNameFrame {
	d := p.Descriptor()
	return DisplayNameFrame{
		Type: TypeDisplayName,
		Message: DisplayPayload{
			PeerID:      p.ID,
			DisplayName: d.DisplayName,
			DeviceName:  d.DeviceName,
		},
	}
}

func NewPeersFrame(peers []*peer.Peer) PeersFrame {
	infos := make([]peer.Info, 0, len(peers))
	for _, p := range peers {
		infos = append(infos, p.ToInfo())
	}
	return PeersFrame{Type: TypePeers, Peers: infos}
}

func NewPeerJoinedFrame(p *peer.Peer) PeerJoinedFrame {
	return PeerJoinedFrame{Type: TypePeerJoined, Peer: p.ToInfo()}
}

func NewPeerLeftFrame(peerID string) PeerLeftFrame {
	return PeerLeftFrame{Type: TypePeerLeft, PeerID: peerID}
}

func NewPeerUpdatedFrame(p *peer.Peer) PeerUpdatedFrame {
	return PeerUpdatedFrame{Type: TypePeerUpdated, Peer: p.ToInfo()}
}
