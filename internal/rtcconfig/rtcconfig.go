// Package rtcconfig serves the ICE server hint list the data plane's own
// connection setup uses. This is transport-adjacent configuration, not NAT
// traversal logic or content inspection: the server hands back a static
// list and performs no STUN/TURN role itself.
package rtcconfig

import (
	"encoding/json"
	"net/http"
	"os"
)

// IceServer mirrors the RTCIceServer shape the data-plane client expects.
type IceServer struct {
	Urls []string `json:"urls"`
}

// Provider is anything that can produce the current ICE hint list.
type Provider interface {
	IceServers() []IceServer
}

type staticProvider struct {
	servers []IceServer
}

func (s staticProvider) IceServers() []IceServer { return s.servers }

var defaultServers = []IceServer{
	{Urls: []string{"stun:stun.l.google.com:19302"}},
	{Urls: []string{"stun:stun1.l.google.com:19302"}},
}

// Default returns the built-in STUN list, or the list in the ICE_SERVERS
// environment variable (a JSON array of {"urls":[...]}  objects) when set
// and well-formed.
func Default() Provider {
	if raw := os.Getenv("ICE_SERVERS"); raw != "" {
		var servers []IceServer
		if err := json.Unmarshal([]byte(raw), &servers); err == nil && len(servers) > 0 {
			return staticProvider{servers: servers}
		}
	}
	return staticProvider{servers: defaultServers}
}

type responseBody struct {
	IceServers []IceServer `json:"iceServers"`
}

// WriteJSON writes p's current server list as the response body for
// GET /api/ice-config.
func WriteJSON(w http.ResponseWriter, p Provider) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(responseBody{IceServers: p.IceServers()})
}
