// Package transport is the HTTP frontend: a single listener that serves
// static assets and upgrades a designated path to a bidirectional
// text-frame channel, built on gorilla/mux and gorilla/websocket.
package transport

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/drpl-co/drpl-signal/internal/identity"
	"github.com/drpl-co/drpl-signal/internal/lifecycle"
	"github.com/drpl-co/drpl-signal/internal/logging"
	"github.com/drpl-co/drpl-signal/internal/registry"
	"github.com/drpl-co/drpl-signal/internal/rtcconfig"
	"github.com/drpl-co/drpl-signal/internal/useragent"
)

// Server wires the Registry, lifecycle Manager, and HTTP mux together.
type Server struct {
	reg      *registry.Registry
	manager  *lifecycle.Manager
	log      logging.Logger
	upgrader websocket.Upgrader
	mux      *mux.Router
	ice      rtcconfig.Provider
}

// Config controls the static file root and the ICE hint list served at
// /api/ice-config.
type Config struct {
	StaticDir  string
	IceServers rtcconfig.Provider
}

// NewServer builds the HTTP handler tree. Pass nil for Config.IceServers to
// use rtcconfig.Default() (the ICE_SERVERS list if set, else the built-in
// STUN list).
func NewServer(reg *registry.Registry, log logging.Logger, cfg Config) *Server {
	s := &Server{
		reg:     reg,
		manager: lifecycle.NewManager(reg, log),
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local-network peer discovery has no notion of an allowed
			// origin list; any origin that can reach this host on the LAN
			// is accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: mux.NewRouter(),
		ice: cfg.IceServers,
	}
	if s.ice == nil {
		s.ice = rtcconfig.Default()
	}

	s.mux.HandleFunc("/ws", s.handleUpgrade)
	s.mux.HandleFunc("/api/ice-config", s.handleIceConfig).Methods(http.MethodGet)
	s.mux.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	if cfg.StaticDir != "" {
		s.mux.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return s
}

// Handler returns the root http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	id, minted := resolveIdentity(r)

	responseHeader := http.Header{}
	if minted {
		// http.Cookie doesn't expose Secure+SameSite=Strict formatting any
		// more cleanly than this, so the attributes are appended to the
		// Set-Cookie value directly.
		responseHeader.Set("Set-Cookie", identity.CookieName+"="+id+"; SameSite=Strict; Secure")
	}

	conn, err := s.upgrader.Upgrade(w, r, responseHeader)
	if err != nil {
		s.log.Errorf("upgrade failed: %v", err)
		return
	}

	roomKey := lifecycle.RoomKey(r, r.RemoteAddr)
	descriptor := useragent.Build(useragent.Parse(r.UserAgent()))

	s.manager.Connect(conn, id, roomKey, descriptor)
}

func resolveIdentity(r *http.Request) (id string, minted bool) {
	if cookie, err := r.Cookie(identity.CookieName); err == nil {
		if reused, ok := identity.FromCookie(cookie.Value); ok {
			return reused, false
		}
	}
	return identity.New(), true
}

func (s *Server) handleIceConfig(w http.ResponseWriter, r *http.Request) {
	rtcconfig.WriteJSON(w, s.ice)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthzBody(s.reg)))
}

func healthzBody(reg *registry.Registry) string {
	return "ok rooms=" + strconv.Itoa(reg.RoomCount()) + " peers=" + strconv.Itoa(reg.PeerCount()) + "\n"
}
