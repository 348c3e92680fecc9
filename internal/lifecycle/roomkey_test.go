package lifecycle

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomKey_PrefersXForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	require.Equal(t, "203.0.113.5", RoomKey(r, "192.168.1.1:54321"))
}

func TestRoomKey_FallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	require.Equal(t, "192.168.1.1", RoomKey(r, "192.168.1.1:54321"))
}

func TestRoomKey_NormalizesIPv6Loopback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	require.Equal(t, "127.0.0.1", RoomKey(r, "[::1]:54321"))
}

func TestRoomKey_NormalizesIPv4MappedLoopback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("X-Forwarded-For", "::ffff:127.0.0.1")
	require.Equal(t, "127.0.0.1", RoomKey(r, "ignored:0"))
}

func TestRoomKey_LoopbackFormsShareARoom(t *testing.T) {
	r1 := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r2 := httptest.NewRequest(http.MethodGet, "/ws", nil)
	key1 := RoomKey(r1, "[::1]:1111")
	key2 := RoomKey(r2, "127.0.0.1:2222")
	require.Equal(t, key1, key2)
}
