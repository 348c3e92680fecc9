package identity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CookieName is the client-set cookie carrying a peer's identifier across
// reconnects.
const CookieName = "peerid"

var adjectives = [...]string{
	"Red", "Blue", "Green", "Purple", "Golden",
	"Silver", "Crystal", "Cosmic", "Electric", "Mystic",
}

var nouns = [...]string{
	"Wolf", "Eagle", "Lion", "Phoenix", "Dragon",
	"Tiger", "Falcon", "Panther", "Hawk", "Bear",
}

// New mints a fresh peer identifier: a 128-bit value in 8-4-4-4-12 hex
// grouping, version nibble 4, variant bits 10xx. google/uuid's NewRandom
// already produces exactly this layout (RFC 4122 version-4 UUID), so no
// manual bit-twiddling is needed.
func New() string {
	return uuid.NewString()
}

// Parse validates that s is an identifier this server could have minted or
// reused: 36 characters, RFC 4122 hex-and-dash layout. It does not require
// version/variant bits to match (a reused cookie from a prior process still
// has them, but we don't want a sharp edge here if a future client sends a
// differently-shaped opaque token).
func Parse(s string) (string, bool) {
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// FromCookie extracts and validates a peerid cookie value, reporting
// whether it could be reused as-is.
func FromCookie(cookieValue string) (string, bool) {
	if cookieValue == "" {
		return "", false
	}
	return Parse(cookieValue)
}

// DisplayName derives the deterministic "<Adjective> <Noun>" label for a
// peer identifier: two independent hashes of id+"adjective" and id+"noun",
// each reduced modulo the corresponding list length after taking the
// absolute value.
func DisplayName(id string) string {
	adjHash := absInt32(javaStringHash(id + "adjective"))
	nounHash := absInt32(javaStringHash(id + "noun"))
	adj := adjectives[int(adjHash)%len(adjectives)]
	noun := nouns[int(nounHash)%len(nouns)]
	return adj + " " + noun
}

// Disambiguate appends a "(n)" suffix to displayName when it is not the
// first occurrence of that name among namesAlreadyPresent, resolving a
// same-adjective-noun collision between two peers in the same room. n is
// 1-based: the first peer with a given name is shown unsuffixed.
func Disambiguate(displayName string, namesAlreadyPresent []string) string {
	count := 1
	for _, existing := range namesAlreadyPresent {
		if existing == displayName || strings.HasPrefix(existing, displayName+" (") {
			count++
		}
	}
	if count == 1 {
		return displayName
	}
	return displayName + " (" + strconv.Itoa(count) + ")"
}
