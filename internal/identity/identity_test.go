package identity

import (
	"math"
	"testing"
)

func TestJavaStringHash_MostNegativeInt(t *testing.T) {
	// math.MinInt32 has no positive counterpart in two's complement;
	// absInt32 must map it to 0 rather than overflow back into a negative.
	if got := absInt32(math.MinInt32); got != 0 {
		t.Fatalf("absInt32(MinInt32) = %d, want 0", got)
	}
}

func TestJavaStringHash_KnownValues(t *testing.T) {
	// "" hashes to 0 under the Java recurrence; a single code unit c
	// hashes to int32(c).
	if got := javaStringHash(""); got != 0 {
		t.Fatalf("hash(\"\") = %d, want 0", got)
	}
	if got := javaStringHash("a"); got != int32('a') {
		t.Fatalf("hash(\"a\") = %d, want %d", got, int32('a'))
	}
	// "ab" = 'a'*31 + 'b'
	want := int32('a')*31 + int32('b')
	if got := javaStringHash("ab"); got != want {
		t.Fatalf("hash(\"ab\") = %d, want %d", got, want)
	}
}

func TestDisplayName_Deterministic(t *testing.T) {
	ids := []string{
		"00000000-0000-4000-8000-000000000000",
		New(),
		New(),
	}
	for _, id := range ids {
		first := DisplayName(id)
		second := DisplayName(id)
		if first != second {
			t.Fatalf("DisplayName(%q) not deterministic: %q vs %q", id, first, second)
		}
	}
}

func TestDisplayName_ShapeIsAdjectiveSpaceNoun(t *testing.T) {
	name := DisplayName("00000000-0000-4000-8000-000000000000")
	found := false
	for _, adj := range adjectives {
		for _, noun := range nouns {
			if name == adj+" "+noun {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("DisplayName returned %q, not an Adjective-Noun pair from the fixed lists", name)
	}
}

func TestNewAndParse_RoundTrip(t *testing.T) {
	id := New()
	parsed, ok := Parse(id)
	if !ok {
		t.Fatalf("Parse(%q) failed on a freshly minted id", id)
	}
	if parsed != id {
		t.Fatalf("Parse(%q) = %q, want identical", id, parsed)
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "not-a-uuid", "00000000-0000-0000-0000"} {
		if _, ok := Parse(bad); ok {
			t.Fatalf("Parse(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestFromCookie_EmptyIsAbsent(t *testing.T) {
	if _, ok := FromCookie(""); ok {
		t.Fatal("FromCookie(\"\") should report absent, not reusable")
	}
}

func TestDisambiguate(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"Red Wolf", nil, "Red Wolf"},
		{"Red Wolf", []string{"Blue Eagle"}, "Red Wolf"},
		{"Red Wolf", []string{"Red Wolf"}, "Red Wolf (2)"},
		{"Red Wolf", []string{"Red Wolf", "Red Wolf (2)"}, "Red Wolf (3)"},
	}
	for _, c := range cases {
		if got := Disambiguate(c.name, c.existing); got != c.want {
			t.Fatalf("Disambiguate(%q, %v) = %q, want %q", c.name, c.existing, got, c.want)
		}
	}
}
