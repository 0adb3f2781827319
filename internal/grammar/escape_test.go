package grammar_test

import (
	"testing"

	"github.com/ghettovoice/gouri/internal/grammar"
)

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"%41%42%43", "ABC"},
		{"%4a%4A", "JJ"},
		{"a%2", "a%2"},
		{"a%", "a%"},
		{"%%41", "%A"},
		{"%g1", "%g1"},
		{"%E2%82%AC", "€"},
	}

	for _, c := range cases {
		if got := grammar.Unescape(c.in); got != c.want {
			t.Errorf("grammar.Unescape(%q) = %q, want %q", c.in, got, c.want)
		}
		if got := string(grammar.Unescape([]byte(c.in))); got != c.want {
			t.Errorf("grammar.Unescape([]byte(%q)) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsHexDigit(t *testing.T) {
	t.Parallel()

	for c := range 256 {
		b := byte(c)
		want := '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
		if got := grammar.IsHexDigit(b); got != want {
			t.Errorf("grammar.IsHexDigit(%q) = %v, want %v", b, got, want)
		}
	}
}
