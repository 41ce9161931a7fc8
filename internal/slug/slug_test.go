package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Buy milk", "buy-milk"},
		{"accents", "Crème brûlée à Paris", "creme-brulee-a-paris"},
		{"punctuation runs", "  Hello,   World!!  ", "hello-world"},
		{"digits", "Release 2.0 -- final", "release-2-0-final"},
		{"only separators", "!!! ---", ""},
		{"empty", "", ""},
		{"already slug", "buy-milk", "buy-milk"},
		{"non latin", "Привет мир", "привет-мир"},
		{"no decomposition", "Øresund Łódź", "øresund-łodz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	for _, in := range []string{"Write the Report", "Ünïcödé  títle", "a_b_c"} {
		once := Make(in)
		assert.Equal(t, once, Make(once), in)
		assert.Equal(t, once, Make(in), in)
	}
}
