package client

import "testing"

func TestSplitName(t *testing.T) {
	cases := []struct {
		full  string
		first string
		last  string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Gabriel García Márquez", "Gabriel", "García Márquez"},
		{"Prince", "Prince", ""},
		{"", "", ""},
		{"  spaced   out  ", "spaced", "out"},
	}

	for _, tc := range cases {
		first, last := SplitName(tc.full)
		if first != tc.first || last != tc.last {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tc.full, first, last, tc.first, tc.last)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	for _, name := range []string{
		"Ada Lovelace",
		"Gabriel García Márquez",
		"Prince",
		"Ludwig van Beethoven",
	} {
		first, last := SplitName(name)
		if got := CombineName(first, last); got != name {
			t.Errorf("round trip of %q produced %q", name, got)
		}
	}
}
