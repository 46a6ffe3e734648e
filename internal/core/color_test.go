package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		tag      string
		expected Color
		ok       bool
	}{
		{"blue", ColorBrightBlue, true},
		{"Red", ColorBrightRed, true},
		{" purple ", ColorBrightMagenta, true},
		{"grey", ColorGray, true},
		{"chartreuse", ColorDefault, false},
		{"", ColorDefault, false},
	}
	for _, tc := range tests {
		c, ok := ParseColor(tc.tag)
		if c != tc.expected || ok != tc.ok {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.tag, c, ok, tc.expected, tc.ok)
		}
	}
}
