package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"national number gets country code", "098765 43210", "+919876543210"},
		{"already e164", "+919876543210", "+919876543210"},
		{"foreign number with prefix", "+31 6 12345678", "+31612345678"},
		{"garbage passes through trimmed", " not-a-number ", "not-a-number"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.in); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
