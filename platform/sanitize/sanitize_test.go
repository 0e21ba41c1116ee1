package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "We need a new storefront", "We need a new storefront"},
		{"tags stripped", "<b>urgent</b> redesign", "urgent redesign"},
		{"script removed", `<script>alert("x")</script>launch soon`, `alert("x")launch soon`},
		{"entity-encoded tag stripped", "&lt;img src=x&gt;brand refresh", "brand refresh"},
		{"whitespace trimmed", "  goals for Q3  ", "goals for Q3"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatal("nil in, nil out")
	}
	in := "<i>notes</i>"
	if got := TextPtr(&in); *got != "notes" {
		t.Errorf("TextPtr = %q, want notes", *got)
	}
}
