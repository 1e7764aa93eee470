package mapper

import "testing"

func TestRatio_Identical(t *testing.T) {
	t.Parallel()

	if got := Ratio("email", "email"); got != 100 {
		t.Fatalf("identical want=100 got=%d", got)
	}
	if got := Ratio("", ""); got != 100 {
		t.Fatalf("empty want=100 got=%d", got)
	}
}

func TestRatio_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"email", "e_mail"},
		{"first_name", "fname"},
		{"organization_name", "company"},
	}
	for _, p := range pairs {
		if Ratio(p[0], p[1]) != Ratio(p[1], p[0]) {
			t.Fatalf("not symmetric: %q vs %q", p[0], p[1])
		}
	}
}

func TestRatio_Ordering(t *testing.T) {
	t.Parallel()

	// 近似表头应显著高于不相关表头
	close := Ratio("email_address", "email_addres")
	far := Ratio("email_address", "founded_year")
	if close <= far {
		t.Fatalf("close=%d far=%d", close, far)
	}
	if close < MatchThreshold {
		t.Fatalf("near-identical should pass threshold, got %d", close)
	}
}

func TestRatio_Bounds(t *testing.T) {
	t.Parallel()

	cases := [][2]string{
		{"a", "b"}, {"abc", ""}, {"e_mail", "email"}, {"xyz", "xyzxyzxyz"},
	}
	for _, c := range cases {
		got := Ratio(c[0], c[1])
		if got < 0 || got > 100 {
			t.Fatalf("out of bounds: %q %q -> %d", c[0], c[1], got)
		}
	}
}
