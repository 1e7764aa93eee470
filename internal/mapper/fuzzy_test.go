package mapper

import "testing"

func TestMatcher_ExactCanonical(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	canonical, score, ok := m.Match("Email")
	if !ok || canonical != "email" || score != 100 {
		t.Fatalf("Email: got=(%q,%d,%v)", canonical, score, ok)
	}

	// 规范化后与口径列相等同样短路 100
	canonical, score, ok = m.Match("FIRST-NAME")
	if !ok || canonical != "first_name" || score != 100 {
		t.Fatalf("FIRST-NAME: got=(%q,%d,%v)", canonical, score, ok)
	}
}

func TestMatcher_VariantSpellings(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	cases := map[string]string{
		"fname":         "first_name",
		"E-mail":        "email",
		"email_address": "email",
		"Company":       "organization_name",
		"zip":           "organization_postal_code",
		"Twitter":       "twitter_url",
	}
	for header, want := range cases {
		canonical, score, ok := m.Match(header)
		if !ok {
			t.Fatalf("%q: no match (score=%d)", header, score)
		}
		if canonical != want {
			t.Fatalf("%q: want=%q got=%q (score=%d)", header, want, canonical, score)
		}
	}
}

func TestMatcher_BelowThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	if canonical, score, ok := m.Match("qqqq_zzzz_7731"); ok {
		t.Fatalf("garbage matched %q with %d", canonical, score)
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	headers := []string{"fname", "Name", "E-mail", "phone", "weird_header_xx"}
	for _, header := range headers {
		c1, s1, ok1 := m.Match(header)
		c2, s2, ok2 := m.Match(header)
		if c1 != c2 || s1 != s2 || ok1 != ok2 {
			t.Fatalf("%q: (%q,%d,%v) vs (%q,%d,%v)", header, c1, s1, ok1, c2, s2, ok2)
		}
	}
}

func TestMatcher_Suggestions(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	suggestions := m.Suggestions("emial", 5)
	if len(suggestions) != 5 {
		t.Fatalf("want 5 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Canonical != "email" {
		t.Fatalf("top suggestion want=email got=%q", suggestions[0].Canonical)
	}
	// 降序排列
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Score > suggestions[i-1].Score {
			t.Fatalf("not sorted at %d: %d > %d", i, suggestions[i].Score, suggestions[i-1].Score)
		}
	}
	// 口径列不重复
	seen := make(map[string]bool)
	for _, s := range suggestions {
		if seen[s.Canonical] {
			t.Fatalf("duplicate canonical %q", s.Canonical)
		}
		seen[s.Canonical] = true
	}
}

func TestMatcher_SuggestionsIgnoreThreshold(t *testing.T) {
	t.Parallel()

	// 完全不相关的表头也要返回 k 条候选，不做阈值过滤
	m := NewMatcher()
	suggestions := m.Suggestions("zzzz_9999", 5)
	if len(suggestions) != 5 {
		t.Fatalf("want 5 suggestions, got %d", len(suggestions))
	}
}
