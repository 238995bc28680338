package project

import "testing"

func TestParseMajorHandlesCommonFormats(t *testing.T) {
	cases := []struct {
		spec  string
		major uint64
		ok    bool
	}{
		{"5.0.0", 5, true},
		{"^5.0.0", 5, true},
		{"~5.2.0", 5, true},
		{"v5.0.0", 5, true},
		{"workspace:^5.0.0", 5, true},
		{"workspace:*", 0, false},
		{"5", 5, true},
		{"5.0", 5, true},
		{"4.0.0-beta.1", 4, true},
		{"", 0, false},
		{"   ", 0, false},
		{"not-a-version", 0, false},
		{"v", 0, false},
		{"workspace:", 0, false},
		{"file:", 0, false},
		{"99999999999999999999999.0.0", 0, false},
	}
	for _, tc := range cases {
		major, ok := ParseMajor(tc.spec)
		if ok != tc.ok || major != tc.major {
			t.Fatalf("ParseMajor(%q) = (%d, %v), want (%d, %v)", tc.spec, major, ok, tc.major, tc.ok)
		}
	}
}

func TestSpecSatisfies(t *testing.T) {
	if !SpecSatisfies("^2.1.0", "^2.1.0") {
		t.Fatal("exact requirement must match")
	}
	if !SpecSatisfies("^2.0.0", "^2.1.0") {
		t.Fatal("caret superset must match")
	}
	if SpecSatisfies("^1.5.0", "^2.0.0") {
		t.Fatal("lower major must not match")
	}
	if SpecSatisfies("", "^1.0.0") {
		t.Fatal("missing installed spec must not match")
	}
	if SpecSatisfies("not-a-spec", "^1.0.0") {
		t.Fatal("unparseable installed spec must not match")
	}
	if !SpecSatisfies(">=1.0.0", "^1.2.0") {
		t.Fatal("open lower bound must cover caret requirement")
	}
}
