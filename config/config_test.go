package config

import "testing"

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("VIDXIV_TEST_VAR", "set")
	if got := GetEnvOrDefault("VIDXIV_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("got %q", got)
	}
	if got := GetEnvOrDefault("VIDXIV_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	cases := []struct {
		value      string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"", true, true},
		{"", false, false},
		{"garbage", true, true},
	}
	for _, c := range cases {
		t.Setenv("VIDXIV_TEST_BOOL", c.value)
		if got := GetEnvBool("VIDXIV_TEST_BOOL", c.defaultVal); got != c.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", c.value, c.defaultVal, got, c.want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"videos", "videos/"},
		{"/videos/", "videos/"},
		{"a/b", "a/b/"},
	}
	for _, c := range cases {
		if got := normalizePrefix(c.in); got != c.want {
			t.Errorf("normalizePrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
