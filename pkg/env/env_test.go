package env

import "testing"

func TestGetPrefersPrefixedName(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ECHNAVI_LOG_FORMAT", "console")

	if got := Get("LOG_FORMAT", "json"); got != "console" {
		t.Fatalf("got %q, want console", got)
	}
}

func TestGetFallsBackToBareName(t *testing.T) {
	t.Setenv("ECHNAVI_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "console")

	if got := Get("LOG_FORMAT", "json"); got != "console" {
		t.Fatalf("got %q, want console", got)
	}
}

func TestGetReturnsFallbackWhenUnset(t *testing.T) {
	if got := Get("ENV_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}
