// Package env reads ad-hoc process environment values. Structured
// configuration goes through pkg/config; this covers the few knobs read
// before config exists, honoring the service's ECHNAVI_ prefix.
package env

import (
	"os"
	"strings"
)

// Get returns the value of key, preferring the ECHNAVI_-prefixed form,
// or fallback when neither is set.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv("ECHNAVI_" + key)); val != "" {
		return val
	}
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
