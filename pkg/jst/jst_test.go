package jst

import (
	"testing"
	"time"
)

func TestFormatDateTime_ConvertsFromUTC(t *testing.T) {
	utc := time.Date(2025, 3, 31, 23, 30, 0, 0, time.UTC)

	if got := FormatDateTime(utc); got != "2025-04-01 08:30:00" {
		t.Fatalf("FormatDateTime = %q", got)
	}
	if got := FormatDate(utc); got != "2025-04-01" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatClock(utc); got != "08:30" {
		t.Fatalf("FormatClock = %q", got)
	}
}

func TestFormatDateTimePtr(t *testing.T) {
	if got := FormatDateTimePtr(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, Location)
	if got := FormatDateTimePtr(&ts); got != "2025-01-02 03:04:05" {
		t.Fatalf("FormatDateTimePtr = %q", got)
	}
}

func TestNow_IsJST(t *testing.T) {
	_, offset := Now().Zone()
	if offset != 9*60*60 {
		t.Fatalf("expected +09:00 offset, got %d", offset)
	}
}
