package types

import (
	"testing"
	"time"
)

func TestToYMD(t *testing.T) {
	got := ToYMD(time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC))
	if got != "2025-06-01" {
		t.Errorf("ToYMD = %q", got)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, time.June, 1, 15, 4, 5, 123, time.UTC)
	got := DateOnly(in)
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %s, want %s", got, want)
	}
}

func TestParseTimeLoose(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2025-06-01T10:30:00Z", true, time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-06-01T10:30:00", true, time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-06-01 10:30:00", true, time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-06-01", true, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"yesterday", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := ParseTimeLoose(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseTimeLoose(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseTimeLoose(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
