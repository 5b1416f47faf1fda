package ocs

import (
	"encoding/json"
	"testing"
	"time"
)

func TestItemFirstMatchingKeyWins(t *testing.T) {
	it := Item{
		"subscriberid": json.Number("42"),
		"id":           json.Number("99"),
	}

	got, ok := it.Int64("subscriberId", "subscriberid", "id")
	if !ok || got != 42 {
		t.Fatalf("Int64 = (%d, %v), want (42, true)", got, ok)
	}
}

func TestItemInt64Conversions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
		ok    bool
	}{
		{"json number", json.Number("5054672"), 5054672, true},
		{"large byte counter", json.Number("1099511627776"), 1 << 40, true},
		{"numeric string", "  314 ", 314, true},
		{"float", 2.0, 2, true},
		{"garbage string", "n/a", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{"v": tt.value}
			got, ok := it.Int64("v")
			if ok != tt.ok || got != tt.want {
				t.Errorf("Int64 = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestItemDecimalFromNumberString(t *testing.T) {
	it := Item{"cost": "12.50"}
	d, ok := it.Decimal("cost")
	if !ok || d.String() != "12.5" {
		t.Fatalf("Decimal = (%s, %v), want (12.5, true)", d, ok)
	}
}

func TestItemTimeAcceptsLooseFormats(t *testing.T) {
	for _, raw := range []string{
		"2025-06-01T10:30:00Z",
		"2025-06-01T10:30:00",
		"2025-06-01 10:30:00",
		"2025-06-01",
	} {
		it := Item{"tsactivationutc": raw}
		got, ok := it.Time("tsactivationutc")
		if !ok {
			t.Errorf("Time(%q) not parsed", raw)
			continue
		}
		if got.Year() != 2025 || got.Month() != time.June || got.Day() != 1 {
			t.Errorf("Time(%q) = %s", raw, got)
		}
	}
}

func TestItemNestedAccess(t *testing.T) {
	it := Item{
		"sim": map[string]any{"iccid": "8988xx", "esim": true},
		"imsiList": []any{
			map[string]any{"imsi": "90170"},
		},
	}

	sim, ok := it.Child("sim")
	if !ok {
		t.Fatal("Child(sim) missing")
	}
	if iccid, ok := sim.String("iccid"); !ok || iccid != "8988xx" {
		t.Errorf("iccid = %q", iccid)
	}
	if esim, ok := sim.Bool("esim"); !ok || !esim {
		t.Error("esim not true")
	}

	imsis := it.Items("imsiList")
	if len(imsis) != 1 {
		t.Fatalf("imsiList len = %d", len(imsis))
	}
	if imsi, ok := imsis[0].String("imsi"); !ok || imsi != "90170" {
		t.Errorf("imsi = %q", imsi)
	}
}
