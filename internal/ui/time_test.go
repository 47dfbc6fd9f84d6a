package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
		{name: "negative", duration: -time.Hour, want: "0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := map[time.Duration]string{
		-2 * time.Minute: "2m ago",
		23 * time.Hour:   "in 23h",
		30 * time.Second: "now",
	}
	for offset, want := range cases {
		if got := FormatRelative(now.Add(offset), now); got != want {
			t.Fatalf("offset %v: expected %q, got %q", offset, want, got)
		}
	}
}

func TestFormatDue(t *testing.T) {
	zone := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, zone)
	at := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

	got := FormatDue(&at, now)

	if got != "Jan 2, 2024, 9:00 AM (in 23h)" {
		t.Fatalf("unexpected due text %q", got)
	}
	if FormatDue(nil, now) != "" {
		t.Fatalf("expected empty text for nil")
	}
}
