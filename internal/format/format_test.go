package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatPeriod(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{time.Second, "1 second"},
		{10 * time.Second, "10 seconds"},
		{45 * time.Second, "45 seconds"},
		{time.Minute, "1 minute"},
		{2 * time.Minute, "2 minutes"},
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
	}

	for _, tc := range cases {
		if got := FormatPeriod(tc.in); got != tc.want {
			t.Fatalf("FormatPeriod(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 90 * time.Second, "1m30s"},
		{"hours", 1 * time.Hour, "1h0m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.in); got != tc.want {
				t.Fatalf("FormatDuration(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRule(t *testing.T) {
	if got := Rule("="); got != strings.Repeat("=", 60) {
		t.Fatalf("Rule = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(85); got != "85.0%" {
		t.Fatalf("Percent = %q, want %q", got, "85.0%")
	}
}
