package goresolve

import "testing"

func TestCheckFormat(t *testing.T) {
	cases := []struct {
		format string
		value  string
		ok     bool
		known  bool
	}{
		{"date-time", "2026-08-25T10:30:00Z", true, true},
		{"date-time", "2026-08-25 10:30:00", false, true},
		{"date", "2026-08-25", true, true},
		{"date", "2026-13-01", false, true},
		{"time", "10:30:00Z", true, true},
		{"time", "25:00:00", false, true},
		{"email", "user@example.com", true, true},
		{"email", "not-an-email", false, true},
		{"ipv4", "192.168.0.1", true, true},
		{"ipv4", "192.168.0.256", false, true},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", true, true},
		{"uuid", "123e4567", false, true},
		{"smoke-signal", "anything", true, false},
	}
	for _, tc := range cases {
		ok, known := checkFormat(tc.format, tc.value)
		if ok != tc.ok || known != tc.known {
			t.Errorf("checkFormat(%q, %q) = (%v, %v), want (%v, %v)",
				tc.format, tc.value, ok, known, tc.ok, tc.known)
		}
	}
}
