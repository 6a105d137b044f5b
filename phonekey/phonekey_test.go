package phonekey

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567890", "+1234567890"}, // leading "1" takes the bare-plus branch
		{"234567890", "+1234567890"},  // 9 digits, no leading 1: US prefix assumed
		{"+1 234-567-8900", "+12345678900"},
		{"919876543210", "+919876543210"},
		{"19876543210", "+19876543210"},
		{"+44 20 7946 0958", "+442079460958"},
		{" 555-0100 ", "+15550100"},
		{"default_user", "+default_user"}, // 12 chars, long-input branch
		{"", "+1"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStable(t *testing.T) {
	// Normalizing an already-normalized key is a no-op.
	for _, in := range []string{"1234567890", "+1 234-567-8900", "919876543210"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: %q → %q → %q", in, once, twice)
		}
	}
}
