package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"020 7485 1234", "+442074851234"},
		{"07911 123456", "+447911123456"},
		{"+44 7911 123456", "+447911123456"},
		{"  07911123456  ", "+447911123456"},
		{"", ""},
		{"not a number", "not a number"},
		{"12345", "12345"},
	}

	for _, tt := range tests {
		if got := NormalizeE164(tt.input); got != tt.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
