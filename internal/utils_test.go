package internal

import "testing"

func TestFormatOrdinal(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1, "01"},
		{9, "09"},
		{10, "10"},
		{50, "50"},
		{100, "100"},
	}

	for _, tt := range tests {
		if got := FormatOrdinal(tt.in); got != tt.want {
			t.Errorf("FormatOrdinal(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "sec1", "sec1"},
		{"accented", "entrée", "entrée"},
		{"spaces", "plat du jour", "plat_du_jour"},
		{"path separators", "../etc/passwd", "___etc_passwd"},
		{"dash and underscore", "role-a_b", "role-a_b"},
		{"empty", "   ", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
