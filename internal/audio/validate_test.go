package audio

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"plain", "Bonjour !", "Bonjour !", false},
		{"collapses whitespace", "  Une \t table\n pour deux ", "Une table pour deux", false},
		{"non-breaking space", "Merci\u00a0beaucoup", "Merci beaucoup", false},
		{"empty", "", "", true},
		{"only whitespace", " \n\t ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
