package audio

import (
	"os/exec"
	"testing"
)

func TestESpeakVoice(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"fr-FR", "fr"},
		{"fr", "fr"},
		{"FR-ca", "fr"},
		{"", "fr"},
	}

	for _, tt := range tests {
		if got := ESpeakVoice(tt.locale); got != tt.want {
			t.Errorf("ESpeakVoice(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestESpeakArgs(t *testing.T) {
	tests := []struct {
		name      string
		config    *ESpeakConfig
		req       Request
		wantVoice string
		wantSpeed string
	}{
		{
			name:      "locale voice and scaled speed",
			config:    DefaultESpeakConfig(),
			req:       Request{Locale: "fr-FR", Rate: 0.8},
			wantVoice: "fr",
			wantSpeed: "120",
		},
		{
			name:      "explicit voice and clamped speed",
			config:    &ESpeakConfig{Voice: "fr+f2", Speed: 150, Pitch: 50, Amplitude: 100},
			req:       Request{Locale: "fr-FR", Rate: 0.25},
			wantVoice: "fr+f2",
			wantSpeed: "80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ESpeakProvider{config: tt.config}
			args := p.args(tt.req, "Bonjour", "/tmp/out.wav")

			if args[0] != "-v" || args[1] != tt.wantVoice {
				t.Errorf("Expected voice %q, got %v", tt.wantVoice, args[:2])
			}
			if args[2] != "-s" || args[3] != tt.wantSpeed {
				t.Errorf("Expected speed %q, got %v", tt.wantSpeed, args[2:4])
			}
			n := len(args)
			if args[n-3] != "-w" || args[n-2] != "/tmp/out.wav" || args[n-1] != "Bonjour" {
				t.Errorf("Expected output file and text at the end, got %v", args[n-3:])
			}
		})
	}
}

func TestNewESpeakProvider(t *testing.T) {
	_, lookErr := exec.LookPath("espeak-ng")

	provider, err := NewESpeakProvider(nil)
	if lookErr != nil {
		if err == nil {
			t.Error("Expected error when espeak-ng is missing")
		}
		return
	}

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if provider.Name() != "espeak-ng" {
		t.Errorf("Expected name 'espeak-ng', got '%s'", provider.Name())
	}
}
