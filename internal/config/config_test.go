package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"lessons.directory", cfg.Lessons.Directory, "lessons"},
		{"output.directory", cfg.Output.Directory, "build"},
		{"output.index", cfg.Output.Index, "index.html"},
		{"audio.provider", cfg.Audio.Provider, "google"},
		{"audio.locale", cfg.Audio.Locale, "fr-FR"},
		{"audio.rate", cfg.Audio.Rate, 0.85},
		{"audio.voice", cfg.Audio.Voice, "fr-FR-Wavenet-D"},
		{"audio.workers", cfg.Audio.Workers, 1},
		{"audio.timeout", cfg.Audio.Timeout, 90 * time.Second},
		{"audio.breaker_failures", cfg.Audio.BreakerFailures, uint32(0)},
		{"dialogue.output", cfg.Dialogue.Output, "audio"},
		{"dialogue.prefix", cfg.Dialogue.Prefix, "restaurant"},
		{"dialogue.strategy", cfg.Dialogue.Strategy, "text"},
		{"dialogue.voices.serveur", cfg.Dialogue.Voices["serveur"], "fr-FR-Wavenet-D"},
		{"audio.credentials", cfg.Audio.Credentials, ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if strings.Join(cfg.Output.Formats, ",") != "html,md,csv,xlsx" {
		t.Errorf("output.formats = %v", cfg.Output.Formats)
	}
}

func TestLoadCredentialFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		jsonEnv    string
		fileEnv    string
		configured string
		want       string
	}{
		{"inline json wins", `{"type":"service_account"}`, "/etc/key.json", "", `{"type":"service_account"}`},
		{"file path", "", "/etc/key.json", "", "/etc/key.json"},
		{"config wins", `{"x":1}`, "/etc/key.json", "/home/me/key.json", "/home/me/key.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", tt.jsonEnv)
			t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", tt.fileEnv)
			t.Setenv("OPENAI_API_KEY", "sk-env")

			v := viper.New()
			if tt.configured != "" {
				v.Set("audio.credentials", tt.configured)
			}

			cfg, err := Load(v)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Audio.Credentials != tt.want {
				t.Errorf("credentials = %q, want %q", cfg.Audio.Credentials, tt.want)
			}
			if cfg.Audio.OpenAIKey != "sk-env" {
				t.Errorf("openai key = %q, want sk-env", cfg.Audio.OpenAIKey)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]interface{}
		wantErr string
	}{
		{"valid", nil, ""},
		{"rate lower bound", map[string]interface{}{"audio.rate": 0.25}, ""},
		{"rate upper bound", map[string]interface{}{"audio.rate": 4.0}, ""},
		{"rate too low", map[string]interface{}{"audio.rate": 0.2}, "audio.rate"},
		{"rate too high", map[string]interface{}{"audio.rate": 4.5}, "audio.rate"},
		{"bad locale", map[string]interface{}{"audio.locale": "not a locale!"}, "audio.locale"},
		{"no workers", map[string]interface{}{"audio.workers": 0}, "audio.workers"},
		{"negative timeout", map[string]interface{}{"audio.timeout": "-1s"}, "audio.timeout"},
		{"unknown strategy", map[string]interface{}{"dialogue.strategy": "mix"}, "dialogue.strategy"},
		{"empty output", map[string]interface{}{"output.directory": ""}, "output.directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}

			_, err := Load(v)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Load() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestPageLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"fr-FR", "fr"},
		{"fr-CA", "fr"},
		{"en-US", "en"},
		{"???", "fr"},
	}
	for _, tt := range tests {
		c := &Config{}
		c.Audio.Locale = tt.locale
		if got := c.PageLanguage(); got != tt.want {
			t.Errorf("PageLanguage(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestSynthesizerConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	v := viper.New()
	v.Set("audio.provider", "openai")
	v.Set("audio.fallback", "espeak")
	v.Set("audio.openai_key", "sk-test")

	cfg, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}

	sc := cfg.SynthesizerConfig()
	if sc.Provider != "openai" || sc.Fallback != "espeak" || sc.OpenAIKey != "sk-test" {
		t.Errorf("SynthesizerConfig() = %+v", sc)
	}
	if sc.Locale != "fr-FR" || sc.Rate != 0.85 || sc.BreakerFailures != 0 {
		t.Errorf("SynthesizerConfig() lost audio defaults: %+v", sc)
	}
}
