// Package config holds the typed phrasebook configuration resolved from
// flags, the config file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"codeberg.org/awtza/phrasebook/internal/audio"
)

// Config represents the application configuration
type Config struct {
	Lessons struct {
		Directory string `mapstructure:"directory"`
	} `mapstructure:"lessons"`

	Output struct {
		Directory string   `mapstructure:"directory"`
		Index     string   `mapstructure:"index"`
		Formats   []string `mapstructure:"formats"`
	} `mapstructure:"output"`

	Audio struct {
		Skip            bool          `mapstructure:"skip"`
		Provider        string        `mapstructure:"provider"`
		Fallback        string        `mapstructure:"fallback"`
		Locale          string        `mapstructure:"locale"`
		Rate            float64       `mapstructure:"rate"`
		Voice           string        `mapstructure:"voice"`
		Credentials     string        `mapstructure:"credentials"`
		OpenAIKey       string        `mapstructure:"openai_key"`
		OpenAIModel     string        `mapstructure:"openai_model"`
		Workers         int           `mapstructure:"workers"`
		Timeout         time.Duration `mapstructure:"timeout"`
		Fingerprint     bool          `mapstructure:"fingerprint"`
		BreakerFailures uint32        `mapstructure:"breaker_failures"`
	} `mapstructure:"audio"`

	Dialogue struct {
		HTML     string            `mapstructure:"html"`
		Output   string            `mapstructure:"output"`
		Prefix   string            `mapstructure:"prefix"`
		Strategy string            `mapstructure:"strategy"`
		Force    bool              `mapstructure:"force"`
		Voices   map[string]string `mapstructure:"voices"`
	} `mapstructure:"dialogue"`
}

// SetDefaults registers every default with v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("lessons.directory", "lessons")

	v.SetDefault("output.directory", "build")
	v.SetDefault("output.index", "index.html")
	v.SetDefault("output.formats", []string{"html", "md", "csv", "xlsx"})

	v.SetDefault("audio.skip", false)
	v.SetDefault("audio.provider", "google")
	v.SetDefault("audio.fallback", "")
	v.SetDefault("audio.locale", "fr-FR")
	v.SetDefault("audio.rate", 0.85)
	v.SetDefault("audio.voice", "fr-FR-Wavenet-D")
	v.SetDefault("audio.openai_model", "gpt-4o-mini-tts")
	v.SetDefault("audio.workers", 1)
	v.SetDefault("audio.timeout", 90*time.Second)
	v.SetDefault("audio.fingerprint", false)
	v.SetDefault("audio.breaker_failures", 0)

	v.SetDefault("dialogue.html", "")
	v.SetDefault("dialogue.output", "audio")
	v.SetDefault("dialogue.prefix", "restaurant")
	v.SetDefault("dialogue.strategy", "text")
	v.SetDefault("dialogue.force", false)
	v.SetDefault("dialogue.voices", map[string]string{
		"serveur": "fr-FR-Wavenet-D",
		"client":  "fr-FR-Wavenet-E",
	})
}

// Load resolves the configuration from v. Credentials missing from the
// config fall back to the conventional environment variables; the process
// environment is only read, never modified.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.Audio.Credentials == "" {
		cfg.Audio.Credentials = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	}
	if cfg.Audio.Credentials == "" {
		cfg.Audio.Credentials = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Audio.OpenAIKey == "" {
		cfg.Audio.OpenAIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Audio.Locale); err != nil {
		return fmt.Errorf("invalid audio.locale %q: %w", c.Audio.Locale, err)
	}
	if c.Audio.Rate < 0.25 || c.Audio.Rate > 4.0 {
		return fmt.Errorf("audio.rate must be in [0.25, 4.0], got %.2f", c.Audio.Rate)
	}
	if c.Audio.Workers < 1 {
		return fmt.Errorf("audio.workers must be at least 1, got %d", c.Audio.Workers)
	}
	if c.Audio.Timeout < 0 {
		return fmt.Errorf("audio.timeout must not be negative")
	}
	switch c.Dialogue.Strategy {
	case "text", "clips":
	default:
		return fmt.Errorf("unknown dialogue.strategy %q (want text or clips)", c.Dialogue.Strategy)
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory must not be empty")
	}
	return nil
}

// PageLanguage returns the base language of the synthesis locale ("fr" for
// "fr-FR"), used for the lang attribute of generated pages.
func (c *Config) PageLanguage() string {
	tag, err := language.Parse(c.Audio.Locale)
	if err != nil {
		return "fr"
	}
	base, _ := tag.Base()
	return base.String()
}

// SynthesizerConfig converts the audio section into the provider configuration
func (c *Config) SynthesizerConfig() *audio.Config {
	return &audio.Config{
		Provider:        c.Audio.Provider,
		Fallback:        c.Audio.Fallback,
		Locale:          c.Audio.Locale,
		Voice:           c.Audio.Voice,
		Rate:            c.Audio.Rate,
		CredentialsFile: c.Audio.Credentials,
		OpenAIKey:       c.Audio.OpenAIKey,
		OpenAIModel:     c.Audio.OpenAIModel,
		BreakerFailures: c.Audio.BreakerFailures,
	}
}
