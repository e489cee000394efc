package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"codeberg.org/awtza/phrasebook/internal/logger"
)

// DefaultTimeout bounds a single synthesis call when the caller's context
// carries no deadline of its own
const DefaultTimeout = 90 * time.Second

// Request describes one utterance to synthesise
type Request struct {
	Text   string  // Text to speak
	Locale string  // BCP-47 locale, e.g. "fr-FR"
	Rate   float64 // Speaking rate, 1.0 is normal speed
	Voice  string  // Provider-specific voice name, empty for the provider default
}

// Synthesizer defines the interface for text-to-speech providers
type Synthesizer interface {
	// Synthesize returns the encoded MP3 audio for req
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "google", "openai" or "espeak"
	Fallback string // Optional provider used when the primary one fails

	Locale string  // Default locale for requests
	Voice  string  // Default voice for requests
	Rate   float64 // Default speaking rate, 0.25 to 4.0

	// Google Cloud settings: a service account file path or inline JSON
	CredentialsFile string

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string // Used when the request voice is not an OpenAI voice
	OpenAIInstruction string // Voice instructions for gpt-4o-mini-tts model

	// Consecutive failures before the circuit breaker opens, 0 disables it
	BreakerFailures uint32
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "google",
		Locale:            "fr-FR",
		Voice:             "fr-FR-Wavenet-D",
		Rate:              0.85,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAIInstruction: "You are speaking French. Pronounce the text with a clear, standard Parisian accent and speak slowly and clearly for language learners.",
	}
}

// NewSynthesizer builds the configured provider, wrapped with the optional
// fallback provider and circuit breaker
func NewSynthesizer(ctx context.Context, config *Config, log *logger.Logger) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	config = withDefaults(config)

	primary, err := newProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}

	var synth Synthesizer = primary
	if config.Fallback != "" && config.Fallback != config.Provider {
		fallback, err := newProvider(ctx, config.Fallback, config)
		if err != nil {
			log.Warn("fallback audio provider unavailable", "provider", config.Fallback, "error", err)
		} else {
			synth = NewProviderWithFallback(primary, fallback, log)
		}
	}

	return withBreaker(synth, config, log), nil
}

// withBreaker wraps synth in a circuit breaker when config asks for one.
// Without it every missing clip gets its own synthesis attempt.
func withBreaker(synth Synthesizer, config *Config, log *logger.Logger) Synthesizer {
	if config.BreakerFailures == 0 {
		return synth
	}
	return NewBreakerSynthesizer(synth, config.BreakerFailures, log)
}

// newProvider creates the named provider
func newProvider(ctx context.Context, name string, config *Config) (Synthesizer, error) {
	switch name {
	case "google":
		return NewGoogleProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "espeak":
		return NewESpeakProvider(DefaultESpeakConfig())

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// withDefaults fills zero-valued provider settings from DefaultProviderConfig
func withDefaults(config *Config) *Config {
	defaults := DefaultProviderConfig()
	c := *config
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.Rate == 0 {
		c.Rate = defaults.Rate
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = defaults.OpenAIModel
	}
	if c.OpenAIVoice == "" {
		c.OpenAIVoice = defaults.OpenAIVoice
	}
	if c.OpenAIInstruction == "" {
		c.OpenAIInstruction = defaults.OpenAIInstruction
	}
	return &c
}

// withTimeout adopts the deadline from ctx or falls back to DefaultTimeout
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
	log      *logger.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Synthesizer, log *logger.Logger) Synthesizer {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	data, err := p.primary.Synthesize(ctx, req)
	if err == nil {
		return data, nil
	}

	p.log.Warn("primary audio provider failed, falling back",
		"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)

	data, fbErr := p.fallback.Synthesize(ctx, req)
	if fbErr != nil {
		return nil, fmt.Errorf("primary=%v, fallback=%w", err, fbErr)
	}
	return data, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// Close releases both providers
func (p *ProviderWithFallback) Close() error {
	return errors.Join(Close(p.primary), Close(p.fallback))
}

// Close releases the resources of s when it holds any, such as the gRPC
// connection of the Google provider
func Close(s Synthesizer) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
