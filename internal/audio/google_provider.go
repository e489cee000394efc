package audio

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// speechClient is the subset of the Cloud Text-to-Speech client in use
type speechClient interface {
	synthesize(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
	listVoices(ctx context.Context, languageCode string) ([]*texttospeechpb.Voice, error)
	close() error
}

type cloudSpeechClient struct {
	client *texttospeech.Client
}

func (c *cloudSpeechClient) synthesize(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	return c.client.SynthesizeSpeech(ctx, req)
}

func (c *cloudSpeechClient) listVoices(ctx context.Context, languageCode string) ([]*texttospeechpb.Voice, error) {
	resp, err := c.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: languageCode})
	if err != nil {
		return nil, err
	}
	return resp.GetVoices(), nil
}

func (c *cloudSpeechClient) close() error {
	return c.client.Close()
}

// GoogleProvider implements Synthesizer for Google Cloud Text-to-Speech
type GoogleProvider struct {
	client speechClient
	config *Config
}

// ClientOptions converts a credentials setting into client options. Values
// starting with "{" are treated as inline service account JSON, anything
// else as a file path. Empty means application default credentials.
func ClientOptions(credentials string) []option.ClientOption {
	creds := strings.TrimSpace(credentials)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// NewGoogleProvider creates a new Google Cloud TTS provider
func NewGoogleProvider(ctx context.Context, config *Config) (*GoogleProvider, error) {
	c, err := texttospeech.NewClient(ctx, ClientOptions(config.CredentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("google text-to-speech client: %w", err)
	}
	return &GoogleProvider{client: &cloudSpeechClient{client: c}, config: config}, nil
}

// Synthesize generates MP3 audio using Google Cloud TTS
func (p *GoogleProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	text, err := NormalizeText(req.Text)
	if err != nil {
		return nil, err
	}
	req.Text = text

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	resp, err := p.client.synthesize(ctx, p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("google TTS API error: %w", err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("no audio data received from google")
	}
	return resp.GetAudioContent(), nil
}

// buildRequest maps a Request onto the API request, filling defaults from
// the provider configuration
func (p *GoogleProvider) buildRequest(req Request) *texttospeechpb.SynthesizeSpeechRequest {
	locale := req.Locale
	if locale == "" {
		locale = p.config.Locale
	}
	voice := req.Voice
	if voice == "" {
		voice = p.config.Voice
	}
	rate := req.Rate
	if rate == 0 {
		rate = p.config.Rate
	}

	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: locale,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  rate,
		},
	}
}

// ListVoices returns the voices Google offers for the language code
func (p *GoogleProvider) ListVoices(ctx context.Context, languageCode string) ([]*texttospeechpb.Voice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	voices, err := p.client.listVoices(ctx, languageCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list google voices: %w", err)
	}
	return voices, nil
}

// Close releases the underlying gRPC connection
func (p *GoogleProvider) Close() error {
	return p.client.close()
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable reports whether a client was constructed
func (p *GoogleProvider) IsAvailable() error {
	if p.client == nil {
		return fmt.Errorf("google text-to-speech client not initialised")
	}
	return nil
}
