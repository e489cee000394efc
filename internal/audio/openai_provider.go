package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIVoices lists the voices accepted by the OpenAI speech endpoint
var OpenAIVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo", "fable",
	"onyx", "nova", "sage", "shimmer", "verse",
}

// OpenAIProvider implements Synthesizer for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Synthesize generates MP3 audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	text, err := NormalizeText(req.Text)
	if err != nil {
		return nil, err
	}
	req.Text = text

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	response, err := p.client.CreateSpeech(ctx, p.buildRequest(req))
	if err != nil {
		// Check if it's a model access error
		if strings.Contains(err.Error(), "does not have access to model") && supportsInstructions(p.config.OpenAIModel) {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try audio.openai_model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAI audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}
	return data, nil
}

// buildRequest maps a Request onto the speech request. Voices that are not
// OpenAI voices (such as Google voice names) fall back to the configured one.
func (p *OpenAIProvider) buildRequest(req Request) openai.CreateSpeechRequest {
	voice := p.config.OpenAIVoice
	if isOpenAIVoice(req.Voice) {
		voice = req.Voice
	}
	speed := req.Rate
	if speed == 0 {
		speed = p.config.Rate
	}

	speech := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if p.config.OpenAIInstruction != "" && supportsInstructions(p.config.OpenAIModel) {
		speech.Instructions = p.config.OpenAIInstruction
	}
	return speech
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

func isOpenAIVoice(voice string) bool {
	for _, v := range OpenAIVoices {
		if v == voice {
			return true
		}
	}
	return false
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would spend credits, so a configured key is enough
	return nil
}
