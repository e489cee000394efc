package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "fr", "fr+m1", "fr+f2"), empty follows the locale
	Speed     int    // Speech speed in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultESpeakConfig returns the default configuration for French speech
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Speed:     150,
		Pitch:     50,
		Amplitude: 100,
	}
}

// ESpeakProvider implements Synthesizer on top of the espeak-ng binary,
// converting its WAV output to MP3 with ffmpeg
type ESpeakProvider struct {
	config *ESpeakConfig
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *ESpeakConfig) (*ESpeakProvider, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	if config == nil {
		config = DefaultESpeakConfig()
	}
	return &ESpeakProvider{config: config}, nil
}

// Synthesize renders text to WAV with espeak-ng, then returns it as MP3
func (p *ESpeakProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	text, err := NormalizeText(req.Text)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "phrasebook-espeak-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	wavFile := filepath.Join(tmpDir, "speech.wav")
	mp3File := filepath.Join(tmpDir, "speech.mp3")

	cmd := exec.CommandContext(ctx, "espeak-ng", p.args(req, text, wavFile)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	if err := ConvertWAVToMP3(ctx, wavFile, mp3File); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mp3File)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data produced by espeak-ng")
	}
	return data, nil
}

// args builds the espeak-ng command line
func (p *ESpeakProvider) args(req Request, text, wavFile string) []string {
	voice := p.config.Voice
	if voice == "" {
		voice = ESpeakVoice(req.Locale)
	}

	// espeak-ng speed is absolute words per minute; scale it by the rate
	speed := p.config.Speed
	if req.Rate > 0 {
		speed = int(float64(speed) * req.Rate)
	}
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}

	args := []string{
		"-v", voice,
		"-s", fmt.Sprintf("%d", speed),
		"-p", fmt.Sprintf("%d", p.config.Pitch),
		"-a", fmt.Sprintf("%d", p.config.Amplitude),
	}
	if p.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", p.config.WordGap))
	}
	return append(args, "-w", wavFile, text)
}

// ESpeakVoice maps a locale such as "fr-FR" to the espeak-ng voice "fr"
func ESpeakVoice(locale string) string {
	base, _, _ := strings.Cut(strings.ToLower(locale), "-")
	if base == "" {
		return "fr"
	}
	return base
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// checkFFmpegInstalled verifies that ffmpeg is available on the system
func checkFFmpegInstalled() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}

// ConvertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func ConvertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if err := checkFFmpegInstalled(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-loglevel", "error",
		"-i", wavFile, "-acodec", "libmp3lame", "-y", mp3File)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
