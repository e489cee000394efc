package voices

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/sashabaranov/go-openai"

	"codeberg.org/awtza/phrasebook/internal"
	"codeberg.org/awtza/phrasebook/internal/audio"
)

// VoiceSource lists the voices of a locale. *audio.GoogleProvider is one.
type VoiceSource interface {
	ListVoices(ctx context.Context, languageCode string) ([]*texttospeechpb.Voice, error)
}

// ModelSource lists the models of an OpenAI account. *openai.Client is one.
type ModelSource interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Voice is one row of the listing
type Voice struct {
	Provider   string
	Name       string
	Languages  []string
	Gender     string
	SampleRate int32
}

// Lister handles listing available voices
type Lister struct {
	google VoiceSource
	openai ModelSource
}

// NewLister creates a lister. Either source may be nil when its provider is
// not configured.
func NewLister(google VoiceSource, models ModelSource) *Lister {
	return &Lister{google: google, openai: models}
}

// List returns the voices provider offers for locale, sorted by name
func (l *Lister) List(ctx context.Context, provider, locale string) ([]Voice, error) {
	switch provider {
	case "google":
		return l.googleVoices(ctx, locale)
	case "openai":
		return openAIVoices(), nil
	case "espeak":
		return []Voice{{
			Provider:  "espeak",
			Name:      audio.ESpeakVoice(locale),
			Languages: []string{locale},
		}}, nil
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", provider)
	}
}

func (l *Lister) googleVoices(ctx context.Context, locale string) ([]Voice, error) {
	if l.google == nil {
		return nil, fmt.Errorf("google credentials not configured. Set audio.credentials or GOOGLE_APPLICATION_CREDENTIALS")
	}

	voices, err := l.google.ListVoices(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}

	out := make([]Voice, 0, len(voices))
	for _, v := range voices {
		out = append(out, Voice{
			Provider:   "google",
			Name:       v.GetName(),
			Languages:  v.GetLanguageCodes(),
			Gender:     strings.ToLower(v.GetSsmlGender().String()),
			SampleRate: v.GetNaturalSampleRateHertz(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// OpenAI voices are multilingual and not tied to a locale
func openAIVoices() []Voice {
	out := make([]Voice, 0, len(audio.OpenAIVoices))
	for _, name := range audio.OpenAIVoices {
		out = append(out, Voice{Provider: "openai", Name: name, Languages: []string{"multilingual"}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SpeechModels returns the sorted ids of the text-to-speech models the
// OpenAI key can use
func (l *Lister) SpeechModels(ctx context.Context) ([]string, error) {
	if l.openai == nil {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure audio.openai_key")
	}

	models, err := l.openai.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, m := range models.Models {
		if strings.Contains(m.ID, "tts") || strings.Contains(m.ID, "audio") {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Print writes voices as a table
func Print(w io.Writer, voices []Voice) {
	if len(voices) == 0 {
		fmt.Fprintln(w, "No voices found")
		return
	}

	rows := make([][]string, 0, len(voices))
	for _, v := range voices {
		rate := ""
		if v.SampleRate > 0 {
			rate = strconv.Itoa(int(v.SampleRate))
		}
		rows = append(rows, []string{v.Name, strings.Join(v.Languages, ", "), v.Gender, rate})
	}
	fmt.Fprintln(w, internal.RenderTable([]string{"Voice", "Languages", "Gender", "Sample rate"}, rows, 3))
}
