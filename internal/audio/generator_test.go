package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/awtza/phrasebook/internal/lesson"
	"codeberg.org/awtza/phrasebook/internal/logger"
)

func greetings() *lesson.Lesson {
	return &lesson.Lesson{
		ID:    "greetings",
		Title: "Salutations",
		Sentences: []lesson.Sentence{
			{Ordinal: 1, French: "Bonjour !", Chinese: "你好！"},
			{Ordinal: 2, French: "Salut !", Chinese: "嗨！"},
		},
	}
}

func newTestGenerator(synth Synthesizer, outDir string, fingerprint bool) *Generator {
	return NewGenerator(synth, GeneratorOptions{
		OutputDir:   outDir,
		Locale:      "fr-FR",
		Rate:        0.85,
		Voice:       "fr-FR-Wavenet-D",
		Fingerprint: fingerprint,
	}, logger.Nop())
}

func clipPath(outDir, ordinal string) string {
	return filepath.Join(outDir, "audio", "greetings", ordinal+".mp3")
}

func TestGenerateLesson(t *testing.T) {
	outDir := t.TempDir()
	synth := &fakeSynth{name: "fake", data: []byte("mp3-data")}

	stats := newTestGenerator(synth, outDir, false).GenerateLesson(context.Background(), greetings())

	if stats != (Stats{Synthesized: 2}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	for _, n := range []string{"01", "02"} {
		data, err := os.ReadFile(clipPath(outDir, n))
		if err != nil {
			t.Fatalf("Expected clip %s: %v", n, err)
		}
		if string(data) != "mp3-data" {
			t.Errorf("Expected payload written verbatim, got %q", data)
		}
	}

	if len(synth.calls) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(synth.calls))
	}
	want := Request{Text: "Bonjour !", Locale: "fr-FR", Rate: 0.85, Voice: "fr-FR-Wavenet-D"}
	found := false
	for _, c := range synth.calls {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected request %+v among %+v", want, synth.calls)
	}
}

func TestGenerateLessonSkipsExisting(t *testing.T) {
	outDir := t.TempDir()
	existing := clipPath(outDir, "01")
	if err := os.MkdirAll(filepath.Dir(existing), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	synth := &fakeSynth{name: "fake", data: []byte("new")}
	stats := newTestGenerator(synth, outDir, false).GenerateLesson(context.Background(), greetings())

	if stats != (Stats{Synthesized: 1, Skipped: 1}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "old" {
		t.Errorf("Existing clip must not be touched, got %q", data)
	}
	if synth.callCount() != 1 {
		t.Errorf("Expected 1 call, got %d", synth.callCount())
	}
}

func TestGenerateLessonFailures(t *testing.T) {
	tests := []struct {
		name  string
		synth *fakeSynth
		want  Stats
	}{
		{
			name:  "provider error on one sentence",
			synth: &fakeSynth{name: "fake", data: []byte("x"), errFor: map[string]error{"Salut !": errors.New("boom")}},
			want:  Stats{Synthesized: 1, Failed: 1},
		},
		{
			name:  "empty payload is a failure",
			synth: &fakeSynth{name: "fake"},
			want:  Stats{Failed: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			stats := newTestGenerator(tt.synth, outDir, false).GenerateLesson(context.Background(), greetings())
			if stats != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, stats)
			}
			if tt.want.Synthesized == 0 {
				if _, err := os.Stat(clipPath(outDir, "01")); err == nil {
					t.Error("No clip should be written for a failed sentence")
				}
			}
		})
	}
}

func TestGenerateLessonCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	synth := &fakeSynth{name: "fake", data: []byte("x")}
	stats := newTestGenerator(synth, t.TempDir(), false).GenerateLesson(ctx, greetings())

	if stats != (Stats{Failed: 2}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if synth.callCount() != 0 {
		t.Errorf("Expected no calls after cancellation, got %d", synth.callCount())
	}
}

func TestGenerateLessonWorkers(t *testing.T) {
	l := &lesson.Lesson{ID: "greetings"}
	for i := 1; i <= 12; i++ {
		l.Sentences = append(l.Sentences, lesson.Sentence{Ordinal: i, French: "Phrase"})
	}

	outDir := t.TempDir()
	synth := &fakeSynth{name: "fake", data: []byte("x")}
	gen := NewGenerator(synth, GeneratorOptions{OutputDir: outDir, Workers: 4}, logger.Nop())

	stats := gen.GenerateLesson(context.Background(), l)
	if stats.Synthesized != 12 {
		t.Errorf("Expected 12 clips, got %+v", stats)
	}
	if _, err := os.Stat(clipPath(outDir, "12")); err != nil {
		t.Errorf("Expected clip 12: %v", err)
	}
}

func TestGenerateLessonFingerprint(t *testing.T) {
	outDir := t.TempDir()
	synth := &fakeSynth{name: "fake", data: []byte("v1")}

	// First run records fingerprints
	first := newTestGenerator(synth, outDir, true).GenerateLesson(context.Background(), greetings())
	if first.Synthesized != 2 {
		t.Fatalf("Expected 2 clips, got %+v", first)
	}

	sidecar := filepath.Join(outDir, "audio", "greetings", FingerprintFile)
	var recorded map[string]string
	data, err := os.ReadFile(sidecar)
	if err != nil {
		t.Fatalf("Expected fingerprint sidecar: %v", err)
	}
	if err := json.Unmarshal(data, &recorded); err != nil {
		t.Fatalf("Invalid sidecar: %v", err)
	}
	if len(recorded) != 2 {
		t.Errorf("Expected 2 fingerprints, got %v", recorded)
	}

	// Unchanged input is skipped
	second := newTestGenerator(synth, outDir, true).GenerateLesson(context.Background(), greetings())
	if second != (Stats{Skipped: 2}) {
		t.Errorf("Expected all skipped, got %+v", second)
	}

	// Changed text regenerates only that clip
	changed := greetings()
	changed.Sentences[1].French = "Salut, ça va ?"
	synth.data = []byte("v2")
	third := newTestGenerator(synth, outDir, true).GenerateLesson(context.Background(), changed)
	if third != (Stats{Synthesized: 1, Skipped: 1}) {
		t.Errorf("Expected one regenerated clip, got %+v", third)
	}
	got, _ := os.ReadFile(clipPath(outDir, "02"))
	if string(got) != "v2" {
		t.Errorf("Expected regenerated clip, got %q", got)
	}
}

func TestGenerateLessonFingerprintAdoptsUnrecordedClips(t *testing.T) {
	outDir := t.TempDir()
	for _, n := range []string{"01", "02"} {
		p := clipPath(outDir, n)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("hand-made"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	synth := &fakeSynth{name: "fake", data: []byte("new")}
	stats := newTestGenerator(synth, outDir, true).GenerateLesson(context.Background(), greetings())

	if stats != (Stats{Skipped: 2}) {
		t.Errorf("Expected existing clips to be kept, got %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(outDir, "audio", "greetings", FingerprintFile)); err != nil {
		t.Errorf("Expected fingerprints to be recorded: %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	base := Request{Text: "Bonjour", Locale: "fr-FR", Rate: 0.85, Voice: "fr-FR-Wavenet-D"}
	if Fingerprint(base) != Fingerprint(base) {
		t.Error("Fingerprint must be deterministic")
	}

	variants := []Request{
		{Text: "Bonsoir", Locale: "fr-FR", Rate: 0.85, Voice: "fr-FR-Wavenet-D"},
		{Text: "Bonjour", Locale: "fr-CA", Rate: 0.85, Voice: "fr-FR-Wavenet-D"},
		{Text: "Bonjour", Locale: "fr-FR", Rate: 1.0, Voice: "fr-FR-Wavenet-D"},
		{Text: "Bonjour", Locale: "fr-FR", Rate: 0.85, Voice: "fr-FR-Wavenet-E"},
	}
	for _, v := range variants {
		if Fingerprint(v) == Fingerprint(base) {
			t.Errorf("Expected different fingerprint for %+v", v)
		}
	}
}

func TestStatsAdd(t *testing.T) {
	total := Stats{Synthesized: 1}
	total.Add(Stats{Synthesized: 2, Skipped: 3, Failed: 4})

	if total != (Stats{Synthesized: 3, Skipped: 3, Failed: 4}) {
		t.Errorf("Unexpected total: %+v", total)
	}
}

func TestGenerateLessonDefaultsAttemptEverySentence(t *testing.T) {
	l := &lesson.Lesson{ID: "greetings", Title: "Salutations"}
	for i := 1; i <= 10; i++ {
		l.Sentences = append(l.Sentences, lesson.Sentence{Ordinal: i, French: fmt.Sprintf("Phrase %d.", i)})
	}

	// A burst of five rate-limit errors, then the provider recovers
	flaky := &fakeSynth{name: "fake", data: []byte("mp3"), failFirst: 5}
	synth := withBreaker(flaky, DefaultProviderConfig(), logger.Nop())

	outDir := t.TempDir()
	stats := newTestGenerator(synth, outDir, false).GenerateLesson(context.Background(), l)

	if flaky.callCount() != 10 {
		t.Errorf("Expected one provider call per sentence, got %d", flaky.callCount())
	}
	if stats != (Stats{Synthesized: 5, Failed: 5}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if _, err := os.Stat(clipPath(outDir, "10")); err != nil {
		t.Errorf("Expected clip 10 after the provider recovered: %v", err)
	}
}
