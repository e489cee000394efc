package lesson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"codeberg.org/awtza/phrasebook/internal/logger"
)

const greetingsJSON = `{
  "id": "greetings",
  "title": "Salutations",
  "title_zh": "问候",
  "description_zh": "日常问候语",
  "sentences": [
    {"fr": "Bonjour !", "zh": "你好！"},
    {"fr": "Salut !", "zh": "嗨！"}
  ]
}`

// writeLessons creates a lessons directory holding files keyed by name
func writeLessons(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "lessons")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create lessons directory: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// observedLogger returns a logger whose warnings can be inspected
func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestLoadDirGreetings(t *testing.T) {
	dir := writeLessons(t, map[string]string{
		"greetings.json": greetingsJSON,
	})

	lessons := LoadDir(dir, logger.Nop())
	if len(lessons) != 1 {
		t.Fatalf("Expected 1 lesson, got %d", len(lessons))
	}

	l := lessons[0]
	if l.ID != "greetings" || l.Title != "Salutations" || l.TitleZh != "问候" {
		t.Errorf("Unexpected lesson header: %+v", l)
	}
	if l.Summary() != "日常问候语" {
		t.Errorf("Expected Chinese description, got %q", l.Summary())
	}
	if len(l.Sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(l.Sentences))
	}
	if l.Sentences[1] != (Sentence{Ordinal: 2, French: "Salut !", Chinese: "嗨！"}) {
		t.Errorf("Unexpected second sentence: %+v", l.Sentences[1])
	}
	if l.SourcePath != filepath.Join(dir, "greetings.json") {
		t.Errorf("Unexpected source path %q", l.SourcePath)
	}
}

func TestLoadDirDefaults(t *testing.T) {
	dir := writeLessons(t, map[string]string{
		"cafe.json":  `{"sentences": [{"fr": "Un café, s'il vous plaît."}]}`,
		"empty.json": `{"id": "", "title": "", "sentences": []}`,
		"numid.json": `{"id": 42, "sentences": [{"fr": "Quarante-deux", "zh": 42}]}`,
	})

	lessons := LoadDir(dir, logger.Nop())
	if len(lessons) != 3 {
		t.Fatalf("Expected 3 lessons, got %d", len(lessons))
	}

	tests := []struct {
		id    string
		title string
	}{
		{"cafe", "cafe"},
		{"empty", "empty"},
		{"numid", "numid"},
	}
	for i, tt := range tests {
		if lessons[i].ID != tt.id || lessons[i].Title != tt.title {
			t.Errorf("lesson %d: expected id=%q title=%q, got id=%q title=%q",
				i, tt.id, tt.title, lessons[i].ID, lessons[i].Title)
		}
	}

	if lessons[0].Sentences[0].Chinese != "" {
		t.Errorf("Expected empty translation, got %q", lessons[0].Sentences[0].Chinese)
	}
	if len(lessons[1].Sentences) != 0 {
		t.Errorf("Expected empty sentence list to be kept, got %d", len(lessons[1].Sentences))
	}
	if lessons[2].Sentences[0].Chinese != "" {
		t.Errorf("Expected non-string zh to be treated as absent, got %q", lessons[2].Sentences[0].Chinese)
	}
	if lessons[0].Subtitle() != "cafe" {
		t.Errorf("Expected subtitle to fall back to id, got %q", lessons[0].Subtitle())
	}
}

func TestLoadDirExclusions(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		warning string
	}{
		{"invalid json", "broken.json", `{"id": "broken",`, "skipping lesson file"},
		{"missing sentences", "nosent.json", `{"id": "nosent"}`, "no sentences list"},
		{"sentences not a list", "notlist.json", `{"sentences": "Bonjour"}`, "no sentences list"},
		{"sentence not an object", "scalar.json", `{"sentences": ["Bonjour"]}`, "not an object"},
		{"sentence without fr", "nofr.json", `{"sentences": [{"fr": "Oui"}, {"zh": "不"}]}`, "has no fr text"},
		{"top-level array", "array.json", `[{"fr": "Oui"}]`, "skipping lesson file"},
		{"empty yaml", "blank.yaml", "", "document is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeLessons(t, map[string]string{
				tt.file:          tt.content,
				"greetings.json": greetingsJSON,
			})

			log, logs := observedLogger()
			lessons := LoadDir(dir, log)

			if len(lessons) != 1 || lessons[0].ID != "greetings" {
				t.Fatalf("Expected only the valid lesson, got %d lessons", len(lessons))
			}
			if logs.Len() != 1 {
				t.Fatalf("Expected 1 warning, got %d", logs.Len())
			}
			entry := logs.All()[0]
			msg := entry.Message + " " + entry.ContextMap()["error"].(string)
			if !strings.Contains(msg, tt.warning) {
				t.Errorf("Expected warning containing %q, got %q", tt.warning, msg)
			}
		})
	}
}

func TestLoadDirDuplicateIDs(t *testing.T) {
	dir := writeLessons(t, map[string]string{
		"a.json": `{"id": "same", "title": "First", "sentences": [{"fr": "Un"}]}`,
		"b.json": `{"id": "same", "title": "Second", "sentences": [{"fr": "Deux"}]}`,
	})

	log, logs := observedLogger()
	lessons := LoadDir(dir, log)

	if len(lessons) != 1 || lessons[0].Title != "First" {
		t.Fatalf("Expected the first file to win, got %+v", lessons)
	}
	if logs.FilterMessage("skipping lesson file with duplicate id").Len() != 1 {
		t.Error("Expected a duplicate id warning")
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	log, logs := observedLogger()
	lessons := LoadDir(filepath.Join(t.TempDir(), "nope"), log)

	if len(lessons) != 0 {
		t.Errorf("Expected no lessons, got %d", len(lessons))
	}
	if logs.FilterMessage("lessons directory does not exist").Len() != 1 {
		t.Error("Expected a missing directory warning")
	}
}

func TestLoadDirFormatsAndOrder(t *testing.T) {
	dir := writeLessons(t, map[string]string{
		"b_yaml.yaml":  "id: weather\ntitle: Météo\nsentences:\n  - fr: Il fait beau.\n    zh: 天气很好。\n",
		"c_toml.toml":  "id = \"time\"\ntitle = \"L'heure\"\n\n[[sentences]]\nfr = \"Il est midi.\"\nzh = \"现在是中午。\"\n",
		"a_text.txt":   "# café\nUn café = 一杯咖啡\n\nL'addition, s'il vous plaît.\n",
		"d_notes.md":   "ignored",
		".hidden.json": greetingsJSON,
	})

	lessons := LoadDir(dir, logger.Nop())
	if len(lessons) != 3 {
		t.Fatalf("Expected 3 lessons, got %d", len(lessons))
	}

	ids := []string{lessons[0].ID, lessons[1].ID, lessons[2].ID}
	if strings.Join(ids, ",") != "a_text,weather,time" {
		t.Errorf("Expected filename order, got %v", ids)
	}

	text := lessons[0]
	if text.Title != "a_text" || len(text.Sentences) != 2 {
		t.Fatalf("Unexpected text lesson: %+v", text)
	}
	if text.Sentences[0].French != "Un café" || text.Sentences[0].Chinese != "一杯咖啡" {
		t.Errorf("Unexpected first text sentence: %+v", text.Sentences[0])
	}
	if text.Sentences[1].Chinese != "" {
		t.Errorf("Expected untranslated line, got %+v", text.Sentences[1])
	}

	if lessons[1].Title != "Météo" || lessons[1].Sentences[0].Chinese != "天气很好。" {
		t.Errorf("Unexpected YAML lesson: %+v", lessons[1])
	}
	if lessons[2].Title != "L'heure" || lessons[2].Sentences[0].French != "Il est midi." {
		t.Errorf("Unexpected TOML lesson: %+v", lessons[2])
	}
}

func TestDecodeTextRejectsMissingFrench(t *testing.T) {
	if _, err := decodeText([]byte("= 你好\n")); err == nil {
		t.Error("Expected error for a translation without French text")
	}

	data, err := decodeText(bytes.TrimSpace([]byte("\n\n")))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sentences := data["sentences"].([]interface{}); len(sentences) != 0 {
		t.Errorf("Expected no sentences, got %v", sentences)
	}
}
