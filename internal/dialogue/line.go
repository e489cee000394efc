package dialogue

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

const (
	// PhraseSelector matches the tagged phrases of an annotated page
	PhraseSelector = "span.fr-phrase"

	DefaultRole    = "unknown"
	DefaultSection = "default"
)

// Line is one spoken phrase of a dialogue
type Line struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	Role    string `yaml:"role"`
	Section string `yaml:"section"`
}

// ExtractLines collects the tagged phrases of an HTML document in document
// order. Elements without a data-tts-id or without text are skipped.
func ExtractLines(r io.Reader) ([]Line, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dialogue HTML: %w", err)
	}

	var lines []Line
	doc.Find(PhraseSelector).Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.AttrOr("data-tts-id", ""))
		text := collapse(s.Text())
		if id == "" || text == "" {
			return
		}
		lines = append(lines, Line{
			ID:      id,
			Text:    text,
			Role:    attrOrDefault(s, "data-role", DefaultRole),
			Section: attrOrDefault(s, "data-section", DefaultSection),
		})
	})
	return lines, nil
}

// LoadLines reads a dialogue from path. Files ending in .yaml or .yml are
// read as a script, anything else as annotated HTML. An empty path yields
// the built-in script.
func LoadLines(path string) ([]Line, error) {
	if path == "" {
		return BuiltinScript(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dialogue: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeScript(f)
	default:
		return ExtractLines(f)
	}
}

type script struct {
	Lines []Line `yaml:"lines"`
}

// decodeScript reads a YAML script and applies the same defaults and
// filtering as ExtractLines
func decodeScript(r io.Reader) ([]Line, error) {
	var s script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse dialogue script: %w", err)
	}

	lines := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		l.ID = strings.TrimSpace(l.ID)
		l.Text = collapse(l.Text)
		if l.ID == "" || l.Text == "" {
			continue
		}
		if l.Role = strings.TrimSpace(l.Role); l.Role == "" {
			l.Role = DefaultRole
		}
		if l.Section = strings.TrimSpace(l.Section); l.Section == "" {
			l.Section = DefaultSection
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func attrOrDefault(s *goquery.Selection, name, def string) string {
	if v := strings.TrimSpace(s.AttrOr(name, "")); v != "" {
		return v
	}
	return def
}

// collapse trims s and folds every whitespace run into one space
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
