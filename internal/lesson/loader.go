package lesson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"codeberg.org/awtza/phrasebook/internal/logger"
)

// decoders maps a recognised source extension to its decoder
var decoders = map[string]func([]byte) (map[string]interface{}, error){
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".txt":  decodeText,
}

// LoadDir reads every recognised lesson file in dir, sorted by filename.
// Files that cannot be parsed or lack a sentence list are reported and
// skipped; LoadDir never fails and returns the remaining lessons.
func LoadDir(dir string, log *logger.Logger) []*Lesson {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("lessons directory does not exist", "dir", dir)
		} else {
			log.Warn("failed to read lessons directory", "dir", dir, "error", err)
		}
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := decoders[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var lessons []*Lesson
	seen := make(map[string]string)
	for _, name := range names {
		path := filepath.Join(dir, name)
		l, err := LoadFile(path)
		if err != nil {
			log.Warn("skipping lesson file", "file", path, "error", err)
			continue
		}
		if first, dup := seen[l.ID]; dup {
			log.Warn("skipping lesson file with duplicate id", "file", path, "id", l.ID, "first", first)
			continue
		}
		seen[l.ID] = path
		lessons = append(lessons, l)
	}

	return lessons
}

// LoadFile parses a single lesson source file and normalises it
func LoadFile(path string) (*Lesson, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported lesson format: %s", filepath.Ext(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson file: %w", err)
	}

	data, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lesson file: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l, err := normalize(data, stem)
	if err != nil {
		return nil, err
	}
	l.SourcePath = path
	return l, nil
}

// normalize fills defaults and converts the generic record into a Lesson
func normalize(data map[string]interface{}, stem string) (*Lesson, error) {
	l := &Lesson{
		ID:            stringField(data, "id"),
		Title:         stringField(data, "title"),
		TitleZh:       stringField(data, "title_zh"),
		Description:   stringField(data, "description"),
		DescriptionZh: stringField(data, "description_zh"),
	}
	if l.ID == "" {
		l.ID = stem
	}
	if l.Title == "" {
		l.Title = l.ID
	}

	raw, ok := data["sentences"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("lesson %q has no sentences list", l.ID)
	}

	l.Sentences = make([]Sentence, 0, len(raw))
	for i, item := range raw {
		fields, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("lesson %q: sentence %d is not an object", l.ID, i+1)
		}
		fr := stringField(fields, "fr")
		if fr == "" {
			return nil, fmt.Errorf("lesson %q: sentence %d has no fr text", l.ID, i+1)
		}
		l.Sentences = append(l.Sentences, Sentence{
			Ordinal: i + 1,
			French:  fr,
			Chinese: stringField(fields, "zh"),
		})
	}

	return l, nil
}

// stringField returns m[key] when it is a string, "" otherwise
func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func decodeJSON(content []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("top-level value is not an object")
	}
	return data, nil
}

func decodeYAML(content []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("document is empty")
	}
	return data, nil
}

func decodeTOML(content []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}
