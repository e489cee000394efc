package render

import (
	"strings"

	"codeberg.org/awtza/phrasebook/internal/lesson"
)

// MarkdownRenderer writes a heading per sentence followed by its translation
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Format() string    { return "md" }
func (r *MarkdownRenderer) Extension() string { return ".md" }
func (r *MarkdownRenderer) Available() error  { return nil }

func (r *MarkdownRenderer) Render(l *lesson.Lesson) ([]byte, error) {
	lines := make([]string, 0, len(l.Sentences)*3)
	for _, s := range l.Sentences {
		lines = append(lines, "## "+s.Number()+" "+s.French, s.Chinese, "")
	}
	return []byte(strings.Join(lines, "\n")), nil
}
