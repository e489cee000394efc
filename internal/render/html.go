package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"codeberg.org/awtza/phrasebook/internal/lesson"
)

//go:embed templates/lesson.html.tmpl
var templateFS embed.FS

var lessonTemplate = template.Must(template.ParseFS(templateFS, "templates/lesson.html.tmpl"))

// HTMLRenderer renders a self-contained study page with audio buttons
type HTMLRenderer struct {
	opts Options
}

// NewHTMLRenderer fills missing page settings with French defaults
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	if opts.PageLanguage == "" {
		opts.PageLanguage = "fr"
	}
	if opts.Locale == "" {
		opts.Locale = "fr-FR"
	}
	if opts.Rate == 0 {
		opts.Rate = 0.85
	}
	return &HTMLRenderer{opts: opts}
}

type htmlPhrase struct {
	Anchor  string
	Number  string
	French  string
	Chinese string
	Audio   string
}

type htmlPage struct {
	Lang    string
	Locale  string
	Rate    float64
	Lesson  *lesson.Lesson
	Phrases []htmlPhrase
}

func (r *HTMLRenderer) Format() string    { return "html" }
func (r *HTMLRenderer) Extension() string { return ".html" }
func (r *HTMLRenderer) Available() error  { return nil }

// Render executes the page template; all lesson text is contextually escaped
func (r *HTMLRenderer) Render(l *lesson.Lesson) ([]byte, error) {
	page := htmlPage{
		Lang:    r.opts.PageLanguage,
		Locale:  r.opts.Locale,
		Rate:    r.opts.Rate,
		Lesson:  l,
		Phrases: make([]htmlPhrase, 0, len(l.Sentences)),
	}
	for _, s := range l.Sentences {
		page.Phrases = append(page.Phrases, htmlPhrase{
			Anchor:  l.ID + "_" + s.Number(),
			Number:  s.Number(),
			French:  s.French,
			Chinese: s.Chinese,
			Audio:   s.AudioPath(l.ID),
		})
	}

	var buf bytes.Buffer
	if err := lessonTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to execute lesson template: %w", err)
	}
	return buf.Bytes(), nil
}
