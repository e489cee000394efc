// Package render turns a lesson into its per-format artifacts. Each
// Renderer is a pure function of the lesson; the Registry decides which
// formats are active for a run.
package render

import (
	"fmt"
	"path/filepath"

	"codeberg.org/awtza/phrasebook/internal/fileutil"
	"codeberg.org/awtza/phrasebook/internal/lesson"
	"codeberg.org/awtza/phrasebook/internal/logger"
)

// DefaultFormats are the formats rendered when none are configured
var DefaultFormats = []string{"html", "md", "csv", "xlsx"}

// Renderer produces one artifact format for a lesson
type Renderer interface {
	// Format returns the configuration name, e.g. "html"
	Format() string

	// Extension returns the file extension including the dot
	Extension() string

	// Available reports whether the renderer can run in this build
	Available() error

	// Render returns the complete artifact content
	Render(l *lesson.Lesson) ([]byte, error)
}

// Options carries the settings shared by the renderers
type Options struct {
	OutputDir    string  // Directory artifacts are written to
	PageLanguage string  // lang attribute of HTML pages, e.g. "fr"
	Locale       string  // Browser speech fallback locale, e.g. "fr-FR"
	Rate         float64 // Browser speech fallback rate
}

// Factory builds a renderer from the shared options
type Factory func(opts Options) Renderer

// Registry holds the active renderers in configuration order
type Registry struct {
	renderers []Renderer
}

// NewRegistry resolves the configured format names against factories.
// Unknown formats and renderers that report themselves unavailable are
// left out with a warning.
func NewRegistry(formats []string, factories map[string]Factory, opts Options, log *logger.Logger) *Registry {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	r := &Registry{}
	seen := make(map[string]bool)
	for _, format := range formats {
		if seen[format] {
			continue
		}
		seen[format] = true

		factory, ok := factories[format]
		if !ok {
			log.Warn("unknown output format, ignoring", "format", format)
			continue
		}

		renderer := factory(opts)
		if err := renderer.Available(); err != nil {
			log.Warn("output format unavailable, skipping", "format", format, "error", err)
			continue
		}
		r.renderers = append(r.renderers, renderer)
	}

	return r
}

// BuiltinFactories returns the renderers implemented in this package
func BuiltinFactories() map[string]Factory {
	return map[string]Factory{
		"html": func(opts Options) Renderer { return NewHTMLRenderer(opts) },
		"csv":  func(Options) Renderer { return &CSVRenderer{} },
		"md":   func(Options) Renderer { return &MarkdownRenderer{} },
		"xlsx": func(Options) Renderer { return &XLSXRenderer{} },
	}
}

// Renderers returns the active renderers
func (r *Registry) Renderers() []Renderer {
	return r.renderers
}

// Formats returns the names of the active renderers
func (r *Registry) Formats() []string {
	formats := make([]string, len(r.renderers))
	for i, renderer := range r.renderers {
		formats[i] = renderer.Format()
	}
	return formats
}

// ArtifactPath returns <outputDir>/<lesson-id><ext>
func ArtifactPath(outputDir string, l *lesson.Lesson, r Renderer) string {
	return filepath.Join(outputDir, l.ID+r.Extension())
}

// WriteArtifact renders l and overwrites its artifact file
func WriteArtifact(outputDir string, l *lesson.Lesson, r Renderer) (string, error) {
	content, err := r.Render(l)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", r.Format(), err)
	}

	path := ArtifactPath(outputDir, l, r)
	if err := fileutil.WriteFileAtomic(path, content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
