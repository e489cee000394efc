package anki

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"codeberg.org/awtza/phrasebook/internal/lesson"
)

// Renderer exports a lesson as an Anki package. It satisfies the render
// package's Renderer interface.
type Renderer struct {
	outputDir string
}

// NewRenderer creates a renderer that embeds clips found under outputDir
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

func (r *Renderer) Format() string    { return "apkg" }
func (r *Renderer) Extension() string { return ".apkg" }

// Available probes an in-memory database; builds without cgo report the
// sqlite driver as unusable here
func (r *Renderer) Available() error {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return fmt.Errorf("sqlite unavailable: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("sqlite unavailable: %w", err)
	}
	return nil
}

// Render builds one note per sentence, attaching audio/<id>/<NN>.mp3 when
// it exists
func (r *Renderer) Render(l *lesson.Lesson) ([]byte, error) {
	deck := NewDeck(l.Title, l.ID)
	for _, s := range l.Sentences {
		deck.AddNote(Note{
			Number:    s.Number(),
			French:    s.French,
			Chinese:   s.Chinese,
			AudioFile: filepath.Join(r.outputDir, filepath.FromSlash(s.AudioPath(l.ID))),
		})
	}
	return deck.Bytes()
}
