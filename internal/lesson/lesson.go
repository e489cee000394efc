package lesson

import (
	"path"

	"codeberg.org/awtza/phrasebook/internal"
)

// Sentence is one French phrase with its optional Chinese translation
type Sentence struct {
	Ordinal int    // 1-based position within the lesson
	French  string // Source text, sent to speech synthesis
	Chinese string // Translation, may be empty
}

// Number returns the zero-padded ordinal used in file names and headings
func (s Sentence) Number() string {
	return internal.FormatOrdinal(s.Ordinal)
}

// AudioPath returns the audio reference relative to the output directory,
// always with forward slashes: audio/<lesson-id>/<NN>.mp3
func (s Sentence) AudioPath(lessonID string) string {
	return path.Join("audio", lessonID, s.Number()+".mp3")
}

// Lesson is a named, ordered list of sentences loaded from one source file
type Lesson struct {
	ID            string
	Title         string
	TitleZh       string
	Description   string
	DescriptionZh string
	Sentences     []Sentence
	SourcePath    string
}

// Subtitle is the line shown under the page title
func (l *Lesson) Subtitle() string {
	if l.TitleZh != "" {
		return l.TitleZh
	}
	return l.ID
}

// Summary prefers the Chinese description over the French one
func (l *Lesson) Summary() string {
	if l.DescriptionZh != "" {
		return l.DescriptionZh
	}
	return l.Description
}
