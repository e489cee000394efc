package processor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"codeberg.org/awtza/phrasebook/internal"
	"codeberg.org/awtza/phrasebook/internal/audio"
)

// LessonResult is the outcome of one lesson
type LessonResult struct {
	ID             string
	Sentences      int
	Audio          audio.Stats
	Artifacts      int
	ArtifactErrors int
}

// Summary is the outcome of a build
type Summary struct {
	RunID        string
	Lessons      []LessonResult
	Audio        audio.Stats
	AudioSkipped bool
	Formats      []string
	IndexEntries int
	IndexFailed  bool
	Duration     time.Duration
}

func (s *Summary) add(r LessonResult) {
	s.Lessons = append(s.Lessons, r)
	s.Audio.Add(r.Audio)
}

// Failures returns the number of failed clips and artifacts
func (s *Summary) Failures() int {
	n := s.Audio.Failed
	for _, r := range s.Lessons {
		n += r.ArtifactErrors
	}
	if s.IndexFailed {
		n++
	}
	return n
}

// Table renders the summary for the terminal
func (s *Summary) Table() string {
	headers := []string{"Lesson", "Sentences", "Synthesized", "Skipped", "Failed", "Artifacts"}

	rows := make([][]string, 0, len(s.Lessons)+1)
	var sentences, artifacts int
	for _, r := range s.Lessons {
		rows = append(rows, []string{
			r.ID,
			strconv.Itoa(r.Sentences),
			strconv.Itoa(r.Audio.Synthesized),
			strconv.Itoa(r.Audio.Skipped),
			strconv.Itoa(r.Audio.Failed + r.ArtifactErrors),
			strconv.Itoa(r.Artifacts),
		})
		sentences += r.Sentences
		artifacts += r.Artifacts
	}
	rows = append(rows, []string{
		"total",
		strconv.Itoa(sentences),
		strconv.Itoa(s.Audio.Synthesized),
		strconv.Itoa(s.Audio.Skipped),
		strconv.Itoa(s.Failures()),
		strconv.Itoa(artifacts),
	})

	var b strings.Builder
	b.WriteString(internal.RenderTable(headers, rows, 1, 2, 3, 4, 5))
	b.WriteString("\n")

	formats := strings.Join(s.Formats, ", ")
	if formats == "" {
		formats = "none"
	}
	fmt.Fprintf(&b, "Formats: %s\n", formats)
	if s.AudioSkipped {
		b.WriteString("Audio: skipped\n")
	}
	if s.IndexFailed {
		b.WriteString("Index: failed\n")
	} else {
		fmt.Fprintf(&b, "Index: %d pages\n", s.IndexEntries)
	}
	fmt.Fprintf(&b, "Run %s finished in %s", s.RunID, s.Duration.Round(time.Millisecond))
	return b.String()
}
