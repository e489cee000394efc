package render

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"codeberg.org/awtza/phrasebook/internal/lesson"
)

// Header labels shared by the tabular formats
var tableHeader = []string{"#", "Français", "中文"}

// CSVRenderer writes one row per sentence after a header row
type CSVRenderer struct{}

func (r *CSVRenderer) Format() string    { return "csv" }
func (r *CSVRenderer) Extension() string { return ".csv" }
func (r *CSVRenderer) Available() error  { return nil }

// Render writes (ordinal, French, Chinese) rows with \n line endings
func (r *CSVRenderer) Render(l *lesson.Lesson) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tableHeader); err != nil {
		return nil, err
	}
	for _, s := range l.Sentences {
		if err := w.Write([]string{strconv.Itoa(s.Ordinal), s.French, s.Chinese}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
