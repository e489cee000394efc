package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"codeberg.org/awtza/phrasebook/internal/lesson"
)

// SheetName is the single worksheet of the exported workbook
const SheetName = "Phrases"

// XLSXRenderer writes a single-sheet workbook
type XLSXRenderer struct{}

func (r *XLSXRenderer) Format() string    { return "xlsx" }
func (r *XLSXRenderer) Extension() string { return ".xlsx" }
func (r *XLSXRenderer) Available() error  { return nil }

func (r *XLSXRenderer) Render(l *lesson.Lesson) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range l.Sentences {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{s.Ordinal, s.French, s.Chinese}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", s.Ordinal, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
