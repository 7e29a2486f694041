package spreadsheet

import (
	"io"
	"strings"
)

// PrintableSize returns the smallest area anchored at A1 that contains every
// non-empty cell
func (s *Sheet) PrintableSize() Size {
	var size Size
	for pos, cell := range s.cells {
		if cell.IsEmpty() {
			continue
		}
		size.Rows = max(size.Rows, pos.Row+1)
		size.Cols = max(size.Cols, pos.Col+1)
	}
	return size
}

// PrintValues writes the computed values of the printable area, one row per
// line, cells separated by tabs
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(cell *Cell) string {
		return FormatValue(cell.Value())
	})
}

// PrintTexts writes the stored texts of the printable area
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, (*Cell).Text)
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	size := s.PrintableSize()

	var line strings.Builder
	for row := 0; row < size.Rows; row++ {
		line.Reset()
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				line.WriteByte('\t')
			}
			if cell := s.cells[Position{Row: row, Col: col}]; cell != nil {
				line.WriteString(render(cell))
			}
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
