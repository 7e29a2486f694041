package spreadsheet

import (
	"cmp"
	"regexp"

	"github.com/xuri/excelize/v2"
)

const (
	MaxRows = 16384
	MaxCols = 16384
)

// Position is a zero-based (row, column) cell address. It is comparable and
// used directly as a map key by the sheet and the dependency sets.
type Position struct {
	Row int
	Col int
}

// PositionNone is the distinguished invalid position
var PositionNone = Position{Row: -1, Col: -1}

// cellNamePattern is the only textual form accepted for a position:
// upper-case column letters followed by a one-based row number.
var cellNamePattern = regexp.MustCompile(`^[A-Z]{1,3}[0-9]{1,5}$`)

// IsValid reports whether the position lies inside the addressable grid
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < MaxRows && p.Col >= 0 && p.Col < MaxCols
}

// Compare orders positions row first, then column
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Row, other.Row); c != 0 {
		return c
	}
	return cmp.Compare(p.Col, other.Col)
}

// String renders the position as a cell name such as "A1" or "XFD16384".
// invalid positions render as the empty string.
func (p Position) String() string {
	if !p.IsValid() {
		return ""
	}
	name, err := excelize.CoordinatesToCellName(p.Col+1, p.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// PositionFromString parses a cell name. malformed or out-of-grid input
// yields PositionNone.
func PositionFromString(s string) Position {
	if !cellNamePattern.MatchString(s) {
		return PositionNone
	}
	col, row, err := excelize.CellNameToCoordinates(s)
	if err != nil {
		return PositionNone
	}
	pos := Position{Row: row - 1, Col: col - 1}
	if !pos.IsValid() {
		return PositionNone
	}
	return pos
}

// Size is a (rows, cols) extent
type Size struct {
	Rows int
	Cols int
}
