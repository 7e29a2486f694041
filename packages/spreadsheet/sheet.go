package spreadsheet

import "fmt"

// Sheet owns every cell, keyed by position. cells refer to each other by
// position only and resolve through the sheet on demand.
//
// A Sheet has no internal locking; callers sharing one across goroutines
// must allow a single caller at a time, readers included.
type Sheet struct {
	cells map[Position]*Cell

	// onInvalidate, when set, observes every cache invalidation
	onInvalidate func(Position)
}

// NewSheet creates an empty sheet
func NewSheet() *Sheet {
	return &Sheet{
		cells: make(map[Position]*Cell),
	}
}

// SetCell sets the text of the cell at pos, creating the cell if needed.
// a cell created only for a Set that failed is discarded again.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	cell, existed := s.cells[pos]
	if !existed {
		cell = s.getOrCreateCell(pos)
	}

	if err := cell.Set(text); err != nil {
		if !existed && !cell.IsReferenced() {
			delete(s.cells, pos)
		}
		return err
	}
	return nil
}

// Cell returns the cell at pos, or nil if no cell exists there
func (s *Sheet) Cell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, invalidPositionError(pos)
	}
	return s.cells[pos], nil
}

// ClearCell empties the cell at pos. the cell stays in the sheet as an
// empty cell, so handles obtained from Cell remain attached.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	if cell := s.cells[pos]; cell != nil {
		cell.Clear()
	}
	return nil
}

// Len returns the number of cells held, including empty placeholders
func (s *Sheet) Len() int {
	return len(s.cells)
}

func (s *Sheet) cellOrNil(pos Position) *Cell {
	return s.cells[pos]
}

// getOrCreateCell returns the cell at pos, installing an empty one first if
// there is none
func (s *Sheet) getOrCreateCell(pos Position) *Cell {
	if cell, exists := s.cells[pos]; exists {
		return cell
	}
	cell := newCell(s, pos)
	s.cells[pos] = cell
	return cell
}

func (s *Sheet) dependentsOf(pos Position) positionSet {
	if cell := s.cells[pos]; cell != nil {
		return cell.dependents
	}
	return nil
}

func (s *Sheet) effectsOf(pos Position) positionSet {
	if cell := s.cells[pos]; cell != nil {
		return cell.effects
	}
	return nil
}

func invalidPositionError(pos Position) error {
	return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, pos.Row, pos.Col)
}
