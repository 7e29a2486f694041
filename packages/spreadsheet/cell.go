package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
)

const (
	FormulaSign = '='
	EscapeSign  = '\''
)

// content is what a cell holds: emptyContent, textContent or
// formulaContent. every use site switches over exactly these three.
type content interface {
	isContent()
}

type emptyContent struct{}

type textContent struct {
	text string
}

type formulaContent struct {
	formula *Formula
}

func (emptyContent) isContent()   {}
func (textContent) isContent()    {}
func (formulaContent) isContent() {}

// cacheState is either invalid or holds the value computed for the current
// content
type cacheState struct {
	valid bool
	value Value
}

// Cell is one addressable unit of a Sheet. it never holds other cells
// directly; edges are positions resolved through the owning sheet.
//
// A cell is not safe for concurrent use. reading a value memoizes it, so
// even readers need external synchronization.
type Cell struct {
	sheet      *Sheet
	pos        Position
	content    content
	dependents positionSet // cells this cell's formula reads
	effects    positionSet // cells whose formulas read this cell
	cache      cacheState
}

func newCell(sheet *Sheet, pos Position) *Cell {
	return &Cell{
		sheet:      sheet,
		pos:        pos,
		content:    emptyContent{},
		dependents: newPositionSet(),
		effects:    newPositionSet(),
	}
}

// Position returns the address of the cell
func (c *Cell) Position() Position {
	return c.pos
}

// Set replaces the content of the cell. text starting with '=' and longer
// than one character is parsed as a formula. on error (ErrFormulaSyntax or
// ErrCircularDependency) nothing changes.
func (c *Cell) Set(text string) error {
	next, err := makeContent(text)
	if err != nil {
		return err
	}

	if c.isCyclic(next) {
		return fmt.Errorf("%w: formula in %s refers back to it", ErrCircularDependency, c.pos)
	}

	c.content = next
	c.rebuildEdges()
	c.invalidateAll()
	return nil
}

// Clear empties the cell. it stays in the graph if other cells read it.
func (c *Cell) Clear() {
	c.content = emptyContent{}
	c.rebuildEdges()
	c.invalidateAll()
}

// Value returns the computed value, evaluating and memoizing it if needed
func (c *Cell) Value() Value {
	if c.cache.valid {
		return c.cache.value
	}

	var v Value
	switch ct := c.content.(type) {
	case emptyContent:
		v = TextValue("")
	case textContent:
		if ct.text[0] == EscapeSign {
			v = TextValue(ct.text[1:])
		} else {
			v = TextValue(ct.text)
		}
	case formulaContent:
		v = ct.formula.Evaluate(c.lookup)
	default:
		panic(fmt.Sprintf("unexpected cell content %T", ct))
	}

	c.cache = cacheState{valid: true, value: v}
	return v
}

// Text returns the stored text. formulas come back in canonical form.
func (c *Cell) Text() string {
	switch ct := c.content.(type) {
	case emptyContent:
		return ""
	case textContent:
		return ct.text
	case formulaContent:
		return string(FormulaSign) + ct.formula.Expression()
	default:
		panic(fmt.Sprintf("unexpected cell content %T", ct))
	}
}

// ReferencedCells lists the positions read by the cell's formula
func (c *Cell) ReferencedCells() []Position {
	return referencedCells(c.content)
}

func (c *Cell) IsEmpty() bool {
	_, ok := c.content.(emptyContent)
	return ok
}

// IsReferenced reports whether the cell takes part in any dependency edge
func (c *Cell) IsReferenced() bool {
	return len(c.dependents) > 0 || len(c.effects) > 0
}

func makeContent(text string) (content, error) {
	if text == "" {
		return emptyContent{}, nil
	}
	if text[0] == FormulaSign && len(text) > 1 {
		formula, err := ParseFormula(text[1:])
		if err != nil {
			return nil, err
		}
		return formulaContent{formula: formula}, nil
	}
	return textContent{text: text}, nil
}

func referencedCells(ct content) []Position {
	switch ct := ct.(type) {
	case formulaContent:
		return ct.formula.ReferencedCells()
	case emptyContent, textContent:
		return nil
	default:
		panic(fmt.Sprintf("unexpected cell content %T", ct))
	}
}

// isCyclic reports whether installing next would make the cell reachable
// from itself over dependents edges. cells that do not exist yet have no
// edges, so the search only reads the sheet.
func (c *Cell) isCyclic(next content) bool {
	refs := referencedCells(next)
	if len(refs) == 0 {
		return false
	}
	return !walk(refs, c.sheet.dependentsOf, func(pos Position) bool {
		return pos != c.pos
	})
}

// rebuildEdges replaces the dependents of the cell with the references of
// its current content, keeping the effects of the other side symmetric.
// referenced positions that have no cell yet get an empty one.
func (c *Cell) rebuildEdges() {
	for pos := range c.dependents {
		if dep := c.sheet.cellOrNil(pos); dep != nil {
			dep.effects.remove(c.pos)
		}
	}
	c.dependents = newPositionSet()

	for _, pos := range c.ReferencedCells() {
		dep := c.sheet.getOrCreateCell(pos)
		c.dependents.add(pos)
		dep.effects.add(c.pos)
	}
}

func (c *Cell) invalidate() {
	c.cache = cacheState{}
	if c.sheet.onInvalidate != nil {
		c.sheet.onInvalidate(c.pos)
	}
}

// invalidateAll drops the cache of the cell and of every cell that reads
// it, directly or transitively, touching each one once
func (c *Cell) invalidateAll() {
	c.invalidate()
	walk(c.effects.sorted(), c.sheet.effectsOf, func(pos Position) bool {
		if cell := c.sheet.cellOrNil(pos); cell != nil {
			cell.invalidate()
		}
		return true
	})
}

// lookup converts the value of a referenced cell into an operand
func (c *Cell) lookup(pos Position) (float64, error) {
	ref := c.sheet.cellOrNil(pos)
	if ref == nil {
		return 0, nil
	}

	switch v := ref.Value().(type) {
	case NumberValue:
		return float64(v), nil
	case TextValue:
		text := ref.Text()
		if text == "" {
			return 0, nil
		}
		if text[0] == EscapeSign {
			return 0, NewFormulaError(ErrorCategoryValue)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, NewFormulaError(ErrorCategoryValue)
		}
		return f, nil
	case FormulaError:
		return 0, v
	default:
		panic(fmt.Sprintf("unexpected cell value %T", v))
	}
}
