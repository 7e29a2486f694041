package spreadsheet

import (
	"errors"
	"fmt"
	"slices"
)

// Formula is a parsed formula expression together with the cells it
// references
type Formula struct {
	root  ASTNode
	cells []Position // sorted, unique, valid only
}

// ParseFormula parses a formula expression given without its leading '='.
// every failure wraps ErrFormulaSyntax.
func ParseFormula(expression string) (*Formula, error) {
	tokens, err := NewLexer(expression).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormulaSyntax, err)
	}

	root, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormulaSyntax, err)
	}

	refs := make(positionSet)
	collectCells(root, refs)

	return &Formula{
		root:  root,
		cells: refs.sorted(),
	}, nil
}

// collectCells walks the tree and gathers every valid referenced position
func collectCells(node ASTNode, refs positionSet) {
	switch n := node.(type) {
	case *CellRefNode:
		if n.Cell.IsValid() {
			refs.add(n.Cell)
		}
	case *BinaryOpNode:
		collectCells(n.Left, refs)
		collectCells(n.Right, refs)
	case *UnaryOpNode:
		collectCells(n.Operand, refs)
	case *NumberNode:
		// leaf, no references
	}
}

// Evaluate computes the formula. the result is a NumberValue, or the first
// FormulaError met during evaluation.
func (f *Formula) Evaluate(lookup CellLookup) Value {
	result, err := f.root.Eval(lookup)
	if err != nil {
		var fe FormulaError
		if errors.As(err, &fe) {
			return fe
		}
		return NewFormulaError(ErrorCategoryValue)
	}
	return NumberValue(result)
}

// Expression renders the canonical text of the formula, without the '='
func (f *Formula) Expression() string {
	return f.root.ToString()
}

// ReferencedCells returns the referenced positions in row-major order
func (f *Formula) ReferencedCells() []Position {
	return slices.Clone(f.cells)
}
