package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
)

// CellLookup resolves a referenced position to a number. a non-nil error
// is a FormulaError and stops the evaluation.
type CellLookup func(pos Position) (float64, error)

// ASTNode is a node of a parsed formula. Eval returns a FormulaError as the
// error when evaluation fails; the first error wins.
type ASTNode interface {
	Eval(lookup CellLookup) (float64, error)
	ToString() string
	precedence() exprPrecedence
}

// exprPrecedence classifies nodes for canonical printing
type exprPrecedence int

const (
	precAdd exprPrecedence = iota
	precSub
	precMul
	precDiv
	precUnary
	precAtom
)

// parenRule says which operand of a parent needs parentheses around a child
type parenRule uint8

const (
	parenNone  parenRule = 0
	parenLeft  parenRule = 1
	parenRight parenRule = 2
	parenBoth            = parenLeft | parenRight
)

// parenRules is indexed by [parent][child]
var parenRules = [precAtom + 1][precAtom + 1]parenRule{
	precAdd:   {parenNone, parenNone, parenNone, parenNone, parenNone, parenNone},
	precSub:   {parenRight, parenRight, parenNone, parenNone, parenNone, parenNone},
	precMul:   {parenBoth, parenBoth, parenNone, parenNone, parenNone, parenNone},
	precDiv:   {parenBoth, parenBoth, parenRight, parenRight, parenNone, parenNone},
	precUnary: {parenBoth, parenBoth, parenNone, parenNone, parenNone, parenNone},
	precAtom:  {parenNone, parenNone, parenNone, parenNone, parenNone, parenNone},
}

func printOperand(parent exprPrecedence, child ASTNode, side parenRule) string {
	s := child.ToString()
	if parenRules[parent][child.precedence()]&side != 0 {
		return "(" + s + ")"
	}
	return s
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(lookup CellLookup) (float64, error) {
	return n.Value, nil
}

func (n *NumberNode) ToString() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (n *NumberNode) precedence() exprPrecedence {
	return precAtom
}

// CellRefNode represents a cell reference. Cell is PositionNone when the
// reference is shaped like a cell name but falls outside the grid.
type CellRefNode struct {
	Cell Position
	Name string
}

func (n *CellRefNode) Eval(lookup CellLookup) (float64, error) {
	if !n.Cell.IsValid() {
		return 0, NewFormulaError(ErrorCategoryRef)
	}
	return lookup(n.Cell)
}

func (n *CellRefNode) ToString() string {
	if n.Cell.IsValid() {
		return n.Cell.String()
	}
	return n.Name
}

func (n *CellRefNode) precedence() exprPrecedence {
	return precAtom
}

// BinaryOpNode represents a binary operation
type BinaryOpNode struct {
	Op    BinaryOp
	Left  ASTNode
	Right ASTNode
}

func (n *BinaryOpNode) Eval(lookup CellLookup) (float64, error) {
	left, err := n.Left.Eval(lookup)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.Eval(lookup)
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.Op {
	case BinOpAdd:
		result = left + right
	case BinOpSubtract:
		result = left - right
	case BinOpMultiply:
		result = left * right
	case BinOpDivide:
		if right == 0 {
			return 0, NewFormulaError(ErrorCategoryDiv0)
		}
		result = left / right
	default:
		return 0, NewFormulaError(ErrorCategoryValue)
	}

	// overflow is reported the same way as division by zero
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, NewFormulaError(ErrorCategoryDiv0)
	}
	return result, nil
}

func (n *BinaryOpNode) ToString() string {
	opStr := ""
	switch n.Op {
	case BinOpAdd:
		opStr = "+"
	case BinOpSubtract:
		opStr = "-"
	case BinOpMultiply:
		opStr = "*"
	case BinOpDivide:
		opStr = "/"
	}
	prec := n.precedence()
	return printOperand(prec, n.Left, parenLeft) + opStr + printOperand(prec, n.Right, parenRight)
}

func (n *BinaryOpNode) precedence() exprPrecedence {
	switch n.Op {
	case BinOpAdd:
		return precAdd
	case BinOpSubtract:
		return precSub
	case BinOpMultiply:
		return precMul
	default:
		return precDiv
	}
}

// UnaryOpNode represents a unary operation
type UnaryOpNode struct {
	Op      UnaryOp
	Operand ASTNode
}

func (n *UnaryOpNode) Eval(lookup CellLookup) (float64, error) {
	val, err := n.Operand.Eval(lookup)
	if err != nil {
		return 0, err
	}
	if n.Op == UnaryOpMinus {
		return -val, nil
	}
	return val, nil
}

func (n *UnaryOpNode) ToString() string {
	opStr := "+"
	if n.Op == UnaryOpMinus {
		opStr = "-"
	}
	return opStr + printOperand(precUnary, n.Operand, parenLeft)
}

func (n *UnaryOpNode) precedence() exprPrecedence {
	return precUnary
}

// NewParser creates a new parser with the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses the tokens into an AST
func (p *Parser) Parse() (ASTNode, error) {
	if len(p.tokens) == 0 {
		return nil, fmt.Errorf("no tokens to parse")
	}

	node, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	// ensure we've consumed all tokens except EOF
	if p.pos < len(p.tokens) && p.tokens[p.pos].Type != TokenEOF {
		tok := p.tokens[p.pos]
		return nil, fmt.Errorf("unexpected token %q at %d after expression", tok.Value, tok.Pos)
	}

	return node, nil
}

// parseAddition handles addition and subtraction (lowest precedence)
func (p *Parser) parseAddition() (ASTNode, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp {
			break
		}

		var op BinaryOp
		switch tok.Value {
		case "+":
			op = BinOpAdd
		case "-":
			op = BinOpSubtract
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}

	return left, nil
}

// parseMultiplication handles multiplication and division
func (p *Parser) parseMultiplication() (ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp {
			break
		}

		var op BinaryOp
		switch tok.Value {
		case "*":
			op = BinOpMultiply
		case "/":
			op = BinOpDivide
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}

	return left, nil
}

// parseUnary handles unary operators
func (p *Parser) parseUnary() (ASTNode, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	tok := p.tokens[p.pos]
	if tok.Type != TokenUnaryPrefixOp {
		return p.parsePrimary()
	}

	op := UnaryOpPlus
	if tok.Value == "-" {
		op = UnaryOpMinus
	}

	p.pos++
	operand, err := p.parseUnary() // recurse for chained unary operators
	if err != nil {
		return nil, err
	}

	return &UnaryOpNode{
		Op:      op,
		Operand: operand,
	}, nil
}

// parsePrimary handles numbers, cell references and parentheses
func (p *Parser) parsePrimary() (ASTNode, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	tok := p.tokens[p.pos]

	switch tok.Type {
	case TokenNumber:
		p.pos++
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
			return nil, fmt.Errorf("invalid number %q at %d", tok.Value, tok.Pos)
		}
		return &NumberNode{
			Value: val,
		}, nil

	case TokenCell:
		p.pos++
		return p.parseCellReference(tok), nil

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAddition()
		if err != nil {
			return nil, err
		}

		if p.pos >= len(p.tokens) || p.tokens[p.pos].Type != TokenRightParen {
			return nil, fmt.Errorf("expected closing parenthesis for %q at %d", tok.Value, tok.Pos)
		}
		p.pos++

		return node, nil

	default:
		return nil, fmt.Errorf("unexpected token %q at %d", tok.Value, tok.Pos)
	}
}

// parseCellReference turns a cell token into a CellRefNode. names outside the
// grid still parse; they evaluate to #REF!.
func (p *Parser) parseCellReference(tok Token) ASTNode {
	return &CellRefNode{
		Cell: PositionFromString(tok.Value),
		Name: tok.Value,
	}
}
