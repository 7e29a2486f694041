package spreadsheet

import (
	"fmt"
	"regexp"

	"github.com/xuri/efp"
)

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCell
	TokenUnaryPrefixOp
	TokenBinaryOp
	TokenLeftParen
	TokenRightParen
)

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
)

// UnaryOp represents unary operators in AST nodes
type UnaryOp int

const (
	UnaryOpPlus UnaryOp = iota
	UnaryOpMinus
)

// TokenState represents the lexer state for validation
type TokenState int

const (
	StateStart TokenState = iota
	StateAfterValue
	StateAfterOperator
	StateAfterLeftParen
	StateAfterRightParen
)

// tokenTransitions maps the current state to valid next token types
var tokenTransitions = map[TokenState]map[TokenType]bool{
	StateStart: {
		TokenUnaryPrefixOp: true, // unary +/-
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
	},
	StateAfterValue: { // after number or cell
		TokenBinaryOp:   true,
		TokenRightParen: true,
		TokenEOF:        true,
	},
	StateAfterOperator: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
		TokenUnaryPrefixOp: true, // only unary after binary
	},
	StateAfterLeftParen: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true, // nested
		TokenUnaryPrefixOp: true,
	},
	StateAfterRightParen: {
		TokenBinaryOp:   true,
		TokenRightParen: true, // if nested
		TokenEOF:        true,
	},
}

// cellTokenPattern matches anything shaped like a cell reference. whether
// it actually lies inside the grid is decided later, by the parser.
var cellTokenPattern = regexp.MustCompile(`^[A-Z]+[0-9]+$`)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // index in the tokenizer output
}

// Lexer turns formula source (without the leading '=') into tokens. the
// character level work is done by the efp Excel formula tokenizer; the lexer
// narrows its output down to the arithmetic subset and validates token order.
type Lexer struct {
	input      string
	state      TokenState
	parenDepth int
	tokens     []Token
}

// NewLexer creates a new lexer for the given formula expression
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		state:  StateStart,
		tokens: []Token{},
	}
}

// Tokenize tokenizes the entire input. the returned slice always ends with a
// TokenEOF token when err is nil.
func (l *Lexer) Tokenize() (tokens []Token, err error) {
	raw, err := l.scan()
	if err != nil {
		return nil, err
	}

	for i, r := range raw {
		if r.TType == efp.TokenTypeWhitespace {
			continue
		}
		tok, err := l.convert(r, i)
		if err != nil {
			return nil, err
		}
		if !l.validateTransition(tok.Type) {
			return nil, fmt.Errorf("unexpected token %q at %d", tok.Value, tok.Pos)
		}
		l.tokens = append(l.tokens, tok)
		l.updateState(tok.Type)
	}

	if !l.validateTransition(TokenEOF) {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	if l.parenDepth > 0 {
		return nil, fmt.Errorf("unbalanced parentheses: missing closing parenthesis")
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Pos: len(raw)})
	return l.tokens, nil
}

// scan runs the efp tokenizer. efp works on the full "=..." form and does
// not report errors, so malformed input that trips it up is recovered here.
func (l *Lexer) scan() (raw []efp.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("tokenizer failure: %v", r)
		}
	}()

	ps := efp.ExcelParser()
	raw = ps.Parse("=" + l.input)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return raw, nil
}

// convert maps one efp token to a formula token
func (l *Lexer) convert(r efp.Token, pos int) (Token, error) {
	tok := Token{Value: r.TValue, Pos: pos}

	switch r.TType {
	case efp.TokenTypeOperand:
		switch r.TSubType {
		case efp.TokenSubTypeNumber:
			tok.Type = TokenNumber
		case efp.TokenSubTypeRange:
			if !cellTokenPattern.MatchString(r.TValue) {
				return tok, fmt.Errorf("invalid %s %q at %d", operandKind(r.TValue), r.TValue, pos)
			}
			tok.Type = TokenCell
		default:
			return tok, fmt.Errorf("unsupported operand %q at %d", r.TValue, pos)
		}

	case efp.TokenTypeOperatorPrefix:
		if r.TValue != "-" && r.TValue != "+" {
			return tok, fmt.Errorf("unsupported prefix operator %q at %d", r.TValue, pos)
		}
		tok.Type = TokenUnaryPrefixOp

	case efp.TokenTypeOperatorInfix:
		switch r.TValue {
		case "+", "-", "*", "/":
			tok.Type = TokenBinaryOp
		default:
			return tok, fmt.Errorf("unsupported operator %q at %d", r.TValue, pos)
		}

	case efp.TokenTypeSubexpression:
		switch r.TSubType {
		case efp.TokenSubTypeStart:
			tok.Type = TokenLeftParen
			tok.Value = "("
			l.parenDepth++
		case efp.TokenSubTypeStop:
			tok.Type = TokenRightParen
			tok.Value = ")"
			l.parenDepth--
			if l.parenDepth < 0 {
				return tok, fmt.Errorf("unbalanced parentheses: unmatched ')' at %d", pos)
			}
		default:
			return tok, fmt.Errorf("malformed subexpression at %d", pos)
		}

	case efp.TokenTypeFunction:
		return tok, fmt.Errorf("functions are not supported: %q at %d", r.TValue, pos)

	default:
		return tok, fmt.Errorf("unexpected token %q at %d", r.TValue, pos)
	}

	return tok, nil
}

// operandKind names what a rejected range operand looks like. efp files
// numbers it cannot parse, such as "1e400" or "1.2.3", under ranges.
func operandKind(value string) string {
	if value != "" && (value[0] >= '0' && value[0] <= '9' || value[0] == '.') {
		return "number"
	}
	return "cell reference"
}

// validateTransition checks if the token type is valid in current state
func (l *Lexer) validateTransition(tokenType TokenType) bool {
	validTokens, exists := tokenTransitions[l.state]
	if !exists {
		return false
	}
	return validTokens[tokenType]
}

// updateState updates the lexer state based on the token type
func (l *Lexer) updateState(tokenType TokenType) {
	switch tokenType {
	case TokenNumber, TokenCell:
		l.state = StateAfterValue
	case TokenUnaryPrefixOp, TokenBinaryOp:
		l.state = StateAfterOperator
	case TokenLeftParen:
		l.state = StateAfterLeftParen
	case TokenRightParen:
		l.state = StateAfterRightParen
	}
}
