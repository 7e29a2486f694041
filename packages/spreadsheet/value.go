package spreadsheet

import (
	"math"
	"strconv"
)

// Value is the computed result of a cell. it is always exactly one of
// TextValue, NumberValue or FormulaError.
type Value interface {
	isValue()
}

// TextValue is a literal text result
type TextValue string

// NumberValue is a numeric result of a formula
type NumberValue float64

func (TextValue) isValue()    {}
func (NumberValue) isValue()  {}
func (FormulaError) isValue() {}

// ErrorCategory classifies evaluation errors following spreadsheet
// conventions
type ErrorCategory uint8

const (
	ErrorCategoryRef   ErrorCategory = 1 // #REF! - invalid cell reference
	ErrorCategoryValue ErrorCategory = 2 // #VALUE! - wrong type of operand
	ErrorCategoryDiv0  ErrorCategory = 3 // #DIV/0! - division by zero
)

// ErrorMapper maps error categories to their string representations
var ErrorMapper = map[ErrorCategory]string{
	ErrorCategoryRef:   "#REF!",
	ErrorCategoryValue: "#VALUE!",
	ErrorCategoryDiv0:  "#DIV/0!",
}

// FormulaError is an evaluation error carried as a cell value. two errors
// are equal when their categories are equal, so == can be used directly.
type FormulaError struct {
	category ErrorCategory
}

func NewFormulaError(category ErrorCategory) FormulaError {
	return FormulaError{category: category}
}

func (e FormulaError) Category() ErrorCategory {
	return e.category
}

func (e FormulaError) String() string {
	return ErrorMapper[e.category]
}

// Error lets evaluation return a FormulaError on the ordinary error path
func (e FormulaError) Error() string {
	return e.String()
}

// FormatValue renders a value the way it is printed in a grid dump
func FormatValue(v Value) string {
	switch v := v.(type) {
	case TextValue:
		return string(v)
	case NumberValue:
		return formatNumber(float64(v))
	case FormulaError:
		return v.String()
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return NewFormulaError(ErrorCategoryDiv0).String()
	}
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
