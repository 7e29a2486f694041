package spreadsheet

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormulaErrorEquality(t *testing.T) {
	assert.True(t, NewFormulaError(ErrorCategoryRef) == NewFormulaError(ErrorCategoryRef))
	assert.False(t, NewFormulaError(ErrorCategoryRef) == NewFormulaError(ErrorCategoryDiv0))
	assert.Equal(t, ErrorCategoryValue, NewFormulaError(ErrorCategoryValue).Category())
}

func TestFormulaErrorText(t *testing.T) {
	assert.Equal(t, "#REF!", NewFormulaError(ErrorCategoryRef).String())
	assert.Equal(t, "#VALUE!", NewFormulaError(ErrorCategoryValue).String())
	assert.Equal(t, "#DIV/0!", NewFormulaError(ErrorCategoryDiv0).String())

	var err error = NewFormulaError(ErrorCategoryDiv0)
	var fe FormulaError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "#DIV/0!", err.Error())
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name     string
		value    Value
		expected string
	}{
		{"text", TextValue("abc"), "abc"},
		{"empty text", TextValue(""), ""},
		{"integer", NumberValue(42), "42"},
		{"fraction", NumberValue(0.25), "0.25"},
		{"negative", NumberValue(-1.5), "-1.5"},
		{"negative zero", NumberValue(math.Copysign(0, -1)), "0"},
		{"large", NumberValue(1e21), "1000000000000000000000"},
		{"infinity", NumberValue(math.Inf(1)), "#DIV/0!"},
		{"error", NewFormulaError(ErrorCategoryRef), "#REF!"},
		{"nil", nil, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, FormatValue(c.value))
		})
	}
}
