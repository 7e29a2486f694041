package spreadsheet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		pos  Position
	}{
		{"A1", Position{Row: 0, Col: 0}},
		{"B1", Position{Row: 0, Col: 1}},
		{"A2", Position{Row: 1, Col: 0}},
		{"Z9", Position{Row: 8, Col: 25}},
		{"AA1", Position{Row: 0, Col: 26}},
		{"AZ10", Position{Row: 9, Col: 51}},
		{"BA1", Position{Row: 0, Col: 52}},
		{"ZZ100", Position{Row: 99, Col: 701}},
		{"AAA1", Position{Row: 0, Col: 702}},
		{"XFD16384", Position{Row: MaxRows - 1, Col: MaxCols - 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.pos, PositionFromString(c.name))
			assert.Equal(t, c.name, c.pos.String())
		})
	}
}

func TestPositionFromStringRejects(t *testing.T) {
	malformed := []string{
		"",
		"A",
		"1",
		"1A",
		"a1",
		"A0",
		"A01x",
		"$A$1",
		"Sheet1!A1",
		"AAAA1",
		"A123456",
		"XFE1",
		"A16385",
		" A1",
	}

	for _, s := range malformed {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, PositionNone, PositionFromString(s))
		})
	}
}

func TestPositionValidity(t *testing.T) {
	assert.True(t, Position{}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, PositionNone.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: MaxCols}.IsValid())
	assert.False(t, Position{Row: math.MinInt, Col: 0}.IsValid())

	assert.Equal(t, "", PositionNone.String())
	assert.Equal(t, "", Position{Row: MaxRows, Col: 0}.String())
}

func TestPositionCompare(t *testing.T) {
	a1 := Position{Row: 0, Col: 0}
	b1 := Position{Row: 0, Col: 1}
	a2 := Position{Row: 1, Col: 0}

	assert.Equal(t, 0, a1.Compare(a1))
	assert.Equal(t, -1, a1.Compare(b1))
	assert.Equal(t, -1, b1.Compare(a2))
	assert.Equal(t, 1, a2.Compare(b1))
}
