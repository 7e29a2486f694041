package spreadsheet

import (
	"fmt"
	"strconv"
	"testing"
)

func mustSet(b *testing.B, s *Sheet, address string, text string) {
	b.Helper()
	if err := s.SetCell(PositionFromString(address), text); err != nil {
		b.Fatalf("Set(%s, %q): %v", address, text, err)
	}
}

func mustValue(b *testing.B, s *Sheet, address string) Value {
	b.Helper()
	cell, err := s.Cell(PositionFromString(address))
	if err != nil || cell == nil {
		b.Fatalf("Cell(%s): %v", address, err)
	}
	return cell.Value()
}

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()

		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				pos := Position{Row: row, Col: col}
				if err := s.SetCell(pos, strconv.Itoa((row+1)*(col+1))); err != nil {
					b.Fatal(err)
				}
			}
		}
	}
}

func BenchmarkFormulaParsing(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseFormula("(A1+B2*3)/(C3-D4)+-E5"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSheet()

	mustSet(b, s, "A1", "1")
	for i := 2; i <= 1000; i++ {
		mustSet(b, s, fmt.Sprintf("A%d", i), fmt.Sprintf("=A%d+1", i-1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustSet(b, s, "A1", strconv.Itoa(i))
		mustValue(b, s, "A1000")
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSheet()

	mustSet(b, s, "A1", "100")
	for i := 2; i <= 500; i++ {
		mustSet(b, s, fmt.Sprintf("B%d", i), "=A1*2")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustSet(b, s, "A1", strconv.Itoa(i))
		for row := 2; row <= 500; row++ {
			mustValue(b, s, fmt.Sprintf("B%d", row))
		}
	}
}

func BenchmarkManySmallFormulas(b *testing.B) {
	s := NewSheet()

	for row := 1; row <= 100; row++ {
		mustSet(b, s, fmt.Sprintf("A%d", row), strconv.Itoa(row))
		mustSet(b, s, fmt.Sprintf("B%d", row), fmt.Sprintf("=A%d*2", row))
		mustSet(b, s, fmt.Sprintf("C%d", row), fmt.Sprintf("=B%d+A%d", row, row))
		mustSet(b, s, fmt.Sprintf("D%d", row), fmt.Sprintf("=C%d/2", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		row := i%100 + 1
		mustSet(b, s, fmt.Sprintf("A%d", row), strconv.Itoa(i))
		mustValue(b, s, fmt.Sprintf("D%d", row))
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	s := NewSheet()

	mustSet(b, s, "A1", "=B1+C1")
	mustSet(b, s, "B1", "=C1+D1")
	mustSet(b, s, "C1", "=D1+E1")
	mustSet(b, s, "D1", "=E1+F1")
	mustSet(b, s, "E1", "=F1+G1")
	mustSet(b, s, "F1", "=G1+H1")
	mustSet(b, s, "G1", "=H1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetCell(PositionFromString("H1"), "=A1"); err == nil {
			b.Fatal("cycle accepted")
		}
	}
}

// BenchmarkDirtyPropagation changes the corner of a grid where every cell
// reads its left and top neighbours, so a single update reaches every cell
// over many paths
func BenchmarkDirtyPropagation(b *testing.B) {
	s := NewSheet()

	const grid = 20
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			pos := Position{Row: row, Col: col}
			left := Position{Row: row, Col: col - 1}
			top := Position{Row: row - 1, Col: col}

			var text string
			switch {
			case row == 0 && col == 0:
				text = "1"
			case row == 0:
				text = fmt.Sprintf("=%s+1", left)
			case col == 0:
				text = fmt.Sprintf("=%s+1", top)
			default:
				text = fmt.Sprintf("=%s+%s", left, top)
			}
			mustSet(b, s, pos.String(), text)
		}
	}
	corner := Position{Row: grid - 1, Col: grid - 1}.String()
	mustValue(b, s, corner)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustSet(b, s, "A1", strconv.Itoa(i%100))
		mustValue(b, s, corner)
	}
}
