package spreadsheet

import "slices"

// positionSet is a set of positions, used for the edge sets of a cell and as
// the visited set of graph walks
type positionSet map[Position]struct{}

func newPositionSet(positions ...Position) positionSet {
	s := make(positionSet, len(positions))
	for _, pos := range positions {
		s[pos] = struct{}{}
	}
	return s
}

func (s positionSet) add(pos Position) {
	s[pos] = struct{}{}
}

func (s positionSet) has(pos Position) bool {
	_, ok := s[pos]
	return ok
}

func (s positionSet) remove(pos Position) {
	delete(s, pos)
}

// sorted returns the members in row-major order
func (s positionSet) sorted() []Position {
	result := make([]Position, 0, len(s))
	for pos := range s {
		result = append(result, pos)
	}
	slices.SortFunc(result, Position.Compare)
	return result
}

// walk visits every valid position reachable from start by following next,
// each exactly once, using an explicit work list instead of recursion so
// long dependency chains cannot exhaust the call stack. start positions are
// visited themselves. the walk stops as soon as visit returns false; the
// return value reports whether it ran to completion.
func walk(start []Position, next func(Position) positionSet, visit func(Position) bool) bool {
	visited := make(positionSet)
	stack := slices.Clone(start)

	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !pos.IsValid() || visited.has(pos) {
			continue
		}
		visited.add(pos)

		if !visit(pos) {
			return false
		}

		for adjacent := range next(pos) {
			if !visited.has(adjacent) {
				stack = append(stack, adjacent)
			}
		}
	}

	return true
}
