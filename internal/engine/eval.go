package engine

import (
	"math/bits"

	"github.com/phucnt/c4solver/internal/board"
)

// Heuristic weights. Terminal detection happens before evaluation, so
// these only have to rank quiet frontiers: open threes outrank potential
// twos, blocking outranks building, and the centre column feeds every
// non-vertical line.
const (
	centerWeight    = 3
	threatWeight    = 5
	oppThreatWeight = 6
	pairWeight      = 2
	oppPairWeight   = 3
)

// Evaluate statically scores a frontier position for the side to move.
// Higher is better. All pattern counts come from the same shift
// primitives the threat detector uses, on the full 49-bit boards.
func Evaluate(p board.Position) int {
	cur := p.Current & board.BoardMask
	opp := (p.Current ^ p.Mask) & board.BoardMask
	empty := ^p.Mask & board.BoardMask

	score := centerWeight * bits.OnesCount64(cur&board.ColumnMask(board.Width/2))

	// Three in a row with one completing cell open, both colours.
	score += threatWeight * bits.OnesCount64(board.ComputeWinningCells(cur, p.Mask))
	score -= oppThreatWeight * bits.OnesCount64(board.ComputeWinningCells(opp, p.Mask))

	// Two stones plus two empties inside a length-4 window, both colours.
	score += pairWeight * bits.OnesCount64(pairPatterns(cur, empty))
	score -= oppPairWeight * bits.OnesCount64(pairPatterns(opp, empty))

	return score
}

// pairPatterns marks the anchors of length-4 windows holding two of the
// given stones and two empty cells, in the four line directions. Only the
// arrangements XX.., ..XX, X.X. and .X.X are matched; X..X and .XX. are
// not.
func pairPatterns(stones, empty uint64) uint64 {
	shifts := [4]int{1, board.Height, board.Height + 1, board.Height + 2}

	var r uint64
	for _, s := range shifts {
		s1 := (stones >> s) & board.BoardMask
		s2 := (stones >> (2 * s)) & board.BoardMask
		s3 := (stones >> (3 * s)) & board.BoardMask
		e1 := empty >> s
		e2 := empty >> (2 * s)
		e3 := empty >> (3 * s)

		r |= stones & s1 & e2 & e3 // XX..
		r |= empty & e1 & s2 & s3  // ..XX
		r |= stones & e1 & s2 & e3 // X.X.
		r |= empty & s1 & e2 & s3  // .X.X
	}
	return r
}
