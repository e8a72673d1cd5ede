package engine

import "github.com/phucnt/c4solver/internal/board"

// Move ordering priorities. An immediate win always goes first, the
// forced block of an opponent win second; the principal variation and
// transposition-table moves outrank the rest, which fall back to the
// threat count a move creates.
const (
	scoreWinningMove  = 20000000
	scoreBlockingMove = 15000000
	scorePVMove       = 30000
	scoreTTMove       = 25000
)

// columnOrder explores the centre first and the edges last: central
// cells join more potential lines, so this order tightens alpha-beta
// windows earliest. For width 7 it is 3, 4, 2, 5, 1, 6, 0.
var columnOrder [board.Width]int

func init() {
	for i := 0; i < board.Width; i++ {
		columnOrder[i] = board.Width/2 + (2*(i%2)-1)*(i+1)/2
	}
}

// orderMoves fills the sorter with every move in the possible mask,
// most promising last-popped-first. pvMove and ttMove, when playable
// here, outrank ordinary moves but still yield to an immediate win or a
// forced block.
func orderMoves(p board.Position, possible uint64, ttMove, pvMove uint64, sorter *MoveSorter) {
	sorter.Reset()

	winningNow := p.WinningPosition() & possible
	opponentWins := p.OpponentWinningPosition() & possible

	tier := func(move uint64, base int) int {
		if move&winningNow != 0 {
			return scoreWinningMove
		}
		if opponentWins != 0 && move&opponentWins != 0 {
			return scoreBlockingMove
		}
		return base
	}

	var added uint64
	if pvMove != 0 && pvMove&possible != 0 {
		sorter.Add(pvMove, tier(pvMove, scorePVMove))
		added |= pvMove
	}
	if ttMove != 0 && ttMove&possible != 0 && ttMove&added == 0 {
		sorter.Add(ttMove, tier(ttMove, scoreTTMove))
		added |= ttMove
	}

	// Edge columns first: on equal scores the sorter pops in reverse Add
	// order, which leaves the centre on top.
	for i := board.Width - 1; i >= 0; i-- {
		col := columnOrder[i]
		move := possible & board.ColumnMask(col)
		if move == 0 || move&added != 0 {
			continue
		}
		sorter.Add(move, tier(move, p.MoveScore(move)))
	}
}
