package engine

import "github.com/phucnt/c4solver/internal/board"

const (
	// winBase anchors terminal scores in depth-limited searches. It
	// dwarfs every heuristic magnitude, and the mover count subtracted
	// from it makes faster wins score higher.
	winBase  = 100000
	infinity = 1 << 30
)

// winScore is the value of winning with the next drop, in the scale of
// the current solve mode.
func (s *Solver) winScore(moves int) int {
	if s.exact {
		return (board.BoardSize + 1 - moves) / 2
	}
	return winBase - moves
}

// lossScore is the value of a position whose previous ply completed the
// opponent's line. It is the exact negation of the parent's winScore.
func (s *Solver) lossScore(moves int) int {
	if s.exact {
		return -(board.BoardSize + 2 - moves) / 2
	}
	return -(winBase - moves + 1)
}

// negamax returns a score for the side to move such that a result <=
// alpha is an upper bound on the true value, a result >= beta a lower
// bound, and anything in between exact.
//
// In exact mode (depth always covers the remaining plies) the search
// walks only non-losing moves and clamps the window by the provably
// reachable extremes. In depth-limited mode every playable move is
// searched and the frontier is scored by Evaluate.
func (s *Solver) negamax(p board.Position, alpha, beta, depth int) int {
	if s.nodes&4095 == 0 {
		s.checkStop()
	}
	if s.aborted {
		return 0
	}
	s.nodes++

	moves := p.MovesPlayed()
	if board.HasAlignment(p.Current ^ p.Mask) {
		return s.lossScore(moves)
	}
	if moves == board.BoardSize {
		return 0
	}
	if p.CanWinNext() {
		return s.winScore(moves)
	}
	if depth == 0 {
		return Evaluate(p)
	}

	var possible uint64
	if s.exact {
		possible = p.PossibleNonLosingMoves()
		if possible == 0 {
			// Whatever we play, the opponent wins on the following ply.
			return -(board.BoardSize - moves) / 2
		}
		if moves >= board.BoardSize-2 {
			return 0
		}
		if min := -(board.BoardSize - 2 - moves) / 2; alpha < min {
			alpha = min
			if alpha >= beta {
				return alpha
			}
		}
		if max := (board.BoardSize - 1 - moves) / 2; beta > max {
			beta = max
			if alpha >= beta {
				return beta
			}
		}
	} else {
		possible = p.Possible()
	}

	key := p.Key()
	var ttMove uint64
	if e, ok := s.tt.Probe(key); ok {
		if int(e.Depth) >= depth {
			switch e.Flag {
			case FlagExact:
				return int(e.Score)
			case FlagLower:
				if v := int(e.Score); v > alpha {
					alpha = v
				}
			case FlagUpper:
				if v := int(e.Score); v < beta {
					beta = v
				}
			}
			if alpha >= beta {
				return int(e.Score)
			}
		}
		if e.Move > 0 {
			ttMove = possible & board.ColumnMask(int(e.Move)-1)
		}
	}

	if s.exact && s.book.Depth() >= moves {
		if v := s.book.Get(p); v != 0 {
			return v + board.MinScore - 1
		}
	}

	var sorter MoveSorter
	orderMoves(p, possible, ttMove, 0, &sorter)

	alphaOrig := alpha
	best := -infinity
	var bestMove uint64
	first := true
	for move := sorter.Next(); move != 0; move = sorter.Next() {
		child := p
		child.Play(move)

		var score int
		if first {
			score = -s.negamax(child, -beta, -alpha, depth-1)
			first = false
		} else {
			// Null-window probe; re-search only when it beats alpha
			// without failing high.
			score = -s.negamax(child, -alpha-1, -alpha, depth-1)
			if score > alpha && score < beta {
				score = -s.negamax(child, -beta, -alpha, depth-1)
			}
		}
		if s.aborted {
			return 0
		}

		if score > best {
			best = score
			bestMove = move
			if best > alpha {
				alpha = best
			}
		}
		if alpha >= beta {
			s.tt.Store(key, best, depth, FlagLower, board.ColumnOf(bestMove)+1)
			return best
		}
	}

	flag, col := FlagUpper, 0
	if best > alphaOrig {
		flag, col = FlagExact, board.ColumnOf(bestMove)+1
	}
	s.tt.Store(key, best, depth, flag, col)
	return best
}
