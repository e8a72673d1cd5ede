// Package engine contains the solver: negamax with alpha-beta bounds
// and principal-variation refinement, a transposition table, move
// ordering, the frontier heuristic and the iterative-deepening /
// exact-solving façade.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/phucnt/c4solver/internal/board"
	"github.com/phucnt/c4solver/internal/book"
)

// TTLogSize sizes the transposition table; the slot count is the
// smallest prime >= 2^TTLogSize.
const TTLogSize = 24

// Limits bounds a solve. The zero value requests an exact solve: the
// search runs to the end of the game on an open clock.
type Limits struct {
	Depth    int           // maximum search depth in plies; 0 = unlimited
	MoveTime time.Duration // wall-clock budget; 0 = unlimited
}

// Result is the outcome of a solve.
type Result struct {
	Score  int
	Move   uint64 // single-bit cell mask of the best root move
	Column int    // 0-based column of Move
	Depth  int    // deepest completed search depth
	Nodes  uint64
	Time   time.Duration
	Exact  bool // Score is the game-theoretic value
}

// Info reports one completed deepening iteration to OnInfo.
type Info struct {
	Depth  int
	Score  int
	Column int
	Nodes  uint64
	Time   time.Duration
}

// Solver owns a transposition table and an optional opening book. A
// solver instance is single-threaded; concurrent analysis wants one
// instance per goroutine (the book may be shared, it is read-only).
type Solver struct {
	tt   *TranspositionTable
	book *book.Book
	tm   *TimeManager

	nodes    uint64
	aborted  bool
	stopFlag atomic.Bool

	// exact selects the scoring scale of the current solve; entries in
	// the transposition table are only meaningful within one scale.
	exact   bool
	modeSet bool

	// OnInfo, when set, receives progress after each completed
	// deepening iteration.
	OnInfo func(Info)
}

// NewSolver creates a solver with an empty table and no book.
func NewSolver() *Solver {
	return &Solver{
		tt: NewTranspositionTable(TTLogSize),
		tm: NewTimeManager(),
	}
}

// LoadBook loads an opening book file. On failure the solver keeps
// running without a book and the error is the caller's to report.
func (s *Solver) LoadBook(filename string) error {
	b, err := book.Load(filename)
	if err != nil {
		return err
	}
	s.book = b
	return nil
}

// SetBook installs an already-loaded book.
func (s *Solver) SetBook(b *book.Book) {
	s.book = b
}

// HasBook reports whether book lookups are available.
func (s *Solver) HasBook() bool {
	return s.book.Depth() >= 0
}

// Reset clears the transposition table and counters.
func (s *Solver) Reset() {
	s.tt.Reset()
	s.nodes = 0
	s.modeSet = false
}

// Stop asks a running solve to unwind at its next poll point.
func (s *Solver) Stop() {
	s.stopFlag.Store(true)
}

// Nodes returns the node count of the last solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// HitRate returns the transposition-table hit rate as a percentage.
func (s *Solver) HitRate() float64 {
	return s.tt.HitRate()
}

func (s *Solver) checkStop() {
	if s.stopFlag.Load() || s.tm.ShouldStop() {
		s.aborted = true
	}
}

// Solve returns the value and best move of a position from the side to
// move's perspective. With zero Limits the score is the exact
// game-theoretic value in [MinScore, MaxScore]; with a depth or time
// limit the solver runs iterative deepening and scores on the
// engine-internal scale where terminal lines are anchored far outside
// the heuristic range.
//
// The position must be legal and not already decided: the caller
// guarantees the opponent has not completed four in a row.
func (s *Solver) Solve(p board.Position, limits Limits) Result {
	start := time.Now()
	s.nodes = 0
	s.aborted = false
	s.stopFlag.Store(false)
	s.tm.Init(limits.MoveTime)

	exact := limits.Depth == 0 && limits.MoveTime == 0
	if s.modeSet && s.exact != exact {
		// The two modes score on different scales; entries from one
		// would corrupt the other.
		s.tt.Reset()
	}
	s.exact = exact
	s.modeSet = true

	// A win in one needs no search.
	if p.CanWinNext() {
		move := winningMove(p)
		return Result{
			Score:  s.winScore(p.MovesPlayed()),
			Move:   move,
			Column: board.ColumnOf(move),
			Depth:  1,
			Time:   time.Since(start),
			Exact:  exact,
		}
	}

	if exact {
		return s.solveExact(p, start)
	}
	return s.solveIterative(p, limits, start)
}

// winningMove returns the centre-most immediately winning drop.
func winningMove(p board.Position) uint64 {
	wins := p.WinningPosition() & p.Possible()
	for i := 0; i < board.Width; i++ {
		if move := wins & board.ColumnMask(columnOrder[i]); move != 0 {
			return move
		}
	}
	return 0
}

// solveExact narrows a null window around the true value: each probe
// answers "is the value above med". The probe starts at the midpoint of
// the interval; a midpoint lying between zero and min/2 (or max/2) is
// moved out to min/2 (or max/2).
func (s *Solver) solveExact(p board.Position, start time.Time) Result {
	moves := p.MovesPlayed()
	min := -(board.BoardSize - moves) / 2
	max := (board.BoardSize + 1 - moves) / 2

	for min < max && !s.aborted {
		med := min + (max-min)/2
		if med <= 0 && min/2 < med {
			med = min / 2
		} else if med >= 0 && max/2 > med {
			med = max / 2
		}
		if r := s.negamax(p, med, med+1, board.BoardSize); r <= med {
			max = r
		} else {
			min = r
		}
	}

	res := Result{
		Score: min,
		Depth: board.BoardSize - moves,
		Exact: !s.aborted,
	}
	res.Move = s.bestRootMove(p, res.Score)
	res.Column = board.ColumnOf(res.Move)
	res.Nodes = s.nodes
	res.Time = time.Since(start)
	return res
}

// bestRootMove recovers a move achieving the solved score. The table is
// still warm from the narrowing loop, so the null-window probes here
// are cheap.
func (s *Solver) bestRootMove(p board.Position, score int) uint64 {
	possible := p.PossibleNonLosingMoves()
	if possible == 0 {
		// Everything loses; resist from the centre out.
		possible = p.Possible()
	}
	for i := 0; i < board.Width; i++ {
		move := possible & board.ColumnMask(columnOrder[i])
		if move == 0 || s.aborted {
			continue
		}
		child := p
		child.Play(move)
		// Children of the narrowing loop were labelled one ply shallower
		// than the root, so probe at that depth to reuse their entries.
		if -s.negamax(child, -score, -score+1, board.BoardSize-1) >= score {
			return move
		}
	}
	for i := 0; i < board.Width; i++ {
		if move := p.Possible() & board.ColumnMask(columnOrder[i]); move != 0 {
			return move
		}
	}
	return 0
}

// solveIterative deepens from 1 ply, carrying the best move of each
// completed iteration into the ordering of the next. On time expiry the
// result of the last completed depth stands.
func (s *Solver) solveIterative(p board.Position, limits Limits, start time.Time) Result {
	remaining := board.BoardSize - p.MovesPlayed()
	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > remaining {
		maxDepth = remaining
	}

	var best Result
	var pvMove uint64
	for depth := 1; depth <= maxDepth; depth++ {
		score, move := s.searchRoot(p, depth, pvMove)
		if s.aborted {
			break
		}
		if move != 0 {
			best = Result{
				Score:  score,
				Move:   move,
				Column: board.ColumnOf(move),
				Depth:  depth,
			}
			pvMove = move
		}
		if s.OnInfo != nil {
			s.OnInfo(Info{
				Depth:  depth,
				Score:  score,
				Column: board.ColumnOf(move),
				Nodes:  s.nodes,
				Time:   time.Since(start),
			})
		}
		// A proven forced finish cannot improve with more depth.
		if score >= winBase-board.BoardSize || score <= -(winBase-board.BoardSize) {
			break
		}
	}

	if best.Move == 0 {
		// No depth completed in time; take the centre-most playable move.
		for i := 0; i < board.Width; i++ {
			if move := p.Possible() & board.ColumnMask(columnOrder[i]); move != 0 {
				best.Move = move
				best.Column = board.ColumnOf(move)
				break
			}
		}
	}
	best.Nodes = s.nodes
	best.Time = time.Since(start)
	return best
}

// searchRoot runs one full-window PVS pass over the root moves.
func (s *Solver) searchRoot(p board.Position, depth int, pvMove uint64) (int, uint64) {
	var sorter MoveSorter
	orderMoves(p, p.Possible(), 0, pvMove, &sorter)

	alpha, beta := -infinity, infinity
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
			score = -s.negamax(child, -alpha-1, -alpha, depth-1)
			if score > alpha && score < beta {
				score = -s.negamax(child, -beta, -alpha, depth-1)
			}
		}
		if s.aborted {
			return 0, 0
		}

		if score > best {
			best = score
			bestMove = move
			if best > alpha {
				alpha = best
			}
		}
	}
	return best, bestMove
}
