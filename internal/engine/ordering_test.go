package engine

import (
	"testing"

	"github.com/phucnt/c4solver/internal/board"
)

func TestColumnOrderCentreOut(t *testing.T) {
	want := [board.Width]int{3, 4, 2, 5, 1, 6, 0}
	if columnOrder != want {
		t.Errorf("columnOrder = %v, want %v", columnOrder, want)
	}
}

func TestOrderMovesWinningFirst(t *testing.T) {
	p := position(t, "112233")

	var sorter MoveSorter
	orderMoves(p, p.Possible(), 0, 0, &sorter)

	first := sorter.Next()
	if first&board.ColumnMask(3) == 0 {
		t.Errorf("first move %#x is not the winning drop in column 4", first)
	}
}

func TestOrderMovesBlockingFirst(t *testing.T) {
	// No win available, but column 6 must be blocked.
	p := position(t, "131425")

	var sorter MoveSorter
	orderMoves(p, p.Possible(), 0, 0, &sorter)

	first := sorter.Next()
	if first&board.ColumnMask(5) == 0 {
		t.Errorf("first move %#x is not the forced block", first)
	}
}

func TestOrderMovesPVOutranksRest(t *testing.T) {
	p := position(t, "44")
	pv := p.Possible() & board.ColumnMask(0)

	var sorter MoveSorter
	orderMoves(p, p.Possible(), 0, pv, &sorter)

	if first := sorter.Next(); first != pv {
		t.Errorf("first move %#x, want the PV move %#x", first, pv)
	}
}

func TestOrderMovesYieldsEveryMoveOnce(t *testing.T) {
	p := position(t, "445566")

	var sorter MoveSorter
	orderMoves(p, p.Possible(), 0, 0, &sorter)

	var seen uint64
	count := 0
	for move := sorter.Next(); move != 0; move = sorter.Next() {
		if move&seen != 0 {
			t.Fatalf("move %#x yielded twice", move)
		}
		seen |= move
		count++
	}
	if seen != p.Possible() || count != board.Width {
		t.Errorf("yielded %d moves covering %#x, want %d covering %#x",
			count, seen, board.Width, p.Possible())
	}
}
