package engine

import "github.com/phucnt/c4solver/internal/board"

type sorterEntry struct {
	move  uint64
	score int
}

// MoveSorter orders the moves of a single node. With at most Width
// moves the whole structure fits in a cache line, so an insertion sort
// beats any heap: Add keeps the entries sorted by ascending score and
// Next pops from the high end. Insertion is stable, which makes the
// order of equal-scored moves the reverse of their Add order; callers
// rely on that to express column preference.
type MoveSorter struct {
	size    int
	entries [board.Width]sorterEntry
}

// Add inserts a move with its ordering score.
func (ms *MoveSorter) Add(move uint64, score int) {
	pos := ms.size
	ms.size++
	for ; pos > 0 && ms.entries[pos-1].score > score; pos-- {
		ms.entries[pos] = ms.entries[pos-1]
	}
	ms.entries[pos] = sorterEntry{move: move, score: score}
}

// Next pops the highest-scored remaining move, or 0 when empty.
func (ms *MoveSorter) Next() uint64 {
	if ms.size == 0 {
		return 0
	}
	ms.size--
	return ms.entries[ms.size].move
}

// Reset empties the sorter.
func (ms *MoveSorter) Reset() {
	ms.size = 0
}
