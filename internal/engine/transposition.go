package engine

import (
	"github.com/phucnt/c4solver/internal/util"
)

// Flag indicates the kind of bound a table entry carries.
type Flag uint8

const (
	FlagNone  Flag = iota // empty slot
	FlagExact             // exact score
	FlagLower             // beta cutoff: true value >= Score
	FlagUpper             // failed low: true value <= Score
)

// Entry is one transposition-table slot. Only the low 32 bits of the
// position key are kept; a false positive needs both a partial-key match
// and a slot collision, which is rare enough that bounds-driven search
// stays correct in practice.
type Entry struct {
	Key   uint32
	Score int32
	Depth uint8
	Flag  Flag
	Move  uint8 // best column + 1; 0 when unknown
}

// TranspositionTable is a fixed-size associative store keyed by position.
// The slot count is the smallest prime >= 2^logSize: indexing by a prime
// modulus scatters the near-sequential keys of adjacent game positions.
type TranspositionTable struct {
	entries []Entry
	size    uint64

	probes uint64
	hits   uint64
}

// NewTranspositionTable allocates a table of the smallest prime number
// of slots at least 2^logSize.
func NewTranspositionTable(logSize int) *TranspositionTable {
	size := util.NextPrime(1 << logSize)
	return &TranspositionTable{
		entries: make([]Entry, size),
		size:    size,
	}
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key % tt.size
}

// Probe looks the position up. The boolean is false on an empty slot or
// a partial-key mismatch.
func (tt *TranspositionTable) Probe(key uint64) (Entry, bool) {
	tt.probes++
	e := tt.entries[tt.index(key)]
	if e.Flag != FlagNone && e.Key == uint32(key) {
		tt.hits++
		return e, true
	}
	return Entry{}, false
}

// Store writes an entry, keeping the incumbent when it was searched
// deeper: shallow results must not evict entries that were expensive to
// compute. An empty slot has depth 0 and is always taken.
func (tt *TranspositionTable) Store(key uint64, score int, depth int, flag Flag, move int) {
	e := &tt.entries[tt.index(key)]
	if int(e.Depth) > depth && e.Flag != FlagNone {
		return
	}
	*e = Entry{
		Key:   uint32(key),
		Score: int32(score),
		Depth: uint8(depth),
		Flag:  flag,
		Move:  uint8(move),
	}
}

// Reset zeroes every slot and the counters.
func (tt *TranspositionTable) Reset() {
	for i := range tt.entries {
		tt.entries[i] = Entry{}
	}
	tt.probes = 0
	tt.hits = 0
}

// Size returns the slot count.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// HitRate returns the probe hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}
