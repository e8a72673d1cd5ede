package engine

import "testing"

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(10)

	if _, ok := tt.Probe(42); ok {
		t.Fatal("probe on an empty table hit")
	}

	tt.Store(42, -7, 12, FlagExact, 4)
	e, ok := tt.Probe(42)
	if !ok {
		t.Fatal("probe after store missed")
	}
	if e.Score != -7 || e.Depth != 12 || e.Flag != FlagExact || e.Move != 4 {
		t.Errorf("entry = %+v", e)
	}
}

func TestTranspositionTableKeyZero(t *testing.T) {
	// The empty board has key 0; an empty slot must not masquerade as
	// an exact score for it.
	tt := NewTranspositionTable(10)
	if _, ok := tt.Probe(0); ok {
		t.Fatal("empty slot reported as a hit for key 0")
	}
	tt.Store(0, 1, 42, FlagExact, 4)
	if e, ok := tt.Probe(0); !ok || e.Score != 1 {
		t.Errorf("stored key-0 entry not retrievable: %+v, %v", e, ok)
	}
}

func TestTranspositionTableDeepPreferred(t *testing.T) {
	tt := NewTranspositionTable(10)

	tt.Store(42, 5, 20, FlagExact, 1)
	tt.Store(42, 9, 3, FlagLower, 2) // shallower: must not evict
	if e, _ := tt.Probe(42); e.Depth != 20 || e.Score != 5 {
		t.Errorf("shallow store evicted a deep entry: %+v", e)
	}

	tt.Store(42, 9, 20, FlagLower, 2) // equal depth: replace
	if e, _ := tt.Probe(42); e.Score != 9 || e.Flag != FlagLower {
		t.Errorf("equal-depth store did not replace: %+v", e)
	}
}

func TestTranspositionTableCollision(t *testing.T) {
	tt := NewTranspositionTable(10)

	other := 42 + tt.Size() // same slot, different key
	tt.Store(42, 5, 10, FlagExact, 1)
	tt.Store(other, 8, 10, FlagExact, 2)

	if _, ok := tt.Probe(42); ok {
		t.Error("evicted key still probes as a hit")
	}
	if e, ok := tt.Probe(other); !ok || e.Score != 8 {
		t.Errorf("colliding key lost: %+v, %v", e, ok)
	}
}

func TestTranspositionTableReset(t *testing.T) {
	tt := NewTranspositionTable(10)
	tt.Store(42, 5, 10, FlagExact, 1)
	tt.Reset()
	if _, ok := tt.Probe(42); ok {
		t.Error("entry survived Reset")
	}
}

func TestTranspositionTableSizeIsPrime(t *testing.T) {
	tt := NewTranspositionTable(10)
	if tt.Size() < 1<<10 {
		t.Errorf("Size() = %d, want at least 2^10", tt.Size())
	}
	for d := uint64(2); d*d <= tt.Size(); d++ {
		if tt.Size()%d == 0 {
			t.Fatalf("Size() = %d is divisible by %d", tt.Size(), d)
		}
	}
}
