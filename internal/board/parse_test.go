package board

import (
	"errors"
	"testing"
)

func TestPositionFromMovesRejections(t *testing.T) {
	tests := []struct {
		seq   string
		index int
		kind  string
	}{
		{"44a", 2, "char"},
		{"8", 0, "char"},
		{"120", 2, "char"},
		{"1111111", 6, "full"},       // seventh drop into a full column
		{"12121217", 6, "completed"}, // the fourth stacked stone wins mid-sequence
		{"1122334", 6, "completed"},  // the final move may not finish the game either
	}

	for _, tt := range tests {
		_, err := PositionFromMoves(tt.seq)
		if err == nil {
			t.Errorf("PositionFromMoves(%q): expected error", tt.seq)
			continue
		}

		var index int
		switch tt.kind {
		case "char":
			var e InvalidCharError
			if !errors.As(err, &e) {
				t.Errorf("PositionFromMoves(%q): got %T, want InvalidCharError", tt.seq, err)
				continue
			}
			index = e.Index
		case "full":
			var e FullColumnError
			if !errors.As(err, &e) {
				t.Errorf("PositionFromMoves(%q): got %T, want FullColumnError", tt.seq, err)
				continue
			}
			index = e.Index
		case "completed":
			var e CompletedGameError
			if !errors.As(err, &e) {
				t.Errorf("PositionFromMoves(%q): got %T, want CompletedGameError", tt.seq, err)
				continue
			}
			index = e.Index
		}
		if index != tt.index {
			t.Errorf("PositionFromMoves(%q): offending index %d, want %d", tt.seq, index, tt.index)
		}
	}
}

func TestPositionFromMovesEmpty(t *testing.T) {
	p, err := PositionFromMoves("")
	if err != nil {
		t.Fatalf("empty sequence: %v", err)
	}
	if p != NewPosition() {
		t.Error("empty sequence should give the empty board")
	}
}

func TestGridRoundTrip(t *testing.T) {
	for _, seq := range []string{"", "4", "445566", "712273"} {
		p := mustPosition(t, seq)
		q, err := PositionFromGrid(p.String())
		if err != nil {
			t.Fatalf("PositionFromGrid of rendered %q: %v", seq, err)
		}
		if q != p {
			t.Errorf("grid round trip of %q changed the position:\n%s\nvs\n%s", seq, p, q)
		}
	}
}

func TestPositionFromGridSize(t *testing.T) {
	_, err := PositionFromGrid("x.o")
	var e GridSizeError
	if !errors.As(err, &e) {
		t.Fatalf("got %T, want GridSizeError", err)
	}
	if e.Got != 3 || e.Want != BoardSize {
		t.Errorf("GridSizeError = %+v", e)
	}
}
