package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phucnt/c4solver/internal/engine"
	"github.com/phucnt/c4solver/internal/storage"
)

func run(t *testing.T, input string, configure func(*Protocol)) []string {
	t.Helper()

	p := New(engine.NewSolver())
	var out bytes.Buffer
	p.SetIO(strings.NewReader(input), &out)
	if configure != nil {
		configure(p)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestRunScoresAndRejects(t *testing.T) {
	// A win in one, an invalid character, and a lost double threat.
	lines := run(t, "112233\n11x233\n4455662\n", nil)

	want := []string{"18", "", "-17"}
	if len(lines) != len(want) {
		t.Fatalf("got %d output lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRunSkipsBlankLines(t *testing.T) {
	lines := run(t, "\n   \n112233\n", nil)
	if len(lines) != 1 || lines[0] != "18" {
		t.Errorf("output = %q, want just the one score", lines)
	}
}

func TestRunUsesSolveCache(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	// Two solves of mirrored losing positions: the second is served
	// from the cache via the canonical key.
	lines := run(t, "4455662\n4433226\n", func(p *Protocol) {
		p.SetStore(store)
	})
	if len(lines) != 2 || lines[0] != "-17" || lines[1] != "-17" {
		t.Fatalf("output = %q, want two -17 lines", lines)
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.PositionsSolved != 1 || stats.CacheHits != 1 {
		t.Errorf("stats = %+v, want one solve and one cache hit", stats)
	}
}
