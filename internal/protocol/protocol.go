// Package protocol implements the solver's line protocol: one move
// sequence per line on standard input, one score per line on standard
// output. Invalid positions produce an empty output line and a
// diagnostic on the error stream.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/phucnt/c4solver/internal/board"
	"github.com/phucnt/c4solver/internal/engine"
	"github.com/phucnt/c4solver/internal/storage"
)

// Protocol drives the solver from a line stream.
type Protocol struct {
	solver *engine.Solver
	store  *storage.Storage
	limits engine.Limits

	in  io.Reader
	out io.Writer
}

// New creates a protocol handler reading stdin and writing stdout.
func New(solver *engine.Solver) *Protocol {
	return &Protocol{
		solver: solver,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetLimits bounds every solve. The zero value keeps exact solving.
func (p *Protocol) SetLimits(limits engine.Limits) {
	p.limits = limits
}

// SetStore installs the persistent solve cache. Only exact scores are
// cached; depth-limited results depend on the limits in force.
func (p *Protocol) SetStore(store *storage.Storage) {
	p.store = store
}

// SetIO redirects the streams.
func (p *Protocol) SetIO(in io.Reader, out io.Writer) {
	p.in = in
	p.out = out
}

// Run processes lines until EOF.
func (p *Protocol) Run() error {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p.handleLine(line)
	}
	return scanner.Err()
}

func (p *Protocol) handleLine(line string) {
	pos, err := board.PositionFromMoves(line)
	if err != nil {
		log.Printf("invalid position %q: %v", line, err)
		fmt.Fprintln(p.out)
		return
	}

	exact := p.limits == (engine.Limits{})
	if exact && p.store != nil {
		if score, ok, err := p.store.LookupScore(pos.Key3()); err != nil {
			log.Printf("solve cache lookup: %v", err)
		} else if ok {
			fmt.Fprintln(p.out, score)
			if err := p.store.RecordSolve(0, 0, true); err != nil {
				log.Printf("solve cache stats: %v", err)
			}
			return
		}
	}

	res := p.solver.Solve(pos, p.limits)
	fmt.Fprintln(p.out, res.Score)

	if exact && res.Exact && p.store != nil {
		if err := p.store.SaveScore(pos.Key3(), res.Score); err != nil {
			log.Printf("solve cache store: %v", err)
		} else if err := p.store.RecordSolve(res.Nodes, res.Time, false); err != nil {
			log.Printf("solve cache stats: %v", err)
		}
	}
}
