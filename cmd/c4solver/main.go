package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/phucnt/c4solver/internal/engine"
	"github.com/phucnt/c4solver/internal/protocol"
	"github.com/phucnt/c4solver/internal/storage"
)

var (
	bookPath   = flag.String("book", "", "opening book file")
	maxDepth   = flag.Int("depth", 0, "maximum search depth in plies (0 = solve exactly)")
	moveTime   = flag.Duration("movetime", 0, "wall-clock budget per position (0 = no limit)")
	useCache   = flag.Bool("cache", false, "cache exact scores in the local database")
	verbose    = flag.Bool("verbose", false, "log per-depth search progress")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	solver := engine.NewSolver()

	// A missing or malformed book is not fatal: the solver searches the
	// opening plies itself.
	if *bookPath != "" {
		if err := solver.LoadBook(*bookPath); err != nil {
			log.Printf("running without opening book: %v", err)
		}
	}

	if *verbose {
		solver.OnInfo = func(info engine.Info) {
			log.Printf("depth %d: score %d, column %d, %d nodes in %s",
				info.Depth, info.Score, info.Column+1, info.Nodes, info.Time.Round(time.Millisecond))
		}
	}

	proto := protocol.New(solver)
	if *maxDepth > 0 || *moveTime > 0 {
		proto.SetLimits(engine.Limits{Depth: *maxDepth, MoveTime: *moveTime})
	}

	if *useCache {
		store, err := storage.NewStorage()
		if err != nil {
			log.Printf("running without solve cache: %v", err)
		} else {
			defer store.Close()
			proto.SetStore(store)
		}
	}

	if err := proto.Run(); err != nil {
		log.Fatal(err)
	}
}
