// Package storage persists solved positions and cumulative solve
// statistics in a local BadgerDB database, so repeated analysis of the
// same openings across runs skips the search entirely.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/phucnt/c4solver/internal/board"
)

// Storage keys
const (
	keyStats       = "stats"
	scoreKeyPrefix = "score/"
)

// SolveStats accumulates across every cached solve.
type SolveStats struct {
	PositionsSolved int           `json:"positions_solved"`
	CacheHits       int           `json:"cache_hits"`
	TotalNodes      uint64        `json:"total_nodes"`
	TotalTime       time.Duration `json:"total_time"`
	LastSolved      time.Time     `json:"last_solved"`
}

// Storage wraps BadgerDB for the persistent solve cache.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in an explicit directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // keep badger off the solver's diagnostic stream

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// scoreKey builds the database key for a position. Callers pass the
// reflection-canonical Key3, so a position and its mirror share a row.
func scoreKey(key uint64) []byte {
	buf := make([]byte, len(scoreKeyPrefix)+8)
	copy(buf, scoreKeyPrefix)
	binary.BigEndian.PutUint64(buf[len(scoreKeyPrefix):], key)
	return buf
}

// LookupScore returns the cached exact score for a position key. The
// value byte carries the same MinScore-1 offset as the opening book, so
// 0 never collides with a real score.
func (s *Storage) LookupScore(key uint64) (int, bool, error) {
	var score int
	var found bool

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(scoreKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 1 || val[0] == 0 {
				return nil
			}
			score = int(val[0]) + board.MinScore - 1
			found = true
			return nil
		})
	})

	return score, found, err
}

// SaveScore records the exact score for a position key.
func (s *Storage) SaveScore(key uint64, score int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(scoreKey(key), []byte{byte(score - board.MinScore + 1)})
	})
}

// LoadStats loads the cumulative statistics, empty when absent.
func (s *Storage) LoadStats() (*SolveStats, error) {
	stats := &SolveStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// SaveStats stores the cumulative statistics.
func (s *Storage) SaveStats(stats *SolveStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordSolve folds one solve into the statistics.
func (s *Storage) RecordSolve(nodes uint64, elapsed time.Duration, cacheHit bool) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	if cacheHit {
		stats.CacheHits++
	} else {
		stats.PositionsSolved++
		stats.TotalNodes += nodes
		stats.TotalTime += elapsed
	}
	stats.LastSolved = time.Now()

	return s.SaveStats(stats)
}
