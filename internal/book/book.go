// Package book loads and serves the precomputed opening table: exact
// scores for every position up to the book's stored depth, keyed by the
// reflection-canonical base-3 position key.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/phucnt/c4solver/internal/board"
	"github.com/phucnt/c4solver/internal/util"
)

// Book is a read-only lookup table. The zero value (and a nil *Book)
// behaves as an absent book: Get always returns 0.
//
// On-disk layout, byte-exact:
//
//	1 byte  board width
//	1 byte  board height
//	1 byte  max stored depth in plies
//	1 byte  partial-key width in bytes (1, 2 or 4)
//	1 byte  value width in bytes (must be 1)
//	1 byte  log2 of the table size; the slot count is the smallest
//	        prime >= 2^log_size
//	then the key array (little-endian) and the value array, slot by slot.
type Book struct {
	depth   int
	size    uint64
	keyMask uint64
	keys    []uint32
	values  []uint8
}

// Load reads an opening book from a file. On any error the returned
// book is nil and the solver runs without book assistance; the caller
// decides whether that is fatal.
func Load(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	defer f.Close()

	digest := xxhash.New()
	b, err := LoadReader(io.TeeReader(f, digest))
	if err != nil {
		return nil, fmt.Errorf("opening book %s: %w", filename, err)
	}
	log.Printf("opening book %s loaded: depth %d, %d slots, xxh64 %016x",
		filename, b.depth, b.size, digest.Sum64())
	return b, nil
}

// LoadReader reads a book from a stream. See Book for the layout.
func LoadReader(r io.Reader) (*Book, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("truncated header: %w", err)
	}

	width, height := int(header[0]), int(header[1])
	depth := int(header[2])
	keyBytes := int(header[3])
	valueBytes := int(header[4])
	logSize := int(header[5])

	if width != board.Width {
		return nil, fmt.Errorf("invalid width (found: %d, expected: %d)", width, board.Width)
	}
	if height != board.Height {
		return nil, fmt.Errorf("invalid height (found: %d, expected: %d)", height, board.Height)
	}
	if depth > board.BoardSize {
		return nil, fmt.Errorf("invalid depth (found: %d)", depth)
	}
	if keyBytes != 1 && keyBytes != 2 && keyBytes != 4 {
		return nil, fmt.Errorf("invalid internal key size (found: %d bytes)", keyBytes)
	}
	if valueBytes != 1 {
		return nil, fmt.Errorf("invalid value size (found: %d, expected: 1)", valueBytes)
	}
	if logSize < 21 || logSize > 27 {
		return nil, fmt.Errorf("invalid log2(size) (found: %d)", logSize)
	}

	size := util.NextPrime(1 << logSize)
	raw := make([]byte, size*uint64(keyBytes))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("truncated key array: %w", err)
	}

	keys := make([]uint32, size)
	switch keyBytes {
	case 1:
		for i := range keys {
			keys[i] = uint32(raw[i])
		}
	case 2:
		for i := range keys {
			keys[i] = uint32(binary.LittleEndian.Uint16(raw[2*i:]))
		}
	case 4:
		for i := range keys {
			keys[i] = binary.LittleEndian.Uint32(raw[4*i:])
		}
	}

	values := make([]uint8, size)
	if _, err := io.ReadFull(r, values); err != nil {
		return nil, fmt.Errorf("truncated value array: %w", err)
	}

	return &Book{
		depth:   depth,
		size:    size,
		keyMask: uint64(1)<<(8*keyBytes) - 1,
		keys:    keys,
		values:  values,
	}, nil
}

// Depth returns the deepest ply the book covers, or -1 when absent.
func (b *Book) Depth() int {
	if b == nil || b.keys == nil {
		return -1
	}
	return b.depth
}

// Size returns the slot count, 0 when absent.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return int(b.size)
}

// Get returns the raw stored byte for a position, or 0 when the
// position is absent or beyond the book depth. A non-zero value v
// decodes to the exact score v + MinScore - 1; the offset is the
// caller's to apply so that 0 can mean "absent" on disk.
func (b *Book) Get(p board.Position) int {
	if b == nil || b.keys == nil || p.MovesPlayed() > b.depth {
		return 0
	}
	key := p.Key3()
	i := key % b.size
	if uint64(b.keys[i]) == key&b.keyMask {
		return int(b.values[i])
	}
	return 0
}
