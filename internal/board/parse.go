package board

import "strings"

// PositionFromMoves replays a move sequence from the empty board. Each
// byte is a 1-based column digit '1'..'7'. The first offending byte is
// reported through the returned error's Index: an invalid character, a
// drop into a full column, or a move that completes four in a row
// (including the final one; a finished game has no score).
func PositionFromMoves(seq string) (Position, error) {
	p := NewPosition()
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c < '1' || c > '0'+Width {
			return Position{}, InvalidCharError{Char: c, Index: i}
		}
		col := int(c - '1')
		if !p.CanPlay(col) {
			return Position{}, FullColumnError{Column: col + 1, Index: i}
		}
		if p.IsWinningMove(col) {
			return Position{}, CompletedGameError{Column: col + 1, Index: i}
		}
		p.PlayColumn(col)
	}
	return p, nil
}

// PositionFromGrid parses a 42-cell board diagram read row by row from
// the top-left: 'x' for the side to move, 'o' for the opponent, '.' for
// an empty cell. Every other character is ignored, so rendered boards
// round-trip. The grid is assumed to describe a reachable position;
// gravity violations are not detected here.
func PositionFromGrid(grid string) (Position, error) {
	var cells []byte
	for i := 0; i < len(grid); i++ {
		switch c := grid[i] | 0x20; c {
		case '.', 'o', 'x':
			cells = append(cells, c)
		}
	}
	if len(cells) != BoardSize {
		return Position{}, GridSizeError{Got: len(cells), Want: BoardSize}
	}

	p := NewPosition()
	for i, c := range cells {
		if c == '.' {
			continue
		}
		row := Height - i/Width - 1
		col := i % Width
		bit := uint64(1) << (row + col*(Height+1))
		if c == 'x' {
			p.Current |= bit
		}
		p.Mask |= bit
		p.moves++
	}
	return p, nil
}

// String renders the position as a diagram in the PositionFromGrid
// alphabet, side to move as 'x'.
func (p Position) String() string {
	var b strings.Builder
	b.WriteString("  1 2 3 4 5 6 7\n ---------------\n")
	for row := Height - 1; row >= 0; row-- {
		b.WriteString("|")
		for col := 0; col < Width; col++ {
			bit := uint64(1) << (row + col*(Height+1))
			switch {
			case p.Mask&bit == 0:
				b.WriteString(" .")
			case p.Current&bit != 0:
				b.WriteString(" x")
			default:
				b.WriteString(" o")
			}
		}
		b.WriteString(" |\n")
	}
	b.WriteString(" ---------------")
	return b.String()
}
