// Package board implements the chess rules core: an immutable board
// representation with structural sharing, position snapshots with a FEN
// codec, event resolution, and legality/draw queries.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// SquareHint is a possibly partial square used on events before they are
// resolved. Either coordinate may be unknown; a hint with both coordinates
// known pins down exactly one square. Hints are matched against candidate
// squares during disambiguation and are never applied to the board directly.
type SquareHint struct {
	file int8 // 0-7, or -1 if unknown
	rank int8 // 0-7, or -1 if unknown
}

// AnySquare is the hint that matches every square.
var AnySquare = SquareHint{file: -1, rank: -1}

// HintAt returns the hint pinning down exactly sq.
func HintAt(sq Square) SquareHint {
	return SquareHint{file: int8(sq.File()), rank: int8(sq.Rank())}
}

// HintFile returns the hint matching every square on the given file (0-7).
func HintFile(file int) SquareHint {
	return SquareHint{file: int8(file), rank: -1}
}

// HintRank returns the hint matching every square on the given rank (0-7).
func HintRank(rank int) SquareHint {
	return SquareHint{file: -1, rank: int8(rank)}
}

// NewHint builds a hint from coordinates, either of which may be -1 for
// unknown.
func NewHint(file, rank int) SquareHint {
	h := AnySquare
	if file >= 0 && file <= 7 {
		h.file = int8(file)
	}
	if rank >= 0 && rank <= 7 {
		h.rank = int8(rank)
	}
	return h
}

// Matches reports whether the hint is consistent with sq.
func (h SquareHint) Matches(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	if h.file >= 0 && int(h.file) != sq.File() {
		return false
	}
	if h.rank >= 0 && int(h.rank) != sq.Rank() {
		return false
	}
	return true
}

// Square returns the single square the hint identifies, if both coordinates
// are known.
func (h SquareHint) Square() (Square, bool) {
	if h.file < 0 || h.rank < 0 {
		return NoSquare, false
	}
	return NewSquare(int(h.file), int(h.rank)), true
}

// IsComplete reports whether both coordinates are known.
func (h SquareHint) IsComplete() bool {
	return h.file >= 0 && h.rank >= 0
}

// String renders the known parts of the hint ("e4", "e", "4", or "?").
func (h SquareHint) String() string {
	if sq, ok := h.Square(); ok {
		return sq.String()
	}
	if h.file >= 0 {
		return string(rune('a' + h.file))
	}
	if h.rank >= 0 {
		return string(rune('1' + h.rank))
	}
	return "?"
}
