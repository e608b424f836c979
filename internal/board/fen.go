package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a six-field FEN string and returns a Position. Parsing
// is strict: a wrong field count, unknown letters, out-of-range squares,
// or malformed clocks all fail.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN: need 6 fields, got %d", len(parts))
	}

	pos := &Position{enPassant: NoSquare}

	grid, err := parsePiecePlacement(parts[0])
	if err != nil {
		return nil, err
	}
	pos.grid = grid

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %q", parts[1])
	}

	castling, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	pos.castling = castling

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %q", parts[3])
		}
		pos.enPassant = sq
	}

	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return nil, fmt.Errorf("invalid half-move clock: %q", parts[4])
	}
	pos.halfMoveClock = hmc

	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return nil, fmt.Errorf("invalid full-move number: %q", parts[5])
	}
	pos.fullMoveNumber = fmn

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement string) (Grid, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return Grid{}, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	grid := NewGrid()
	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return Grid{}, fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return Grid{}, fmt.Errorf("invalid piece character: %c", c)
				}
				next, err := grid.Put(piece, NewSquare(file, rank))
				if err != nil {
					return Grid{}, err
				}
				grid = next
				file++
			}
		}

		if file != 8 {
			return Grid{}, fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return grid, nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	rights := NoCastling
	for _, c := range castling {
		switch c {
		case 'K':
			rights |= WhiteKingSideCastle
		case 'Q':
			rights |= WhiteQueenSideCastle
		case 'k':
			rights |= BlackKingSideCastle
		case 'q':
			rights |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return rights, nil
}

// placementString renders the piece placement field of the FEN.
func (p *Position) placementString() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the position. It is the exact
// inverse of ParseFEN.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	sb.WriteString(p.Signature())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}

// Signature identifies repetition-equivalent positions: the four
// repetition-relevant FEN fields (placement, side to move, castling,
// en passant), with the clocks deliberately excluded. Two positions repeat
// each other exactly when their signatures are equal.
func (p *Position) Signature() string {
	var sb strings.Builder

	sb.WriteString(p.placementString())

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	return sb.String()
}
