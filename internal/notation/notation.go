// Package notation converts between algebraic notation text and board
// events. Parsing is purely syntactic: it produces partially specified
// events (piece type, destination, origin hints, declared promotion) and
// records capture and check markers as assertions, leaving every legality
// decision and all capture metadata to the rules core.
package notation

import (
	"fmt"
	"strings"

	"github.com/nadi726/chesscore/internal/board"
)

var pieceLetters = map[byte]board.PieceType{
	'K': board.King,
	'Q': board.Queen,
	'R': board.Rook,
	'B': board.Bishop,
	'N': board.Knight,
}

// Parse reads one move in algebraic notation ("e4", "Nf3", "Raxd1",
// "exd6 e.p.", "e8=Q+", "O-O") and returns the corresponding partially
// specified event.
func Parse(text string) (board.Event, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("empty move")
	}

	var assertions []string
	for strings.HasSuffix(s, "+") || strings.HasSuffix(s, "#") {
		assertions = append([]string{s[len(s)-1:]}, assertions...)
		s = s[:len(s)-1]
	}

	if side, ok := parseCastle(s); ok {
		ev := board.NewCastle(side)
		ev.Assertions = assertions
		return ev, nil
	}

	enPassant := false
	for _, suffix := range []string{" e.p.", "e.p."} {
		if strings.HasSuffix(s, suffix) {
			enPassant = true
			s = strings.TrimSuffix(s, suffix)
			s = strings.TrimSpace(s)
			break
		}
	}

	promotion := board.NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx != len(s)-2 {
			return nil, fmt.Errorf("malformed promotion in %q", text)
		}
		pt, ok := pieceLetters[s[idx+1]]
		if !ok {
			return nil, fmt.Errorf("unknown promotion piece %q", s[idx+1])
		}
		promotion = pt
		s = s[:idx]
	}

	piece := board.Pawn
	if len(s) > 0 {
		if pt, ok := pieceLetters[s[0]]; ok {
			piece = pt
			s = s[1:]
		}
	}

	if strings.Contains(s, "x") {
		assertions = append(assertions, "x")
		s = strings.Replace(s, "x", "", 1)
	}

	if enPassant {
		return parseEnPassantBody(s, assertions, piece, promotion, text)
	}

	if len(s) < 2 {
		return nil, fmt.Errorf("missing destination in %q", text)
	}
	to, err := board.ParseSquare(s[len(s)-2:])
	if err != nil {
		return nil, fmt.Errorf("bad destination in %q: %v", text, err)
	}
	hint, err := parseHint(s[:len(s)-2])
	if err != nil {
		return nil, fmt.Errorf("bad disambiguation in %q: %v", text, err)
	}

	ev := board.NewMove(piece, to)
	ev.From = hint
	ev.Promotion = promotion
	ev.Assertions = assertions
	return ev, nil
}

// parseCastle recognizes both the letter and digit castling forms.
func parseCastle(s string) (board.CastleSide, bool) {
	switch s {
	case "O-O", "0-0":
		return board.KingSide, true
	case "O-O-O", "0-0-0":
		return board.QueenSide, true
	}
	return board.KingSide, false
}

// parseEnPassantBody handles the remainder of an "e.p."-marked move. The
// destination may be omitted entirely since the position pins it down.
func parseEnPassantBody(s string, assertions []string, piece board.PieceType, promotion board.PieceType, text string) (board.Event, error) {
	if piece != board.Pawn || promotion != board.NoPieceType {
		return nil, fmt.Errorf("only a bare pawn move can be marked e.p. in %q", text)
	}

	ev := board.NewEnPassant()
	ev.Assertions = assertions

	if s == "" {
		return ev, nil
	}

	if len(s) >= 2 {
		if to, err := board.ParseSquare(s[len(s)-2:]); err == nil {
			ev.To = to
			s = s[:len(s)-2]
		}
	}
	hint, err := parseHint(s)
	if err != nil {
		return nil, fmt.Errorf("bad origin in %q: %v", text, err)
	}
	ev.From = hint
	return ev, nil
}

// parseHint reads an optional disambiguation fragment: a file, a rank, or
// a full square.
func parseHint(s string) (board.SquareHint, error) {
	file, rank := -1, -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'h' && file < 0:
			file = int(c - 'a')
		case c >= '1' && c <= '8' && rank < 0:
			rank = int(c - '1')
		default:
			return board.AnySquare, fmt.Errorf("unexpected character %q", c)
		}
	}
	return board.NewHint(file, rank), nil
}

// Format renders a fully resolved event as algebraic notation against the
// position it was resolved on, with minimal disambiguation and a check or
// checkmate suffix.
func Format(pos *board.Position, ev board.Event) (string, error) {
	var body string

	switch e := ev.(type) {
	case board.CastleEvent:
		body = e.Side.String()
	case board.EnPassantEvent:
		from, ok := e.From.Square()
		if !ok {
			return "", fmt.Errorf("unresolved en passant origin")
		}
		body = fmt.Sprintf("%cx%s", 'a'+from.File(), e.To)
	case board.MoveEvent:
		s, err := formatMove(pos, e)
		if err != nil {
			return "", err
		}
		body = s
	default:
		return "", fmt.Errorf("unknown event %T", ev)
	}

	next, err := pos.Apply(ev)
	if err != nil {
		return "", err
	}
	if next.IsCheckmate() {
		body += "#"
	} else if next.InCheck(next.SideToMove()) {
		body += "+"
	}
	return body, nil
}

func formatMove(pos *board.Position, e board.MoveEvent) (string, error) {
	from, ok := e.From.Square()
	if !ok {
		return "", fmt.Errorf("unresolved origin on %s", e)
	}

	var sb strings.Builder

	if e.Piece == board.Pawn {
		if e.Capture != nil {
			sb.WriteByte(byte('a' + from.File()))
			sb.WriteByte('x')
		}
	} else {
		sb.WriteByte("PNBRQK"[e.Piece])
		sb.WriteString(disambiguation(pos, e, from))
		if e.Capture != nil {
			sb.WriteByte('x')
		}
	}

	sb.WriteString(e.To.String())

	if e.Promotion != board.NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[e.Promotion])
	}
	return sb.String(), nil
}

// disambiguation returns the minimal origin fragment needed to tell this
// move apart from other legal moves of the same piece type to the same
// square.
func disambiguation(pos *board.Position, e board.MoveEvent, from board.Square) string {
	var rivals []board.Square
	for other := range pos.LegalMoves() {
		me, ok := other.(board.MoveEvent)
		if !ok || me.Piece != e.Piece || me.To != e.To {
			continue
		}
		otherFrom, ok := me.From.Square()
		if !ok || otherFrom == from {
			continue
		}
		rivals = append(rivals, otherFrom)
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}
