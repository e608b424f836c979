package board

import (
	"errors"
	"testing"
)

func mustParseFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func resolveMoveEvent(t *testing.T, pos *Position, ev Event) MoveEvent {
	t.Helper()
	resolved, err := Resolve(pos, ev)
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", ev, err)
	}
	me, ok := resolved.(MoveEvent)
	if !ok {
		t.Fatalf("expected MoveEvent, got %T", resolved)
	}
	return me
}

func TestResolveSimpleMoves(t *testing.T) {
	pos := StartPosition()

	tests := []struct {
		name     string
		ev       MoveEvent
		wantFrom Square
	}{
		{"pawn double step", NewMove(Pawn, E4), E2},
		{"pawn single step", NewMove(Pawn, D3), D2},
		{"knight development", NewMove(Knight, F3), G1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveMoveEvent(t, pos, tt.ev)
			from, ok := got.From.Square()
			if !ok {
				t.Fatalf("origin still unresolved: %v", got.From)
			}
			if from != tt.wantFrom {
				t.Errorf("expected origin %v, got %v", tt.wantFrom, from)
			}
			if got.Color != White {
				t.Errorf("expected resolved color White, got %v", got.Color)
			}
			if got.Capture != nil {
				t.Errorf("unexpected capture metadata: %+v", got.Capture)
			}
		})
	}
}

func TestResolveFailures(t *testing.T) {
	pos := StartPosition()

	blackMove := NewMove(Pawn, E5)
	blackMove.Color = Black

	captureOnEmpty := NewMove(Pawn, E4)
	captureOnEmpty.Capture = &Capture{Square: E4, Piece: BlackPawn}

	promoteMidBoard := NewMove(Pawn, E4)
	promoteMidBoard.Promotion = Queen

	tests := []struct {
		name string
		ev   Event
		want error
	}{
		{"unreachable destination", NewMove(Pawn, E5), ErrIllegalMove},
		{"blocked slider", NewMove(Rook, A5), ErrIllegalMove},
		{"explicit wrong color", blackMove, ErrWrongColor},
		{"declared capture on empty square", captureOnEmpty, ErrBadCapture},
		{"promotion away from far rank", promoteMidBoard, ErrBadPromotion},
		{"castle without clear path", NewCastle(KingSide), ErrCastlingUnavailable},
		{"en passant without target", NewEnPassant(), ErrEnPassantUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(pos, tt.ev)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if err != nil && IsInvariantViolation(err) {
				t.Errorf("rule failure classified as invariant violation: %v", err)
			}
		})
	}
}

func TestResolveDisambiguation(t *testing.T) {
	// Rooks on a1 and a8 both reach a5.
	pos := mustParseFEN(t, "R7/7k/8/8/8/8/1K6/R7 w - - 0 1")

	t.Run("unspecified origin fails", func(t *testing.T) {
		_, err := Resolve(pos, NewMove(Rook, A5))
		if !errors.Is(err, ErrAmbiguousMove) {
			t.Errorf("expected %v, got %v", ErrAmbiguousMove, err)
		}
	})

	t.Run("rank hint resolves", func(t *testing.T) {
		ev := NewMove(Rook, A5)
		ev.From = HintRank(0)
		got := resolveMoveEvent(t, pos, ev)
		if from, _ := got.From.Square(); from != A1 {
			t.Errorf("expected origin a1, got %v", from)
		}
	})

	t.Run("complete origin resolves", func(t *testing.T) {
		ev := NewMove(Rook, A5)
		ev.From = HintAt(A8)
		got := resolveMoveEvent(t, pos, ev)
		if from, _ := got.From.Square(); from != A8 {
			t.Errorf("expected origin a8, got %v", from)
		}
	})
}

func TestResolvePinnedRivalNotAmbiguous(t *testing.T) {
	// Rooks on a5 and e4 both reach a4 geometrically, but the e4 rook is
	// pinned against its king by the e8 rook. Only one origin is legal, so
	// an unconstrained move must resolve, not fail as ambiguous.
	pos := mustParseFEN(t, "4r1k1/8/8/R7/4R3/8/8/4K3 w - - 0 1")

	t.Run("unspecified origin resolves to the unpinned rook", func(t *testing.T) {
		got := resolveMoveEvent(t, pos, NewMove(Rook, A4))
		if from, _ := got.From.Square(); from != A5 {
			t.Errorf("expected origin a5, got %v", from)
		}
	})

	t.Run("pinned rook addressed directly still fails", func(t *testing.T) {
		ev := NewMove(Rook, A4)
		ev.From = HintAt(E4)
		_, err := Resolve(pos, ev)
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected %v, got %v", ErrIllegalMove, err)
		}
	})
}

func TestResolveAllCandidatesPinned(t *testing.T) {
	// Both knights reach d4 but each is pinned: b3 by the b8 rook down the
	// b-file, e2 by the h2 rook along the second rank.
	pos := mustParseFEN(t, "1r2k3/8/8/8/8/1N6/1K2N2r/8 w - - 0 1")

	_, err := Resolve(pos, NewMove(Knight, D4))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("expected %v, got %v", ErrIllegalMove, err)
	}
	if errors.Is(err, ErrAmbiguousMove) {
		t.Errorf("fully pinned candidates reported as ambiguity: %v", err)
	}
}

func TestResolveCaptureMetadata(t *testing.T) {
	pos := mustParseFEN(t, "4k3/8/8/3p4/4N3/8/8/4K3 w - - 0 1")

	got := resolveMoveEvent(t, pos, NewMove(Knight, D5))
	want := Capture{Square: D5, Piece: BlackPawn}
	if got.Capture == nil || *got.Capture != want {
		t.Fatalf("expected capture %+v, got %+v", want, got.Capture)
	}

	// A declared capture must match the board exactly.
	wrong := NewMove(Knight, D5)
	wrong.Capture = &Capture{Square: D5, Piece: BlackKnight}
	if _, err := Resolve(pos, wrong); !errors.Is(err, ErrBadCapture) {
		t.Errorf("expected %v, got %v", ErrBadCapture, err)
	}
}

func TestResolvePromotion(t *testing.T) {
	pos := mustParseFEN(t, "7k/P7/8/8/8/8/8/7K w - - 0 1")

	t.Run("promotion required", func(t *testing.T) {
		_, err := Resolve(pos, NewMove(Pawn, A8))
		if !errors.Is(err, ErrBadPromotion) {
			t.Errorf("expected %v, got %v", ErrBadPromotion, err)
		}
	})

	t.Run("promotes to declared type", func(t *testing.T) {
		ev := NewMove(Pawn, A8)
		ev.Promotion = Queen
		got := resolveMoveEvent(t, pos, ev)

		next, err := pos.Apply(got)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if piece := next.PieceAt(A8); piece != WhiteQueen {
			t.Errorf("expected white queen on a8, got %v", piece)
		}
		if piece := next.PieceAt(A7); piece != NoPiece {
			t.Errorf("expected a7 empty, got %v", piece)
		}
	})

	t.Run("underpromotion", func(t *testing.T) {
		ev := NewMove(Pawn, A8)
		ev.Promotion = Knight
		got := resolveMoveEvent(t, pos, ev)
		if got.Promotion != Knight {
			t.Errorf("expected knight promotion, got %v", got.Promotion)
		}
	})

	t.Run("king is not promotable", func(t *testing.T) {
		ev := NewMove(Pawn, A8)
		ev.Promotion = King
		if _, err := Resolve(pos, ev); !errors.Is(err, ErrBadPromotion) {
			t.Errorf("expected %v, got %v", ErrBadPromotion, err)
		}
	})
}

func TestResolveRejectsSelfCheck(t *testing.T) {
	t.Run("pinned bishop cannot leave the pin line", func(t *testing.T) {
		pos := mustParseFEN(t, "4k3/8/8/8/8/4r3/4B3/4K3 w - - 0 1")
		_, err := Resolve(pos, NewMove(Bishop, D3))
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected %v, got %v", ErrIllegalMove, err)
		}
	})

	t.Run("king cannot step into attack", func(t *testing.T) {
		pos := mustParseFEN(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
		_, err := Resolve(pos, NewMove(King, D1))
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected %v, got %v", ErrIllegalMove, err)
		}
	})

	t.Run("check must be answered", func(t *testing.T) {
		pos := mustParseFEN(t, "4k3/8/8/8/8/8/4r3/4K2N w - - 0 1")
		// The knight move ignores the rook's check.
		_, err := Resolve(pos, NewMove(Knight, G3))
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected %v, got %v", ErrIllegalMove, err)
		}
	})
}

func TestResolveEnPassant(t *testing.T) {
	// Black just played d7-d5 past the white pawn on e5.
	pos := mustParseFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")

	t.Run("resolves origin and target", func(t *testing.T) {
		resolved, err := Resolve(pos, NewEnPassant())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		ep, ok := resolved.(EnPassantEvent)
		if !ok {
			t.Fatalf("expected EnPassantEvent, got %T", resolved)
		}
		if from, _ := ep.From.Square(); from != E5 {
			t.Errorf("expected origin e5, got %v", from)
		}
		if ep.To != D6 {
			t.Errorf("expected destination d6, got %v", ep.To)
		}
		if ep.Capture == nil || ep.Capture.Square != D5 || ep.Capture.Piece != BlackPawn {
			t.Errorf("expected capture of black pawn on d5, got %+v", ep.Capture)
		}

		next, err := pos.Apply(ep)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if next.PieceAt(D5) != NoPiece {
			t.Errorf("captured pawn still on d5")
		}
		if next.PieceAt(E5) != NoPiece {
			t.Errorf("capturing pawn still on e5")
		}
		if next.PieceAt(D6) != WhitePawn {
			t.Errorf("expected white pawn on d6, got %v", next.PieceAt(D6))
		}
		if next.EnPassant() != NoSquare {
			t.Errorf("en passant target not cleared")
		}
	})

	t.Run("other destinations rejected", func(t *testing.T) {
		ev := NewEnPassant()
		ev.To = E6
		if _, err := Resolve(pos, ev); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected %v, got %v", ErrIllegalMove, err)
		}
	})

	t.Run("mismatched explicit color rejected", func(t *testing.T) {
		ev := NewEnPassant()
		ev.Color = Black
		if _, err := Resolve(pos, ev); !errors.Is(err, ErrWrongColor) {
			t.Errorf("expected %v, got %v", ErrWrongColor, err)
		}
	})
}

func TestResolveEnPassantAmbiguity(t *testing.T) {
	// Pawns on c5 and e5 can both take the d-pawn in passing.
	pos := mustParseFEN(t, "4k3/8/8/2PpP3/8/8/8/4K3 w - d6 0 1")

	t.Run("unspecified origin fails", func(t *testing.T) {
		_, err := Resolve(pos, NewEnPassant())
		if !errors.Is(err, ErrAmbiguousMove) {
			t.Errorf("expected %v, got %v", ErrAmbiguousMove, err)
		}
	})

	t.Run("file hint resolves", func(t *testing.T) {
		ev := NewEnPassant()
		ev.From = HintFile(4) // e-file
		resolved, err := Resolve(pos, ev)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		ep := resolved.(EnPassantEvent)
		if from, _ := ep.From.Square(); from != E5 {
			t.Errorf("expected origin e5, got %v", from)
		}
	})
}

func TestResolveCastling(t *testing.T) {
	t.Run("kingside relocates king and rook", func(t *testing.T) {
		pos := mustParseFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
		resolved, err := Resolve(pos, NewCastle(KingSide))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		next, err := pos.Apply(resolved)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if next.PieceAt(G1) != WhiteKing {
			t.Errorf("expected king on g1, got %v", next.PieceAt(G1))
		}
		if next.PieceAt(F1) != WhiteRook {
			t.Errorf("expected rook on f1, got %v", next.PieceAt(F1))
		}
		if next.Castling().CanCastle(White, KingSide) || next.Castling().CanCastle(White, QueenSide) {
			t.Errorf("white rights not revoked: %v", next.Castling())
		}
	})

	t.Run("queenside relocates king and rook", func(t *testing.T) {
		pos := mustParseFEN(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
		resolved, err := Resolve(pos, NewCastle(QueenSide))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		next, err := pos.Apply(resolved)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if next.PieceAt(C1) != WhiteKing {
			t.Errorf("expected king on c1, got %v", next.PieceAt(C1))
		}
		if next.PieceAt(D1) != WhiteRook {
			t.Errorf("expected rook on d1, got %v", next.PieceAt(D1))
		}
	})

	tests := []struct {
		name string
		fen  string
	}{
		{"right not held", "4k3/8/8/8/8/8/8/4K2R w - - 0 1"},
		{"path blocked", "4k3/8/8/8/8/8/8/4K1NR w K - 0 1"},
		{"transit square attacked", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1"},
		{"currently in check", "4r1k1/8/8/8/8/8/8/4K2R w K - 0 1"},
		{"destination attacked", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1"},
		{"rook missing", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParseFEN(t, tt.fen)
			_, err := Resolve(pos, NewCastle(KingSide))
			if !errors.Is(err, ErrCastlingUnavailable) {
				t.Errorf("expected %v, got %v", ErrCastlingUnavailable, err)
			}
		})
	}

	t.Run("queenside ignores attacks on the rook path", func(t *testing.T) {
		// b1 is attacked, but the king never crosses it.
		pos := mustParseFEN(t, "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
		if _, err := Resolve(pos, NewCastle(QueenSide)); err != nil {
			t.Errorf("expected queenside castle to resolve, got %v", err)
		}
	})
}
