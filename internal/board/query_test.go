package board

import "testing"

func TestAttackedBy(t *testing.T) {
	pos := mustParseFEN(t, "4k3/8/8/8/8/2N5/1P6/R3K3 w - - 0 1")

	tests := []struct {
		name string
		sq   Square
		by   Color
		want bool
	}{
		{"rook down the open file", A5, White, true},
		{"friendly pawn square nothing reaches", B2, White, false},
		{"rook stops at first occupant", B1, White, true},
		{"knight fork square", D5, White, true},
		{"pawn attack", A3, White, true},
		{"pawn does not attack its push square", B3, White, false},
		{"king adjacency", D2, White, true},
		{"black king adjacency", D7, Black, true},
		{"far quiet square", H5, White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pos.AttackedBy(tt.sq, tt.by); got != tt.want {
				t.Errorf("AttackedBy(%v, %v) = %v, want %v", tt.sq, tt.by, got, tt.want)
			}
		})
	}
}

func TestSlidingAttackRespectsBlockers(t *testing.T) {
	// Rook a1, own pawn a3: a2 is attacked, a4 and beyond are not.
	pos := mustParseFEN(t, "4k3/8/8/8/8/P7/8/R3K3 w - - 0 1")

	if !pos.AttackedBy(A2, White) {
		t.Error("expected a2 attacked")
	}
	if !pos.AttackedBy(A3, White) {
		t.Error("expected a3 attacked (defended occupant)")
	}
	if pos.AttackedBy(A4, White) {
		t.Error("expected a4 shielded by the pawn")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"king vs king", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"king and bishop vs king", "4k3/8/8/8/8/8/8/1B2K3 w - - 0 1", true},
		{"king and knight vs king", "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1", true},
		{"lone minor on the black side", "1n2k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"bishops on same shade", "2b1k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"bishops on opposite shades", "1b2k3/8/8/8/8/8/8/4KB2 w - - 0 1", false},
		{"two knights", "4k3/8/8/8/8/8/8/NN2K3 w - - 0 1", false},
		{"single pawn", "4k3/8/8/8/8/8/P7/4K3 w - - 0 1", false},
		{"bishop plus pawn", "4k3/8/8/8/8/8/P7/1B2K3 w - - 0 1", false},
		{"rook present", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
		{"queen present", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParseFEN(t, tt.fen)
			if got := pos.InsufficientMaterial(); got != tt.want {
				t.Errorf("InsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiftyMoveRule(t *testing.T) {
	tests := []struct {
		clock int
		want  bool
	}{
		{0, false},
		{99, false},
		{100, true},
		{120, true},
	}

	for _, tt := range tests {
		fen := "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
		pos := mustParseFEN(t, fen)
		pos.halfMoveClock = tt.clock
		if got := pos.FiftyMoveRule(); got != tt.want {
			t.Errorf("clock %d: FiftyMoveRule() = %v, want %v", tt.clock, got, tt.want)
		}
	}
}
