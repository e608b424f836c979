package board

import "fmt"

// Game is the event-application state machine: a position plus the history
// needed for the repetition rules. Like Position, a Game is a persistent
// value; Apply returns a new Game and leaves the receiver usable.
type Game struct {
	pos      *Position
	events   []Event
	sigCount map[string]int
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	return GameFrom(StartPosition())
}

// GameFrom starts a game from an arbitrary position.
func GameFrom(pos *Position) *Game {
	return &Game{
		pos:      pos,
		sigCount: map[string]int{pos.Signature(): 1},
	}
}

// Position returns the current position.
func (g *Game) Position() *Position {
	return g.pos
}

// Events returns the applied events since the starting position, oldest
// first.
func (g *Game) Events() []Event {
	out := make([]Event, len(g.events))
	copy(out, g.events)
	return out
}

// Apply advances the game by one resolved event. By the time an event
// reaches Apply it has already been validated, so any failure here is a
// defect; Apply is the single place that folds escaped invariant
// violations into the opaque ErrInternal category.
func (g *Game) Apply(ev Event) (*Game, error) {
	next, err := g.pos.Apply(ev)
	if err != nil {
		return nil, fmt.Errorf("%w: applying %s: %v", ErrInternal, ev, err)
	}

	counts := make(map[string]int, len(g.sigCount)+1)
	for sig, n := range g.sigCount {
		counts[sig] = n
	}
	counts[next.Signature()]++

	events := make([]Event, len(g.events)+1)
	copy(events, g.events)
	events[len(g.events)] = ev

	return &Game{pos: next, events: events, sigCount: counts}, nil
}

// Play resolves an event against the current position and applies it,
// returning the new game and the resolved event.
func (g *Game) Play(ev Event) (*Game, Event, error) {
	resolved, err := Resolve(g.pos, ev)
	if err != nil {
		return nil, nil, err
	}
	next, err := g.Apply(resolved)
	if err != nil {
		return nil, nil, err
	}
	return next, resolved, nil
}

// Repetitions returns how many times the current position has occurred in
// this game, by signature. Only the current position's count is consulted;
// clocks never enter the signature.
func (g *Game) Repetitions() int {
	return g.sigCount[g.pos.Signature()]
}

// ThreefoldRepetition reports whether the current position has occurred at
// least three times, making a draw claimable.
func (g *Game) ThreefoldRepetition() bool {
	return g.Repetitions() >= 3
}

// FivefoldRepetition reports whether the current position has occurred at
// least five times, ending the game.
func (g *Game) FivefoldRepetition() bool {
	return g.Repetitions() >= 5
}
