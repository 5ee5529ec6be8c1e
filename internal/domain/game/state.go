package game

import (
	"context"
	"fmt"

	errs "combgame/internal/errors"
)

// checkEvery is how many expanded positions pass between context checks.
var checkEvery = 1024

// State describes a position of some concrete game in terms of its own moves.
// TurnBound must be non-negative and drop strictly on every move; it bounds
// how many turns remain and is what makes the resulting Game short.
type State[S any] interface {
	Key() string
	TurnBound() int
	LeftMoves() []S
	RightMoves() []S
}

// FromState expands s into a Game. Positions reached along different move
// orders share one node, keyed by State.Key.
func FromState[S State[S]](s S) (*Game, error) {
	return FromStateContext(context.Background(), s, 0)
}

// FromStateContext is FromState with a deadline and a cap on the number of
// distinct positions. Expansion stops with ErrNotShort once more than
// maxNodes positions exist; a non-positive maxNodes means no cap.
func FromStateContext[S State[S]](ctx context.Context, s S, maxNodes int) (*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := &stateBuilder[S]{
		ctx:      ctx,
		maxNodes: maxNodes,
		memo:     make(map[string]*Game),
	}
	return b.build(s)
}

type stateBuilder[S State[S]] struct {
	ctx      context.Context
	maxNodes int
	steps    int
	memo     map[string]*Game
}

func (b *stateBuilder[S]) build(s S) (*Game, error) {
	key := s.Key()
	if g, ok := b.memo[key]; ok {
		return g, nil
	}
	b.steps++
	if b.steps%checkEvery == 0 {
		if err := b.ctx.Err(); err != nil {
			return nil, err
		}
	}
	bound := s.TurnBound()
	if bound < 0 {
		return nil, fmt.Errorf("%w: position %q has negative turn bound %d", errs.ErrNotShort, key, bound)
	}
	left, err := b.options(s, s.LeftMoves())
	if err != nil {
		return nil, err
	}
	right, err := b.options(s, s.RightMoves())
	if err != nil {
		return nil, err
	}
	g := Mk(left, right)
	b.memo[key] = g
	if b.maxNodes > 0 && len(b.memo) > b.maxNodes {
		return nil, fmt.Errorf("%w: more than %d positions", errs.ErrNotShort, b.maxNodes)
	}
	return g, nil
}

func (b *stateBuilder[S]) options(from S, moves []S) ([]*Game, error) {
	opts := make([]*Game, 0, len(moves))
	for _, m := range moves {
		if m.TurnBound() >= from.TurnBound() {
			return nil, fmt.Errorf("%w: move %q -> %q does not lower the turn bound (%d -> %d)",
				errs.ErrNotShort, from.Key(), m.Key(), from.TurnBound(), m.TurnBound())
		}
		g, err := b.build(m)
		if err != nil {
			return nil, err
		}
		opts = append(opts, g)
	}
	return opts, nil
}
