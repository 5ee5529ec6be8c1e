// Package impartial handles games where both players have the same moves.
// Every such game is equivalent to a nim heap, and the heap size is its
// Grundy value.
package impartial

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"combgame/internal/domain/game"
	errs "combgame/internal/errors"
	"combgame/internal/usecase/algebra"
	"combgame/internal/usecase/short"
)

// Mex is the least natural number missing from values.
func Mex(values ...uint) uint {
	seen := make([]bool, len(values)+1)
	for _, v := range values {
		if v < uint(len(seen)) {
			seen[v] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return uint(i)
		}
	}
	return uint(len(values))
}

// NimSum is the Grundy value of a sum of two impartial games with Grundy
// values a and b.
func NimSum(a, b uint) uint { return a ^ b }

// checkEvery is how many new positions pass between context checks.
var checkEvery = 1024

// Engine caches impartiality checks and Grundy values across calls. It is
// not safe for concurrent use.
type Engine struct {
	build     *algebra.Builder
	decider   *short.Decider
	impartial map[*game.Game]bool
	grundy    map[*game.Game]uint
	steps     int
}

func NewEngine() *Engine {
	return &Engine{
		build:     algebra.NewBuilder(),
		decider:   short.NewDecider(),
		impartial: make(map[*game.Game]bool),
		grundy:    make(map[*game.Game]uint),
	}
}

// IsImpartial reports whether g ≈ -g and every option of g is impartial.
// Positions whose Left and Right options coincide skip the comparison.
func (e *Engine) IsImpartial(g *game.Game) bool {
	v, _ := e.isImpartial(context.Background(), g)
	return v
}

func (e *Engine) tick(ctx context.Context) error {
	e.steps++
	if e.steps%checkEvery == 0 {
		return ctx.Err()
	}
	return nil
}

func (e *Engine) isImpartial(ctx context.Context, g *game.Game) (bool, error) {
	if v, ok := e.impartial[g]; ok {
		return v, nil
	}
	if err := e.tick(ctx); err != nil {
		return false, err
	}
	v, err := e.optionsImpartial(ctx, g)
	if err != nil {
		return false, err
	}
	if v && !symmetric(g) {
		neg := short.MustCertify(e.build.Negate(g))
		v, err = e.decider.Equiv(ctx, short.MustCertify(g), neg)
		if err != nil {
			return false, err
		}
	}
	e.impartial[g] = v
	return v, nil
}

func (e *Engine) optionsImpartial(ctx context.Context, g *game.Game) (bool, error) {
	for _, opts := range [][]*game.Game{g.Left(), g.Right()} {
		for _, o := range opts {
			ok, err := e.isImpartial(ctx, o)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

// symmetric reports whether the Left and Right options of g are the same
// games up to order.
func symmetric(g *game.Game) bool {
	if g.NumLeft() != g.NumRight() {
		return false
	}
	left := byFingerprint(g.Left())
	right := byFingerprint(g.Right())
	for i := range left {
		if !game.Identical(left[i], right[i]) {
			return false
		}
	}
	return true
}

func byFingerprint(gs []*game.Game) []*game.Game {
	out := slices.Clone(gs)
	slices.SortFunc(out, func(a, b *game.Game) int {
		return cmp.Compare(a.Fingerprint(), b.Fingerprint())
	})
	return out
}

// GrundyValue returns n such that g ≈ *n. Partizan games are rejected
// before any value is computed.
func (e *Engine) GrundyValue(s short.Game) (uint, error) {
	return e.GrundyValueContext(context.Background(), s)
}

// GrundyValueContext is GrundyValue giving up with ctx's error once ctx ends.
func (e *Engine) GrundyValueContext(ctx context.Context, s short.Game) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g := s.Game()
	ok, err := e.isImpartial(ctx, g)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %v", errs.ErrNotImpartial, g)
	}
	return e.grundyOf(ctx, g)
}

// grundyOf takes the mex over Left options only; for an impartial game the
// Right options give the same value.
func (e *Engine) grundyOf(ctx context.Context, g *game.Game) (uint, error) {
	if v, ok := e.grundy[g]; ok {
		return v, nil
	}
	if err := e.tick(ctx); err != nil {
		return 0, err
	}
	vals := make([]uint, g.NumLeft())
	for i, o := range g.Left() {
		v, err := e.grundyOf(ctx, o)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	v := Mex(vals...)
	e.grundy[g] = v
	return v, nil
}

// GrundySum is the Grundy value of g + h without building the sum.
func (e *Engine) GrundySum(g, h short.Game) (uint, error) {
	a, err := e.GrundyValue(g)
	if err != nil {
		return 0, err
	}
	b, err := e.GrundyValue(h)
	if err != nil {
		return 0, err
	}
	return NimSum(a, b), nil
}

// Sum builds g + h with the engine's builder, so sums sharing parts share
// nodes and cached values.
func (e *Engine) Sum(g, h *game.Game) *game.Game {
	return e.build.Add(g, h)
}

func IsImpartial(g *game.Game) bool { return NewEngine().IsImpartial(g) }

func GrundyValue(s short.Game) (uint, error) { return NewEngine().GrundyValue(s) }

func GrundySum(g, h short.Game) (uint, error) { return NewEngine().GrundySum(g, h) }
