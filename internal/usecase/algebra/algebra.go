// Package algebra builds new games out of existing ones: negation, disjoint
// sums and differences, plus relabellings that witness two games are the
// same up to renaming of moves.
package algebra

import "combgame/internal/domain/game"

type pairKey struct{ x, y *game.Game }

// Builder remembers the games it has already produced so that repeated
// sub-sums are built once and shared. Reuse one Builder when composing many
// games from the same parts. A Builder is not safe for concurrent use.
type Builder struct {
	neg map[*game.Game]*game.Game
	add map[pairKey]*game.Game
}

func NewBuilder() *Builder {
	return &Builder{
		neg: make(map[*game.Game]*game.Game),
		add: make(map[pairKey]*game.Game),
	}
}

// Negate swaps the roles of the players: Left's options of -g are the
// negated Right options of g and vice versa.
func (b *Builder) Negate(g *game.Game) *game.Game {
	if n, ok := b.neg[g]; ok {
		return n
	}
	left := make([]*game.Game, g.NumRight())
	for j, r := range g.Right() {
		left[j] = b.Negate(r)
	}
	right := make([]*game.Game, g.NumLeft())
	for i, l := range g.Left() {
		right[i] = b.Negate(l)
	}
	n := game.Mk(left, right)
	b.neg[g] = n
	return n
}

// Add is the disjoint sum x + y: a player moves in exactly one component.
// Left option i of the sum is Add(x.MoveLeft(i), y) for i < x.NumLeft(),
// and Add(x, y.MoveLeft(i-x.NumLeft())) after that. Right options follow
// the same layout.
func (b *Builder) Add(x, y *game.Game) *game.Game {
	k := pairKey{x, y}
	if s, ok := b.add[k]; ok {
		return s
	}
	left := make([]*game.Game, 0, x.NumLeft()+y.NumLeft())
	for _, xl := range x.Left() {
		left = append(left, b.Add(xl, y))
	}
	for _, yl := range y.Left() {
		left = append(left, b.Add(x, yl))
	}
	right := make([]*game.Game, 0, x.NumRight()+y.NumRight())
	for _, xr := range x.Right() {
		right = append(right, b.Add(xr, y))
	}
	for _, yr := range y.Right() {
		right = append(right, b.Add(x, yr))
	}
	s := game.Mk(left, right)
	b.add[k] = s
	return s
}

// Sub is x + (-y).
func (b *Builder) Sub(x, y *game.Game) *game.Game {
	return b.Add(x, b.Negate(y))
}

func Negate(g *game.Game) *game.Game { return NewBuilder().Negate(g) }
func Add(x, y *game.Game) *game.Game { return NewBuilder().Add(x, y) }
func Sub(x, y *game.Game) *game.Game { return NewBuilder().Sub(x, y) }

// Sum adds all games left to right; the empty sum is Zero.
func (b *Builder) Sum(games ...*game.Game) *game.Game {
	s := game.Zero()
	for i, g := range games {
		if i == 0 {
			s = g
			continue
		}
		s = b.Add(s, g)
	}
	return s
}
