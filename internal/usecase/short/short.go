// Package short decides the order on short games: games certified to have
// a bounded birthday and a bounded number of distinct positions.
package short

import (
	"fmt"

	"combgame/internal/domain/game"
	errs "combgame/internal/errors"
)

// Limits bound the games Certify accepts. A zero field means no bound.
type Limits struct {
	MaxDepth int
	MaxNodes int
}

var DefaultLimits = Limits{MaxDepth: 64, MaxNodes: 1 << 20}

// Game is a game that passed Certify. Its options are certified too.
type Game struct {
	g *game.Game
}

// Certify walks g once and accepts it when it fits in lim.
func Certify(g *game.Game, lim Limits) (Game, error) {
	if g == nil {
		return Game{}, fmt.Errorf("%w: nil game", errs.ErrNotShort)
	}
	if lim.MaxDepth > 0 && g.Depth() > lim.MaxDepth {
		return Game{}, fmt.Errorf("%w: birthday %d exceeds %d", errs.ErrNotShort, g.Depth(), lim.MaxDepth)
	}
	if lim.MaxNodes > 0 {
		seen := make(map[*game.Game]struct{})
		stack := []*game.Game{g}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			if len(seen) > lim.MaxNodes {
				return Game{}, fmt.Errorf("%w: more than %d positions", errs.ErrNotShort, lim.MaxNodes)
			}
			stack = append(stack, n.Left()...)
			stack = append(stack, n.Right()...)
		}
	}
	return Game{g: g}, nil
}

// MustCertify is Certify for games known to fit, such as package constants.
func MustCertify(g *game.Game) Game {
	s, err := Certify(g, Limits{})
	if err != nil {
		panic(err)
	}
	return s
}

func (s Game) Game() *game.Game {
	if s.g == nil {
		return game.Zero()
	}
	return s.g
}

func (s Game) NumLeft() int { return s.Game().NumLeft() }
func (s Game) NumRight() int { return s.Game().NumRight() }
func (s Game) MoveLeft(i int) Game { return Game{g: s.Game().MoveLeft(i)} }
func (s Game) MoveRight(j int) Game { return Game{g: s.Game().MoveRight(j)} }
func (s Game) Fingerprint() uint64 { return s.Game().Fingerprint() }
func (s Game) String() string { return s.Game().String() }
