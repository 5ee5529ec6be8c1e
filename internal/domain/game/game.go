// Package game holds the two-player game tree that every other package in
// combgame evaluates.
//
// A Game is an immutable node with an ordered list of Left options and an
// ordered list of Right options. Fields are unexported and option slices are
// copied on construction, so a Game can only be built bottom-up from Zero and
// can never reach itself through its own options.
package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Game is a position: what Left may move to and what Right may move to.
type Game struct {
	left  []*Game
	right []*Game
	depth int
	fp    uint64
}

var (
	zero = Mk(nil, nil)
	one  = Mk([]*Game{zero}, nil)
	star = Mk([]*Game{zero}, []*Game{zero})
)

// Mk builds a game from its option lists. The slices are copied; a nil option
// panics since it would stand for no position at all.
func Mk(left, right []*Game) *Game {
	g := &Game{
		left:  cloneOptions(left),
		right: cloneOptions(right),
	}
	g.depth, g.fp = measure(g.left, g.right)
	return g
}

func cloneOptions(opts []*Game) []*Game {
	if len(opts) == 0 {
		return nil
	}
	out := make([]*Game, len(opts))
	for i, o := range opts {
		if o == nil {
			panic("game: nil option")
		}
		out[i] = o
	}
	return out
}

// measure computes the height and the structural fingerprint of a node from
// its children. Both are fixed once the node exists.
func measure(left, right []*Game) (int, uint64) {
	depth := 0
	buf := make([]byte, 0, 2+8*(len(left)+len(right)+2))
	buf = append(buf, 'L')
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(left)))
	for _, o := range left {
		depth = max(depth, o.depth+1)
		buf = binary.LittleEndian.AppendUint64(buf, o.fp)
	}
	buf = append(buf, 'R')
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(right)))
	for _, o := range right {
		depth = max(depth, o.depth+1)
		buf = binary.LittleEndian.AppendUint64(buf, o.fp)
	}
	return depth, xxhash.Sum64(buf)
}

// Zero is the game with no options: whoever is to move loses.
func Zero() *Game { return zero }

// One is {0|}: Left has one free move.
func One() *Game { return one }

// Star is {0|0}: whoever is to move wins.
func Star() *Game { return star }

// Left returns Left's options. The slice must not be modified.
func (g *Game) Left() []*Game { return g.left }

// Right returns Right's options. The slice must not be modified.
func (g *Game) Right() []*Game { return g.right }

func (g *Game) NumLeft() int { return len(g.left) }
func (g *Game) NumRight() int { return len(g.right) }

// MoveLeft returns the position after Left plays option i.
func (g *Game) MoveLeft(i int) *Game { return g.left[i] }

// MoveRight returns the position after Right plays option j.
func (g *Game) MoveRight(j int) *Game { return g.right[j] }

// Depth is the height of the game tree, 0 for Zero. For the finite games
// built here it is the game's birthday, and every option has a strictly
// smaller Depth.
func (g *Game) Depth() int { return g.depth }

// Fingerprint identifies the ordered shape of the tree. Structurally
// identical games share a fingerprint regardless of pointer identity.
func (g *Game) Fingerprint() uint64 { return g.fp }

// IsTerminal reports whether neither player can move.
func (g *Game) IsTerminal() bool { return len(g.left) == 0 && len(g.right) == 0 }

// InsertLeft returns g with one more Left option appended.
func InsertLeft(g, option *Game) *Game {
	left := make([]*Game, 0, len(g.left)+1)
	left = append(append(left, g.left...), option)
	return Mk(left, g.right)
}

// InsertRight returns g with one more Right option appended.
func InsertRight(g, option *Game) *Game {
	right := make([]*Game, 0, len(g.right)+1)
	right = append(append(right, g.right...), option)
	return Mk(g.left, right)
}

type pair struct{ a, b *Game }

// Identical reports whether a and b have the same ordered structure. It is
// stricter than equivalence: {0,0|} and {0|} are equivalent but not
// identical.
func Identical(a, b *Game) bool {
	seen := make(map[pair]bool)
	var walk func(a, b *Game) bool
	walk = func(a, b *Game) bool {
		if a == b {
			return true
		}
		if a.fp != b.fp || a.depth != b.depth ||
			len(a.left) != len(b.left) || len(a.right) != len(b.right) {
			return false
		}
		k := pair{a, b}
		if v, ok := seen[k]; ok {
			return v
		}
		ok := true
		for i := range a.left {
			if !walk(a.left[i], b.left[i]) {
				ok = false
				break
			}
		}
		if ok {
			for j := range a.right {
				if !walk(a.right[j], b.right[j]) {
					ok = false
					break
				}
			}
		}
		seen[k] = ok
		return ok
	}
	return walk(a, b)
}

// Nodes counts the distinct positions reachable from g, g included. Shared
// sub-positions are counted once.
func Nodes(g *Game) int {
	seen := make(map[*Game]struct{})
	var walk func(*Game)
	walk = func(n *Game) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		for _, o := range n.left {
			walk(o)
		}
		for _, o := range n.right {
			walk(o)
		}
	}
	walk(g)
	return len(seen)
}
