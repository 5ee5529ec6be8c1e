// Package gametest provides game enumerations for tests.
package gametest

import "combgame/internal/domain/game"

// BornBy returns every game whose options are drawn from the games born by
// the previous day, one game per pair of option subsets: 1 game for day 0,
// 4 for day 1 and 256 for day 2. Later days are far too large and panic.
func BornBy(day int) []*game.Game {
	if day < 0 || day > 2 {
		panic("gametest: BornBy supports days 0 to 2")
	}
	games := []*game.Game{game.Zero()}
	for d := 0; d < day; d++ {
		subsets := Subsets(games)
		next := make([]*game.Game, 0, len(subsets)*len(subsets))
		for _, l := range subsets {
			for _, r := range subsets {
				next = append(next, game.Mk(l, r))
			}
		}
		games = next
	}
	return games
}

// Subsets lists every subset of opts, keeping the original order inside each.
func Subsets(opts []*game.Game) [][]*game.Game {
	n := len(opts)
	out := make([][]*game.Game, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		var s []*game.Game
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				s = append(s, opts[i])
			}
		}
		out = append(out, s)
	}
	return out
}
