package algebra

import (
	"combgame/internal/domain/game"
	"combgame/internal/usecase/order"
)

// Value is a game considered up to equivalence. It keeps one representative
// form; operations act on representatives and comparisons go through the
// order relation. The zero Value is the value of Zero.
type Value struct {
	rep *game.Game
}

func NewValue(g *game.Game) Value { return Value{rep: g} }

func (v Value) Game() *game.Game {
	if v.rep == nil {
		return game.Zero()
	}
	return v.rep
}

func (v Value) Neg() Value { return Value{rep: Negate(v.Game())} }
func (v Value) Add(w Value) Value { return Value{rep: Add(v.Game(), w.Game())} }
func (v Value) Sub(w Value) Value { return Value{rep: Sub(v.Game(), w.Game())} }
func (v Value) LE(w Value) bool { return order.LE(v.Game(), w.Game()) }
func (v Value) LT(w Value) bool { return order.LT(v.Game(), w.Game()) }
func (v Value) Fuzzy(w Value) bool { return order.Fuzzy(v.Game(), w.Game()) }
func (v Value) String() string { return v.Game().String() }
func (v Value) Outcome() order.Outcome { return order.OutcomeOf(v.Game()) }

// Equal reports v ≈ w. Identical representatives are equal without running
// the order relation.
func (v Value) Equal(w Value) bool {
	if game.Identical(v.Game(), w.Game()) {
		return true
	}
	return order.Equiv(v.Game(), w.Game())
}

func (v Value) Compare(w Value) order.Ordering {
	if game.Identical(v.Game(), w.Game()) {
		return order.Equivalent
	}
	return order.Compare(v.Game(), w.Game())
}

// Relabel looks for a relabelling from v's representative to w's.
func (v Value) Relabel(w Value) (*Relabelling, bool) {
	return Find(v.Game(), w.Game())
}
