// Package order decides how two games compare.
//
// The order is defined by two relations evaluated together. With ⧏ read as
// "less or fuzzy":
//
//	x ≤ y  iff  no Left option of x is ≥ y and no Right option of y is ≤ x,
//	           that is  ∀ xL: xL ⧏ y  and  ∀ yR: x ⧏ yR
//	x ⧏ y  iff  ∃ xR: xR ≤ y  or  ∃ yL: x ≤ yL
//
// x ⧏ y holds exactly when y ≤ x does not. Strict order, equivalence and
// fuzziness are derived from the pair.
package order

import "combgame/internal/domain/game"

// Ordering is the result of comparing two games. Exactly one value holds for
// any pair.
type Ordering int

const (
	Less Ordering = iota
	Equivalent
	Greater
	Incomparable
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equivalent:
		return "equivalent"
	case Greater:
		return "greater"
	case Incomparable:
		return "fuzzy"
	default:
		return "unknown"
	}
}

type pairKey struct{ x, y *game.Game }

type relation struct{ le, lf bool }

// Evaluator compares games and remembers every pair it has decided. It is
// not safe for concurrent use; the package level functions use a fresh one
// per call.
type Evaluator struct {
	memo    map[pairKey]relation
	leZero  map[*game.Game]bool
	zeroLE  map[*game.Game]bool
	numeric map[*game.Game]bool
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		memo:    make(map[pairKey]relation),
		leZero:  make(map[*game.Game]bool),
		zeroLE:  make(map[*game.Game]bool),
		numeric: make(map[*game.Game]bool),
	}
}

// relate returns (x ≤ y, x ⧏ y). bound is the measure of the calling pair;
// every recursive call replaces x or y by one of its options, so the measure
// x.Depth()+y.Depth() must be strictly below it.
func (e *Evaluator) relate(x, y *game.Game, bound int) relation {
	if x.Depth()+y.Depth() >= bound {
		panic("order: comparison measure did not decrease")
	}
	k := pairKey{x, y}
	if r, ok := e.memo[k]; ok {
		return r
	}
	m := x.Depth() + y.Depth()

	le := true
	for _, xl := range x.Left() {
		if !e.relate(xl, y, m).lf {
			le = false
			break
		}
	}
	if le {
		for _, yr := range y.Right() {
			if !e.relate(x, yr, m).lf {
				le = false
				break
			}
		}
	}

	lf := false
	for _, xr := range x.Right() {
		if e.relate(xr, y, m).le {
			lf = true
			break
		}
	}
	if !lf {
		for _, yl := range y.Left() {
			if e.relate(x, yl, m).le {
				lf = true
				break
			}
		}
	}

	r := relation{le: le, lf: lf}
	e.memo[k] = r
	return r
}

func (e *Evaluator) top(x, y *game.Game) relation {
	return e.relate(x, y, x.Depth()+y.Depth()+1)
}

// LE reports x ≤ y: Left does at least as well in x as in y.
func (e *Evaluator) LE(x, y *game.Game) bool { return e.top(x, y).le }

// LF reports x ⧏ y, i.e. not y ≤ x.
func (e *Evaluator) LF(x, y *game.Game) bool { return e.top(x, y).lf }

// LT reports strict x < y.
func (e *Evaluator) LT(x, y *game.Game) bool { return e.LE(x, y) && e.LF(x, y) }

func (e *Evaluator) Equiv(x, y *game.Game) bool { return e.LE(x, y) && e.LE(y, x) }

// Fuzzy reports x ∥ y: neither x ≤ y nor y ≤ x.
func (e *Evaluator) Fuzzy(x, y *game.Game) bool { return !e.LE(x, y) && !e.LE(y, x) }

func (e *Evaluator) Compare(x, y *game.Game) Ordering {
	return FromRelations(e.LE(x, y), e.LE(y, x))
}

// FromRelations turns the two one-sided answers into an Ordering.
func FromRelations(xLEy, yLEx bool) Ordering {
	switch {
	case xLEy && yLEx:
		return Equivalent
	case xLEy:
		return Less
	case yLEx:
		return Greater
	default:
		return Incomparable
	}
}

func LE(x, y *game.Game) bool { return NewEvaluator().LE(x, y) }
func LF(x, y *game.Game) bool { return NewEvaluator().LF(x, y) }
func LT(x, y *game.Game) bool { return NewEvaluator().LT(x, y) }
func GE(x, y *game.Game) bool { return NewEvaluator().LE(y, x) }
func GT(x, y *game.Game) bool { return NewEvaluator().LT(y, x) }
func Equiv(x, y *game.Game) bool { return NewEvaluator().Equiv(x, y) }
func Fuzzy(x, y *game.Game) bool { return NewEvaluator().Fuzzy(x, y) }

func Compare(x, y *game.Game) Ordering { return NewEvaluator().Compare(x, y) }
