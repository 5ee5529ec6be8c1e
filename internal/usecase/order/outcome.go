package order

import "combgame/internal/domain/game"

// Outcome is the outcome class of a game: who wins under optimal play.
type Outcome int

const (
	// OutcomeP: the second player wins (g ≈ 0).
	OutcomeP Outcome = iota
	// OutcomeN: the first player wins (g ∥ 0).
	OutcomeN
	// OutcomeL: Left wins whoever starts (g > 0).
	OutcomeL
	// OutcomeR: Right wins whoever starts (g < 0).
	OutcomeR
)

func (o Outcome) String() string {
	switch o {
	case OutcomeP:
		return "P"
	case OutcomeN:
		return "N"
	case OutcomeL:
		return "L"
	case OutcomeR:
		return "R"
	default:
		return "?"
	}
}

// Describe spells the class out for reports.
func (o Outcome) Describe() string {
	switch o {
	case OutcomeP:
		return "second player wins"
	case OutcomeN:
		return "first player wins"
	case OutcomeL:
		return "Left wins"
	case OutcomeR:
		return "Right wins"
	default:
		return "unknown"
	}
}

// Comparisons against Zero only ever descend into g, so they get their own
// recursions:
//
//	g ≤ 0  iff  ∀ gL: gL ⧏ 0        g ⧏ 0  iff  ∃ gR: gR ≤ 0
//	0 ≤ g  iff  ∀ gR: 0 ⧏ gR        0 ⧏ g  iff  ∃ gL: 0 ≤ gL

// LEZero reports g ≤ 0: Right wins g when Left starts.
func (e *Evaluator) LEZero(g *game.Game) bool {
	if v, ok := e.leZero[g]; ok {
		return v
	}
	v := true
	for _, gl := range g.Left() {
		if !e.LFZero(gl) {
			v = false
			break
		}
	}
	e.leZero[g] = v
	return v
}

// LFZero reports g ⧏ 0: Right wins g when Right starts.
func (e *Evaluator) LFZero(g *game.Game) bool {
	for _, gr := range g.Right() {
		if e.LEZero(gr) {
			return true
		}
	}
	return false
}

// ZeroLE reports 0 ≤ g: Left wins g when Right starts.
func (e *Evaluator) ZeroLE(g *game.Game) bool {
	if v, ok := e.zeroLE[g]; ok {
		return v
	}
	v := true
	for _, gr := range g.Right() {
		if !e.ZeroLF(gr) {
			v = false
			break
		}
	}
	e.zeroLE[g] = v
	return v
}

// ZeroLF reports 0 ⧏ g: Left wins g when Left starts.
func (e *Evaluator) ZeroLF(g *game.Game) bool {
	for _, gl := range g.Left() {
		if e.ZeroLE(gl) {
			return true
		}
	}
	return false
}

func (e *Evaluator) Outcome(g *game.Game) Outcome {
	le, ge := e.LEZero(g), e.ZeroLE(g)
	switch {
	case le && ge:
		return OutcomeP
	case ge:
		return OutcomeL
	case le:
		return OutcomeR
	default:
		return OutcomeN
	}
}

// IsNumeric reports whether every Left option is strictly below every Right
// option, at every position of g.
func (e *Evaluator) IsNumeric(g *game.Game) bool {
	if v, ok := e.numeric[g]; ok {
		return v
	}
	v := true
	for _, gl := range g.Left() {
		for _, gr := range g.Right() {
			if !e.LT(gl, gr) {
				v = false
				break
			}
		}
		if !v {
			break
		}
	}
	for _, opts := range [][]*game.Game{g.Left(), g.Right()} {
		for _, o := range opts {
			if !v {
				break
			}
			v = e.IsNumeric(o)
		}
	}
	e.numeric[g] = v
	return v
}

func LEZero(g *game.Game) bool { return NewEvaluator().LEZero(g) }
func ZeroLE(g *game.Game) bool { return NewEvaluator().ZeroLE(g) }
func LFZero(g *game.Game) bool { return NewEvaluator().LFZero(g) }
func ZeroLF(g *game.Game) bool { return NewEvaluator().ZeroLF(g) }

func OutcomeOf(g *game.Game) Outcome { return NewEvaluator().Outcome(g) }

func IsNumeric(g *game.Game) bool { return NewEvaluator().IsNumeric(g) }
