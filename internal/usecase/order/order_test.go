package order

import (
	"testing"

	"combgame/internal/domain/game"
	"combgame/internal/domain/game/gametest"
)

var half = game.Mk([]*game.Game{game.Zero()}, []*game.Game{game.One()})

func TestKnownComparisons(t *testing.T) {
	cases := []struct {
		name string
		x, y *game.Game
		want Ordering
	}{
		{"0 vs 0", game.Zero(), game.Zero(), Equivalent},
		{"0 vs 1", game.Zero(), game.One(), Less},
		{"-1 vs 0", game.Integer(-1), game.Zero(), Less},
		{"2 vs 1", game.Integer(2), game.One(), Greater},
		{"* vs 0", game.Star(), game.Zero(), Incomparable},
		{"^ vs 0", game.Up(), game.Zero(), Greater},
		{"^ vs *", game.Up(), game.Star(), Incomparable},
		{"v vs 0", game.Down(), game.Zero(), Less},
		{"1/2 vs 0", half, game.Zero(), Greater},
		{"1/2 vs 1", half, game.One(), Less},
		{"{0,0|} vs 1", game.Mk([]*game.Game{game.Zero(), game.Zero()}, nil), game.One(), Equivalent},
		{"{-1|1} vs 0", game.Mk([]*game.Game{game.Integer(-1)}, []*game.Game{game.One()}), game.Zero(), Equivalent},
		{"*2 vs *", game.NimHeap(2), game.Star(), Incomparable},
	}
	for _, c := range cases {
		if got := Compare(c.x, c.y); got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRelationsAgree(t *testing.T) {
	x, y := game.Up(), game.Star()
	if !Fuzzy(x, y) || Equiv(x, y) || LT(x, y) || GT(x, y) {
		t.Fatal("^ and * must be fuzzy")
	}
	if !LF(x, y) || !LF(y, x) {
		t.Fatal("fuzzy games are less-or-fuzzy both ways")
	}
	if !GE(game.One(), game.Zero()) || !GT(game.One(), game.Zero()) {
		t.Fatal("1 > 0")
	}
}

func TestTotality(t *testing.T) {
	games := gametest.BornBy(2)
	e := NewEvaluator()
	for _, x := range games {
		for _, y := range games {
			count := 0
			for _, holds := range []bool{e.LT(x, y), e.LT(y, x), e.Equiv(x, y), e.Fuzzy(x, y)} {
				if holds {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("%v vs %v: %d relations hold", x, y, count)
			}
			if e.LF(x, y) == e.LE(y, x) {
				t.Fatalf("%v ⧏ %v must be the negation of %v ≤ %v", x, y, y, x)
			}
		}
	}
}

func TestPreorder(t *testing.T) {
	games := gametest.BornBy(2)
	e := NewEvaluator()
	for _, x := range games {
		if !e.LE(x, x) {
			t.Fatalf("%v ≤ %v must hold", x, x)
		}
	}
	sample := games[:48]
	for _, x := range sample {
		for _, y := range sample {
			if !e.LE(x, y) {
				continue
			}
			for _, z := range sample {
				if e.LE(y, z) && !e.LE(x, z) {
					t.Fatalf("transitivity fails for %v ≤ %v ≤ %v", x, y, z)
				}
			}
		}
	}
}

func TestSingleSidedForms(t *testing.T) {
	e := NewEvaluator()
	zero := game.Zero()
	for _, g := range gametest.BornBy(2) {
		if e.LEZero(g) != e.LE(g, zero) {
			t.Fatalf("LEZero(%v) disagrees with LE", g)
		}
		if e.ZeroLE(g) != e.LE(zero, g) {
			t.Fatalf("ZeroLE(%v) disagrees with LE", g)
		}
		if e.LFZero(g) != e.LF(g, zero) {
			t.Fatalf("LFZero(%v) disagrees with LF", g)
		}
		if e.ZeroLF(g) != e.LF(zero, g) {
			t.Fatalf("ZeroLF(%v) disagrees with LF", g)
		}
	}
}

func TestOutcome(t *testing.T) {
	cases := map[*game.Game]Outcome{
		game.Zero():      OutcomeP,
		game.Star():      OutcomeN,
		game.One():       OutcomeL,
		game.Integer(-1): OutcomeR,
		game.Up():        OutcomeL,
		game.Down():      OutcomeR,
		game.NimHeap(3):  OutcomeN,
		game.Integer(-5): OutcomeR,
	}
	for g, want := range cases {
		if got := OutcomeOf(g); got != want {
			t.Fatalf("outcome of %v = %v (%s), want %v", g, got, got.Describe(), want)
		}
	}
}

func TestOutcomeMatchesCompareWithZero(t *testing.T) {
	e := NewEvaluator()
	want := map[Ordering]Outcome{
		Equivalent:   OutcomeP,
		Incomparable: OutcomeN,
		Greater:      OutcomeL,
		Less:         OutcomeR,
	}
	for _, g := range gametest.BornBy(2) {
		if got := e.Outcome(g); got != want[e.Compare(g, game.Zero())] {
			t.Fatalf("outcome of %v = %v but it compares %v to 0", g, got, e.Compare(g, game.Zero()))
		}
	}
}

func TestIsNumeric(t *testing.T) {
	numeric := []*game.Game{game.Zero(), game.One(), game.Integer(-3), half}
	for _, g := range numeric {
		if !IsNumeric(g) {
			t.Fatalf("%v should be numeric", g)
		}
	}
	for _, g := range []*game.Game{game.Star(), game.Up(), game.NimHeap(2), game.Mk([]*game.Game{game.One()}, []*game.Game{game.Zero()})} {
		if IsNumeric(g) {
			t.Fatalf("%v should not be numeric", g)
		}
	}
}
