package short

import (
	"context"
	"errors"
	"testing"

	"combgame/internal/domain/domineering"
	"combgame/internal/domain/game"
	"combgame/internal/domain/game/gametest"
	errs "combgame/internal/errors"
	"combgame/internal/usecase/order"
)

func certifyAll(t *testing.T, games []*game.Game) []Game {
	t.Helper()
	out := make([]Game, len(games))
	for i, g := range games {
		s, err := Certify(g, DefaultLimits)
		if err != nil {
			t.Fatalf("certify %v: %v", g, err)
		}
		out[i] = s
	}
	return out
}

// subBoards lists every board obtained by deleting any set of cells from b.
func subBoards(b domineering.Board) []domineering.Board {
	cells := b.Cells()
	out := make([]domineering.Board, 0, 1<<len(cells))
	for mask := 0; mask < 1<<len(cells); mask++ {
		var keep []domineering.Cell
		for i, c := range cells {
			if mask&(1<<i) != 0 {
				keep = append(keep, c)
			}
		}
		out = append(out, domineering.NewBoard(keep...))
	}
	return out
}

func TestCertifyLimits(t *testing.T) {
	if _, err := Certify(game.Integer(5), Limits{MaxDepth: 3}); !errors.Is(err, errs.ErrNotShort) {
		t.Fatalf("depth limit: got %v, want ErrNotShort", err)
	}
	if _, err := Certify(game.NimHeap(10), Limits{MaxNodes: 5}); !errors.Is(err, errs.ErrNotShort) {
		t.Fatalf("node limit: got %v, want ErrNotShort", err)
	}
	if _, err := Certify(nil, DefaultLimits); !errors.Is(err, errs.ErrNotShort) {
		t.Fatalf("nil game: got %v, want ErrNotShort", err)
	}
	s, err := Certify(game.NimHeap(10), Limits{MaxDepth: 10, MaxNodes: 11})
	if err != nil {
		t.Fatalf("heap 10 fits: %v", err)
	}
	if s.NumLeft() != 10 || !game.Identical(s.MoveLeft(3).Game(), game.NimHeap(3)) {
		t.Fatal("certified options must be the options of the game")
	}
	var zero Game
	if !game.Identical(zero.Game(), game.Zero()) {
		t.Fatal("the zero Game is 0")
	}
}

func TestDeciderMatchesEvaluatorOnDayTwo(t *testing.T) {
	ctx := context.Background()
	games := certifyAll(t, gametest.BornBy(2))
	d := NewDecider()
	e := order.NewEvaluator()
	for _, x := range games {
		for _, y := range games {
			le, err := d.LE(ctx, x, y)
			if err != nil {
				t.Fatalf("LE: %v", err)
			}
			if le != e.LE(x.Game(), y.Game()) {
				t.Fatalf("%v ≤ %v: decider says %v", x, y, le)
			}
			lf, err := d.LF(ctx, x, y)
			if err != nil {
				t.Fatalf("LF: %v", err)
			}
			if lf != e.LF(x.Game(), y.Game()) {
				t.Fatalf("%v ⧏ %v: decider says %v", x, y, lf)
			}
		}
	}
}

func TestDeciderMatchesEvaluatorOnDomineering(t *testing.T) {
	ctx := context.Background()
	var games []*game.Game
	for _, b := range subBoards(domineering.Rect(3, 2)) {
		g, err := b.Game()
		if err != nil {
			t.Fatalf("game of %v: %v", b, err)
		}
		games = append(games, g)
	}
	certified := certifyAll(t, games)
	d := NewDecider(WithParallelDepth(2))
	e := order.NewEvaluator()
	for _, x := range certified {
		for _, y := range certified {
			got, err := d.Compare(ctx, x, y)
			if err != nil {
				t.Fatalf("compare: %v", err)
			}
			if want := e.Compare(x.Game(), y.Game()); got != want {
				t.Fatalf("%v vs %v: decider %v, evaluator %v", x, y, got, want)
			}
		}
	}
}

func TestOptionsDoNotChangeResults(t *testing.T) {
	ctx := context.Background()
	games := certifyAll(t, gametest.BornBy(2)[:64])
	deciders := map[string]*Decider{
		"default":  NewDecider(),
		"no memo":  NewDecider(WithMemo(false)),
		"parallel": NewDecider(WithParallelDepth(3)),
		"both":     NewDecider(WithMemo(false), WithParallelDepth(1)),
		"negative": NewDecider(WithParallelDepth(-4)),
	}
	e := order.NewEvaluator()
	for name, d := range deciders {
		for _, x := range games {
			for _, y := range games {
				got, err := d.Compare(ctx, x, y)
				if err != nil {
					t.Fatalf("%s: %v", name, err)
				}
				if want := e.Compare(x.Game(), y.Game()); got != want {
					t.Fatalf("%s: %v vs %v = %v, want %v", name, x, y, got, want)
				}
			}
		}
	}
}

func TestDerivedRelations(t *testing.T) {
	ctx := context.Background()
	one, zero, star := MustCertify(game.One()), MustCertify(game.Zero()), MustCertify(game.Star())
	d := NewDecider()
	if ok, err := d.LT(ctx, zero, one); err != nil || !ok {
		t.Fatalf("0 < 1: %v %v", ok, err)
	}
	if ok, err := d.Fuzzy(ctx, star, zero); err != nil || !ok {
		t.Fatalf("* ∥ 0: %v %v", ok, err)
	}
	if ok, err := d.Equiv(ctx, star, star); err != nil || !ok {
		t.Fatalf("* ≈ *: %v %v", ok, err)
	}
	board, err := domineering.NewBoard(domineering.Cell{X: 0, Y: 0}, domineering.Cell{X: 1, Y: 0}).Game()
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := d.Equiv(ctx, MustCertify(board), MustCertify(game.Integer(-1))); err != nil || !ok {
		t.Fatalf("horizontal strip ≈ -1: %v %v", ok, err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDecider()
	x := MustCertify(game.One())
	if _, err := d.LE(ctx, x, x); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if _, err := d.Compare(ctx, x, x); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

// expiringCtx reports cancellation once Err has been asked enough times.
type expiringCtx struct {
	context.Context
	left int
}

func (c *expiringCtx) Err() error {
	c.left--
	if c.left < 0 {
		return context.Canceled
	}
	return nil
}

func TestCancellationMidwayLeavesMemoClean(t *testing.T) {
	saved := checkEvery
	checkEvery = 1
	defer func() { checkEvery = saved }()

	g, err := domineering.Rect(3, 2).Game()
	if err != nil {
		t.Fatal(err)
	}
	x, y := MustCertify(g), MustCertify(game.Zero())
	d := NewDecider()
	if _, err := d.Compare(&expiringCtx{Context: context.Background(), left: 5}, x, y); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	got, err := d.Compare(context.Background(), x, y)
	if err != nil {
		t.Fatal(err)
	}
	if want := order.Compare(g, game.Zero()); got != want {
		t.Fatalf("after cancellation: %v, want %v", got, want)
	}
}

func TestMemoIsKeyedByNode(t *testing.T) {
	a := game.Mk([]*game.Game{game.Zero()}, []*game.Game{game.Star()})
	b := game.Mk([]*game.Game{game.Zero()}, []*game.Game{game.Star()})
	zero := MustCertify(game.Zero())

	d := NewDecider()
	av, err := d.LE(context.Background(), MustCertify(a), zero)
	if err != nil {
		t.Fatal(err)
	}
	before := d.Len()
	bv, err := d.LE(context.Background(), MustCertify(b), zero)
	if err != nil {
		t.Fatal(err)
	}
	if av != bv {
		t.Fatalf("identical games compare differently: %v and %v", av, bv)
	}
	if d.Len() <= before {
		t.Fatalf("a distinct node was answered from another node's memo entry")
	}
	if NewDecider(WithMemo(false)).Len() != 0 {
		t.Fatalf("a fresh decider must have an empty memo")
	}
}
