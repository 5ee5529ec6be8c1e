package algebra

import (
	"testing"

	"combgame/internal/domain/game"
	"combgame/internal/domain/game/gametest"
	"combgame/internal/usecase/order"
)

var half = game.Mk([]*game.Game{game.Zero()}, []*game.Game{game.One()})

func TestNegateKnownForms(t *testing.T) {
	cases := []struct {
		g, want *game.Game
	}{
		{game.Zero(), game.Zero()},
		{game.One(), game.Integer(-1)},
		{game.Integer(3), game.Integer(-3)},
		{game.Star(), game.Star()},
		{game.NimHeap(4), game.NimHeap(4)},
		{game.Up(), game.Down()},
	}
	for _, c := range cases {
		if got := Negate(c.g); !game.Identical(got, c.want) {
			t.Fatalf("-(%v) = %v, want %v", c.g, got, c.want)
		}
	}
}

func TestNegateInvolution(t *testing.T) {
	b := NewBuilder()
	for _, g := range gametest.BornBy(2) {
		nn := b.Negate(b.Negate(g))
		if !game.Identical(nn, g) {
			t.Fatalf("-(-%v) = %v", g, nn)
		}
		if err := NegNeg(g).Verify(nn, g); err != nil {
			t.Fatalf("NegNeg(%v): %v", g, err)
		}
	}
}

func TestAddOptionLayout(t *testing.T) {
	x := game.Mk([]*game.Game{game.Zero(), game.Star()}, []*game.Game{game.One()})
	y := game.Up()
	b := NewBuilder()
	s := b.Add(x, y)
	if s.NumLeft() != 3 || s.NumRight() != 2 {
		t.Fatalf("sum has %d|%d options, want 3|2", s.NumLeft(), s.NumRight())
	}
	wantLeft := []*game.Game{b.Add(x.MoveLeft(0), y), b.Add(x.MoveLeft(1), y), b.Add(x, y.MoveLeft(0))}
	for i, w := range wantLeft {
		if s.MoveLeft(i) != w {
			t.Fatalf("left option %d of the sum is %v, want %v", i, s.MoveLeft(i), w)
		}
	}
	wantRight := []*game.Game{b.Add(x.MoveRight(0), y), b.Add(x, y.MoveRight(0))}
	for j, w := range wantRight {
		if s.MoveRight(j) != w {
			t.Fatalf("right option %d of the sum is %v, want %v", j, s.MoveRight(j), w)
		}
	}
}

func TestKnownSums(t *testing.T) {
	cases := []struct {
		name string
		got  *game.Game
		want *game.Game
	}{
		{"1+1", Add(game.One(), game.One()), game.Integer(2)},
		{"*+*", Add(game.Star(), game.Star()), game.Zero()},
		{"1/2+1/2", Add(half, half), game.One()},
		{"2-2", Sub(game.Integer(2), game.Integer(2)), game.Zero()},
		{"^+v", Add(game.Up(), game.Down()), game.Zero()},
		{"-1+3", Add(game.Integer(-1), game.Integer(3)), game.Integer(2)},
	}
	for _, c := range cases {
		if !order.Equiv(c.got, c.want) {
			t.Fatalf("%s = %v, want a game equivalent to %v", c.name, c.got, c.want)
		}
	}
	if !order.GT(Add(game.Up(), game.Up()), game.Zero()) {
		t.Fatal("^+^ must be positive")
	}
	if !order.Fuzzy(Add(game.Up(), game.Star()), game.Zero()) {
		t.Fatal("^* must be fuzzy with 0")
	}
}

func TestIdentityAndInverse(t *testing.T) {
	b := NewBuilder()
	e := order.NewEvaluator()
	zero := game.Zero()
	for _, g := range gametest.BornBy(2) {
		s := b.Add(g, zero)
		if !e.Equiv(s, g) {
			t.Fatalf("%v + 0 must be equivalent to %v", g, g)
		}
		if err := AddZero(g).Verify(s, g); err != nil {
			t.Fatalf("AddZero(%v): %v", g, err)
		}
		if d := b.Sub(g, g); !e.Equiv(d, zero) {
			t.Fatalf("%v - %v = %v is not equivalent to 0", g, g, d)
		}
	}
}

func TestCommutativity(t *testing.T) {
	b := NewBuilder()
	e := order.NewEvaluator()
	for _, x := range gametest.BornBy(1) {
		for _, y := range gametest.BornBy(2) {
			xy, yx := b.Add(x, y), b.Add(y, x)
			if !e.Equiv(xy, yx) {
				t.Fatalf("%v + %v is not equivalent to %v + %v", x, y, y, x)
			}
			if err := AddComm(x, y).Verify(xy, yx); err != nil {
				t.Fatalf("AddComm(%v, %v): %v", x, y, err)
			}
		}
	}
}

func TestAssociativity(t *testing.T) {
	b := NewBuilder()
	e := order.NewEvaluator()
	games := append(gametest.BornBy(1), gametest.BornBy(2)[:8]...)
	for _, x := range games {
		for _, y := range games {
			for _, z := range games {
				l, r := b.Add(b.Add(x, y), z), b.Add(x, b.Add(y, z))
				if err := AddAssoc(x, y, z).Verify(l, r); err != nil {
					t.Fatalf("AddAssoc(%v, %v, %v): %v", x, y, z, err)
				}
				if !e.Equiv(l, r) {
					t.Fatalf("(%v + %v) + %v is not equivalent to %v + (%v + %v)", x, y, z, x, y, z)
				}
			}
		}
	}
}

func TestSum(t *testing.T) {
	b := NewBuilder()
	if !game.Identical(b.Sum(), game.Zero()) {
		t.Fatal("empty sum must be 0")
	}
	if s := b.Sum(game.One(), game.One(), game.One()); !order.Equiv(s, game.Integer(3)) {
		t.Fatalf("1+1+1 = %v, want 3", s)
	}
}
