package algebra

import (
	"fmt"

	"combgame/internal/domain/game"
	errs "combgame/internal/errors"
)

// Relabelling from x to y pairs every Left option of x with a Left option
// of y (Left[i] is the index in y matched with x's option i) and likewise
// for Right options, with each matched pair again related by a relabelling.
// A valid relabelling proves x ≈ y without running the order relation.
type Relabelling struct {
	Left     []int
	Right    []int
	LeftSub  []*Relabelling
	RightSub []*Relabelling
}

type verifyKey struct {
	r    *Relabelling
	x, y *game.Game
}

// Verify checks that r is a relabelling from x to y.
func (r *Relabelling) Verify(x, y *game.Game) error {
	return r.verify(x, y, make(map[verifyKey]struct{}))
}

func (r *Relabelling) verify(x, y *game.Game, done map[verifyKey]struct{}) error {
	if r == nil {
		return fmt.Errorf("%w: missing relabelling for %v -> %v", errs.ErrInvalidRelabelling, x, y)
	}
	k := verifyKey{r, x, y}
	if _, ok := done[k]; ok {
		return nil
	}
	if err := checkSide("left", r.Left, r.LeftSub, x.NumLeft(), y.NumLeft()); err != nil {
		return err
	}
	if err := checkSide("right", r.Right, r.RightSub, x.NumRight(), y.NumRight()); err != nil {
		return err
	}
	for i, j := range r.Left {
		if err := r.LeftSub[i].verify(x.MoveLeft(i), y.MoveLeft(j), done); err != nil {
			return err
		}
	}
	for i, j := range r.Right {
		if err := r.RightSub[i].verify(x.MoveRight(i), y.MoveRight(j), done); err != nil {
			return err
		}
	}
	done[k] = struct{}{}
	return nil
}

func checkSide(side string, perm []int, subs []*Relabelling, nx, ny int) error {
	if nx != ny || len(perm) != nx || len(subs) != nx {
		return fmt.Errorf("%w: %s sides have %d and %d options, relabelling maps %d",
			errs.ErrInvalidRelabelling, side, nx, ny, len(perm))
	}
	used := make([]bool, ny)
	for i, j := range perm {
		if j < 0 || j >= ny || used[j] {
			return fmt.Errorf("%w: %s option %d maps to %d which is out of range or taken",
				errs.ErrInvalidRelabelling, side, i, j)
		}
		used[j] = true
	}
	return nil
}

// Symm returns the inverse relabelling, from y back to x.
func (r *Relabelling) Symm() *Relabelling {
	return r.symm(make(map[*Relabelling]*Relabelling))
}

func (r *Relabelling) symm(memo map[*Relabelling]*Relabelling) *Relabelling {
	if s, ok := memo[r]; ok {
		return s
	}
	s := &Relabelling{
		Left:     make([]int, len(r.Left)),
		Right:    make([]int, len(r.Right)),
		LeftSub:  make([]*Relabelling, len(r.Left)),
		RightSub: make([]*Relabelling, len(r.Right)),
	}
	memo[r] = s
	for i, j := range r.Left {
		s.Left[j] = i
		s.LeftSub[j] = r.LeftSub[i].symm(memo)
	}
	for i, j := range r.Right {
		s.Right[j] = i
		s.RightSub[j] = r.RightSub[i].symm(memo)
	}
	return s
}

// Trans composes r (x to y) with s (y to z) into a relabelling from x to z.
func (r *Relabelling) Trans(s *Relabelling) *Relabelling {
	return r.trans(s, make(map[[2]*Relabelling]*Relabelling))
}

func (r *Relabelling) trans(s *Relabelling, memo map[[2]*Relabelling]*Relabelling) *Relabelling {
	k := [2]*Relabelling{r, s}
	if t, ok := memo[k]; ok {
		return t
	}
	t := &Relabelling{
		Left:     make([]int, len(r.Left)),
		Right:    make([]int, len(r.Right)),
		LeftSub:  make([]*Relabelling, len(r.Left)),
		RightSub: make([]*Relabelling, len(r.Right)),
	}
	memo[k] = t
	for i, j := range r.Left {
		t.Left[i] = s.Left[j]
		t.LeftSub[i] = r.LeftSub[i].trans(s.LeftSub[j], memo)
	}
	for i, j := range r.Right {
		t.Right[i] = s.Right[j]
		t.RightSub[i] = r.RightSub[i].trans(s.RightSub[j], memo)
	}
	return t
}

// Identity relabels g to itself, or to any game identical to it.
func Identity(g *game.Game) *Relabelling {
	memo := make(map[*game.Game]*Relabelling)
	var build func(*game.Game) *Relabelling
	build = func(g *game.Game) *Relabelling {
		if r, ok := memo[g]; ok {
			return r
		}
		r := &Relabelling{
			Left:     make([]int, g.NumLeft()),
			Right:    make([]int, g.NumRight()),
			LeftSub:  make([]*Relabelling, g.NumLeft()),
			RightSub: make([]*Relabelling, g.NumRight()),
		}
		for i, o := range g.Left() {
			r.Left[i] = i
			r.LeftSub[i] = build(o)
		}
		for j, o := range g.Right() {
			r.Right[j] = j
			r.RightSub[j] = build(o)
		}
		memo[g] = r
		return r
	}
	return build(g)
}

// Find searches for a relabelling from x to y by matching options with
// backtracking. The search is exponential in the number of options at a
// node, so it suits small games or games that are nearly identical.
func Find(x, y *game.Game) (*Relabelling, bool) {
	f := &finder{memo: make(map[pairKey]*Relabelling), failed: make(map[pairKey]struct{})}
	r := f.find(x, y)
	return r, r != nil
}

type finder struct {
	memo   map[pairKey]*Relabelling
	failed map[pairKey]struct{}
}

func (f *finder) find(x, y *game.Game) *Relabelling {
	k := pairKey{x, y}
	if r, ok := f.memo[k]; ok {
		return r
	}
	if _, ok := f.failed[k]; ok {
		return nil
	}
	if x.NumLeft() != y.NumLeft() || x.NumRight() != y.NumRight() || x.Depth() != y.Depth() {
		f.failed[k] = struct{}{}
		return nil
	}
	if game.Identical(x, y) {
		r := Identity(x)
		f.memo[k] = r
		return r
	}
	left, leftSub, ok := f.match(x.Left(), y.Left())
	if !ok {
		f.failed[k] = struct{}{}
		return nil
	}
	right, rightSub, ok := f.match(x.Right(), y.Right())
	if !ok {
		f.failed[k] = struct{}{}
		return nil
	}
	r := &Relabelling{Left: left, Right: right, LeftSub: leftSub, RightSub: rightSub}
	f.memo[k] = r
	return r
}

// match finds a bijection from xs to ys under which every pair relabels.
func (f *finder) match(xs, ys []*game.Game) ([]int, []*Relabelling, bool) {
	perm := make([]int, len(xs))
	subs := make([]*Relabelling, len(xs))
	used := make([]bool, len(ys))
	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(xs) {
			return true
		}
		for j := range ys {
			if used[j] {
				continue
			}
			r := f.find(xs[i], ys[j])
			if r == nil {
				continue
			}
			used[j], perm[i], subs[i] = true, j, r
			if assign(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	if !assign(0) {
		return nil, nil, false
	}
	return perm, subs, true
}
