package algebra

import "combgame/internal/domain/game"

// The constructors below build relabellings for the structural laws of the
// sum. Each one relates games as laid out by Builder, so the witnessed pair
// must come from the same option ordering: x's options first, then y's.

// NegNeg relabels -(-g) to g. Negation twice rebuilds g exactly.
func NegNeg(g *game.Game) *Relabelling {
	return Identity(g)
}

// AddZero relabels g + 0 to g. Zero adds no options, so g + 0 keeps the
// option layout of g at every position.
func AddZero(g *game.Game) *Relabelling {
	return Identity(g)
}

// AddComm relabels x + y to y + x. The block of x options moves behind
// the block of y options.
func AddComm(x, y *game.Game) *Relabelling {
	memo := make(map[pairKey]*Relabelling)
	var build func(x, y *game.Game) *Relabelling
	build = func(x, y *game.Game) *Relabelling {
		k := pairKey{x, y}
		if r, ok := memo[k]; ok {
			return r
		}
		nl, nr := x.NumLeft()+y.NumLeft(), x.NumRight()+y.NumRight()
		r := &Relabelling{
			Left:     make([]int, 0, nl),
			Right:    make([]int, 0, nr),
			LeftSub:  make([]*Relabelling, 0, nl),
			RightSub: make([]*Relabelling, 0, nr),
		}
		for i, xl := range x.Left() {
			r.Left = append(r.Left, y.NumLeft()+i)
			r.LeftSub = append(r.LeftSub, build(xl, y))
		}
		for j, yl := range y.Left() {
			r.Left = append(r.Left, j)
			r.LeftSub = append(r.LeftSub, build(x, yl))
		}
		for i, xr := range x.Right() {
			r.Right = append(r.Right, y.NumRight()+i)
			r.RightSub = append(r.RightSub, build(xr, y))
		}
		for j, yr := range y.Right() {
			r.Right = append(r.Right, j)
			r.RightSub = append(r.RightSub, build(x, yr))
		}
		memo[k] = r
		return r
	}
	return build(x, y)
}

// AddAssoc relabels (x + y) + z to x + (y + z). Both sides list x, y and z
// options in the same order, so every index maps to itself.
func AddAssoc(x, y, z *game.Game) *Relabelling {
	type key struct{ x, y, z *game.Game }
	memo := make(map[key]*Relabelling)
	var build func(x, y, z *game.Game) *Relabelling
	build = func(x, y, z *game.Game) *Relabelling {
		k := key{x, y, z}
		if r, ok := memo[k]; ok {
			return r
		}
		r := &Relabelling{}
		for _, xl := range x.Left() {
			r.LeftSub = append(r.LeftSub, build(xl, y, z))
		}
		for _, yl := range y.Left() {
			r.LeftSub = append(r.LeftSub, build(x, yl, z))
		}
		for _, zl := range z.Left() {
			r.LeftSub = append(r.LeftSub, build(x, y, zl))
		}
		for _, xr := range x.Right() {
			r.RightSub = append(r.RightSub, build(xr, y, z))
		}
		for _, yr := range y.Right() {
			r.RightSub = append(r.RightSub, build(x, yr, z))
		}
		for _, zr := range z.Right() {
			r.RightSub = append(r.RightSub, build(x, y, zr))
		}
		r.Left = identityPerm(len(r.LeftSub))
		r.Right = identityPerm(len(r.RightSub))
		memo[k] = r
		return r
	}
	return build(x, y, z)
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
