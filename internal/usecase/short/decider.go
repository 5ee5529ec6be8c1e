package short

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"combgame/internal/domain/game"
	"combgame/internal/usecase/order"
)

// checkEvery is how many recursion steps pass between context checks.
var checkEvery uint64 = 1024

// errRefuted and errConfirmed stop an errgroup as soon as one branch
// settles a conjunction or a disjunction.
var (
	errRefuted   = errors.New("short: branch refuted")
	errConfirmed = errors.New("short: branch confirmed")
)

const (
	opLE byte = iota
	opLF
)

type memoKey struct {
	op   byte
	x, y *game.Game
}

type Option func(*Decider)

// WithMemo turns the result memo on or off. It is on by default.
func WithMemo(on bool) Option {
	return func(d *Decider) { d.memo = on }
}

// WithParallelDepth lets the top n levels of the recursion evaluate their
// branches concurrently.
func WithParallelDepth(n int) Option {
	return func(d *Decider) {
		if n < 0 {
			n = 0
		}
		d.parallel = n
	}
}

// Decider evaluates the order on certified games. It is safe for concurrent
// use, and its memo is shared by every call made through it and never
// shrinks, so long running callers should use one Decider per unit of work.
// The memo is keyed by node pointers.
type Decider struct {
	memo     bool
	parallel int
	cache    sync.Map
	steps    atomic.Uint64
}

func NewDecider(opts ...Option) *Decider {
	d := &Decider{memo: true}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Decider) LE(ctx context.Context, x, y Game) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return d.le(ctx, x.Game(), y.Game(), 0)
}

func (d *Decider) LF(ctx context.Context, x, y Game) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return d.lf(ctx, x.Game(), y.Game(), 0)
}

func (d *Decider) LT(ctx context.Context, x, y Game) (bool, error) {
	o, err := d.Compare(ctx, x, y)
	return o == order.Less, err
}

func (d *Decider) Equiv(ctx context.Context, x, y Game) (bool, error) {
	o, err := d.Compare(ctx, x, y)
	return o == order.Equivalent, err
}

func (d *Decider) Fuzzy(ctx context.Context, x, y Game) (bool, error) {
	o, err := d.Compare(ctx, x, y)
	return o == order.Incomparable, err
}

func (d *Decider) Compare(ctx context.Context, x, y Game) (order.Ordering, error) {
	xy, err := d.LE(ctx, x, y)
	if err != nil {
		return order.Incomparable, err
	}
	yx, err := d.LE(ctx, y, x)
	if err != nil {
		return order.Incomparable, err
	}
	return order.FromRelations(xy, yx), nil
}

// Len is the number of memoised relations.
func (d *Decider) Len() int {
	n := 0
	d.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (d *Decider) tick(ctx context.Context) error {
	if d.steps.Add(1)%checkEvery == 0 {
		return ctx.Err()
	}
	return nil
}

func (d *Decider) lookup(k memoKey) (bool, bool) {
	if !d.memo {
		return false, false
	}
	v, ok := d.cache.Load(k)
	if !ok {
		return false, false
	}
	return v.(bool), true
}

func (d *Decider) store(k memoKey, v bool) {
	if d.memo {
		d.cache.LoadOrStore(k, v)
	}
}

type branch func(ctx context.Context) (bool, error)

// le: ∀ xL: xL ⧏ y  and  ∀ yR: x ⧏ yR.
func (d *Decider) le(ctx context.Context, x, y *game.Game, level int) (bool, error) {
	k := memoKey{opLE, x, y}
	if v, ok := d.lookup(k); ok {
		return v, nil
	}
	if err := d.tick(ctx); err != nil {
		return false, err
	}
	branches := make([]branch, 0, x.NumLeft()+y.NumRight())
	for _, xl := range x.Left() {
		branches = append(branches, func(ctx context.Context) (bool, error) {
			return d.lf(ctx, xl, y, level+1)
		})
	}
	for _, yr := range y.Right() {
		branches = append(branches, func(ctx context.Context) (bool, error) {
			return d.lf(ctx, x, yr, level+1)
		})
	}
	v, err := d.all(ctx, level, branches)
	if err != nil {
		return false, err
	}
	d.store(k, v)
	return v, nil
}

// lf: ∃ xR: xR ≤ y  or  ∃ yL: x ≤ yL.
func (d *Decider) lf(ctx context.Context, x, y *game.Game, level int) (bool, error) {
	k := memoKey{opLF, x, y}
	if v, ok := d.lookup(k); ok {
		return v, nil
	}
	if err := d.tick(ctx); err != nil {
		return false, err
	}
	branches := make([]branch, 0, x.NumRight()+y.NumLeft())
	for _, xr := range x.Right() {
		branches = append(branches, func(ctx context.Context) (bool, error) {
			return d.le(ctx, xr, y, level+1)
		})
	}
	for _, yl := range y.Left() {
		branches = append(branches, func(ctx context.Context) (bool, error) {
			return d.le(ctx, x, yl, level+1)
		})
	}
	v, err := d.any(ctx, level, branches)
	if err != nil {
		return false, err
	}
	d.store(k, v)
	return v, nil
}

func (d *Decider) all(ctx context.Context, level int, branches []branch) (bool, error) {
	if level >= d.parallel || len(branches) < 2 {
		for _, b := range branches {
			ok, err := b(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range branches {
		g.Go(func() error {
			ok, err := b(gctx)
			if err != nil {
				return err
			}
			if !ok {
				return errRefuted
			}
			return nil
		})
	}
	switch err := g.Wait(); {
	case err == nil:
		return true, nil
	case errors.Is(err, errRefuted):
		return false, nil
	default:
		return false, err
	}
}

func (d *Decider) any(ctx context.Context, level int, branches []branch) (bool, error) {
	if level >= d.parallel || len(branches) < 2 {
		for _, b := range branches {
			ok, err := b(ctx)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range branches {
		g.Go(func() error {
			ok, err := b(gctx)
			if err != nil {
				return err
			}
			if ok {
				return errConfirmed
			}
			return nil
		})
	}
	switch err := g.Wait(); {
	case err == nil:
		return false, nil
	case errors.Is(err, errConfirmed):
		return true, nil
	default:
		return false, err
	}
}
