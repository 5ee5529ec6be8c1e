package game

// NimHeap is the nim heap of size n: both players may move to any smaller
// heap. Heaps below n are shared between all options.
func NimHeap(n uint) *Game {
	heaps := make([]*Game, 0, n+1)
	heaps = append(heaps, zero)
	for k := uint(1); k <= n; k++ {
		heaps = append(heaps, Mk(heaps[:k], heaps[:k]))
	}
	return heaps[n]
}

// Integer is the canonical form of n: {n-1|} for positive n, {|n+1} for
// negative n.
func Integer(n int) *Game {
	g := zero
	switch {
	case n > 0:
		for k := 0; k < n; k++ {
			g = Mk([]*Game{g}, nil)
		}
	case n < 0:
		for k := 0; k > n; k-- {
			g = Mk(nil, []*Game{g})
		}
	}
	return g
}

// Up is {0|*}, positive but smaller than every positive number.
func Up() *Game { return up }

// Down is {*|0}, the negative of Up.
func Down() *Game { return down }

var (
	up   = Mk([]*Game{zero}, []*Game{star})
	down = Mk([]*Game{star}, []*Game{zero})
)
