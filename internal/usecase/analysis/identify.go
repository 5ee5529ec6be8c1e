package analysis

import (
	"context"
	"errors"
	"fmt"

	"combgame/internal/domain/game"
	errs "combgame/internal/errors"
	"combgame/internal/usecase/algebra"
	"combgame/internal/usecase/impartial"
	"combgame/internal/usecase/order"
	"combgame/internal/usecase/short"
)

const identifyRange = 16

type candidate struct {
	name    string
	g       short.Game
	outcome order.Outcome
}

// candidates holds the small values Identify recognises, from simplest.
var candidates = buildCandidates()

func buildCandidates() []candidate {
	e := order.NewEvaluator()
	b := algebra.NewBuilder()
	var out []candidate
	add := func(name string, g *game.Game) {
		out = append(out, candidate{name: name, g: short.MustCertify(g), outcome: e.Outcome(g)})
	}
	add("0", game.Zero())
	add("*", game.Star())
	add("^", game.Up())
	add("v", game.Down())
	add("^*", b.Add(game.Up(), game.Star()))
	add("v*", b.Add(game.Down(), game.Star()))
	for n := 1; n <= identifyRange; n++ {
		add(fmt.Sprint(n), game.Integer(n))
		add(fmt.Sprint(-n), game.Integer(-n))
	}
	for n := -identifyRange; n < identifyRange; n++ {
		half := game.Mk([]*game.Game{game.Integer(n)}, []*game.Game{game.Integer(n + 1)})
		add(fmt.Sprintf("%d/2", 2*n+1), half)
	}
	for n := 1; n <= identifyRange; n++ {
		add(fmt.Sprintf("%d*", n), b.Add(game.Integer(n), game.Star()))
		add(fmt.Sprintf("%d*", -n), b.Add(game.Integer(-n), game.Star()))
	}
	return out
}

// Identify names the value of g when it is one of a few familiar forms:
// integers and halves up to 16 in size, nimbers, ^ and v with or without *,
// and integers plus *. It returns "" for anything else.
func Identify(ctx context.Context, g short.Game) (string, error) {
	return identify(ctx, short.NewDecider(), g)
}

func identify(ctx context.Context, d *short.Decider, g short.Game) (string, error) {
	n, err := impartial.NewEngine().GrundyValueContext(ctx, g)
	switch {
	case err == nil:
		return nimberName(n), nil
	case !errors.Is(err, errs.ErrNotImpartial):
		return "", err
	}
	oc, err := outcome(ctx, d, g)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c.outcome != oc {
			continue
		}
		eq, err := d.Equiv(ctx, g, c.g)
		if err != nil {
			return "", err
		}
		if eq {
			return c.name, nil
		}
	}
	return "", nil
}

func nimberName(n uint) string {
	switch n {
	case 0:
		return "0"
	case 1:
		return "*"
	default:
		return fmt.Sprintf("*%d", n)
	}
}
