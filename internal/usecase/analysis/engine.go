package analysis

import (
	"context"
	"fmt"

	"combgame/internal/domain/analysis"
	"combgame/internal/domain/domineering"
	"combgame/internal/domain/game"
	"combgame/internal/usecase/impartial"
	"combgame/internal/usecase/order"
	"combgame/internal/usecase/short"
)

// Engine evaluates analysis requests. LocalEngine runs them in process; the
// evaluator adapter forwards them to the gRPC microservice.
type Engine interface {
	Compare(ctx context.Context, req analysis.CompareRequest) (analysis.Comparison, error)
	Grundy(ctx context.Context, req analysis.GrundyRequest) (analysis.GrundyResult, error)
	Domineering(ctx context.Context, req analysis.DomineeringRequest) (analysis.DomineeringResult, error)
}

// LocalEngine evaluates in process. Every request gets a fresh decider, so
// nothing is memoised between requests.
type LocalEngine struct {
	limits     short.Limits
	maxCells   int
	newDecider func() *short.Decider
}

func NewLocalEngine(limits short.Limits, maxCells int, opts ...short.Option) *LocalEngine {
	return &LocalEngine{
		limits:   limits,
		maxCells: maxCells,
		newDecider: func() *short.Decider {
			return short.NewDecider(opts...)
		},
	}
}

func (l *LocalEngine) parse(notation string) (short.Game, error) {
	g, err := game.Parse(notation)
	if err != nil {
		return short.Game{}, err
	}
	return short.Certify(g, l.limits)
}

// outcome reads the outcome class off a comparison with zero.
func outcome(ctx context.Context, d *short.Decider, g short.Game) (order.Outcome, error) {
	o, err := d.Compare(ctx, g, short.MustCertify(game.Zero()))
	if err != nil {
		return 0, err
	}
	switch o {
	case order.Equivalent:
		return order.OutcomeP, nil
	case order.Greater:
		return order.OutcomeL, nil
	case order.Less:
		return order.OutcomeR, nil
	default:
		return order.OutcomeN, nil
	}
}

func (l *LocalEngine) Compare(ctx context.Context, req analysis.CompareRequest) (analysis.Comparison, error) {
	x, err := l.parse(req.Left)
	if err != nil {
		return analysis.Comparison{}, fmt.Errorf("left game: %w", err)
	}
	y, err := l.parse(req.Right)
	if err != nil {
		return analysis.Comparison{}, fmt.Errorf("right game: %w", err)
	}
	d := l.newDecider()
	o, err := d.Compare(ctx, x, y)
	if err != nil {
		return analysis.Comparison{}, err
	}
	xo, err := outcome(ctx, d, x)
	if err != nil {
		return analysis.Comparison{}, err
	}
	yo, err := outcome(ctx, d, y)
	if err != nil {
		return analysis.Comparison{}, err
	}
	xv, err := identify(ctx, d, x)
	if err != nil {
		return analysis.Comparison{}, err
	}
	yv, err := identify(ctx, d, y)
	if err != nil {
		return analysis.Comparison{}, err
	}
	return analysis.Comparison{
		Left:         x.String(),
		Right:        y.String(),
		Ordering:     o.String(),
		LeftOutcome:  xo.String(),
		RightOutcome: yo.String(),
		LeftValue:    xv,
		RightValue:   yv,
	}, nil
}

func (l *LocalEngine) Grundy(ctx context.Context, req analysis.GrundyRequest) (analysis.GrundyResult, error) {
	g, err := l.parse(req.Game)
	if err != nil {
		return analysis.GrundyResult{}, err
	}
	n, err := impartial.NewEngine().GrundyValueContext(ctx, g)
	if err != nil {
		return analysis.GrundyResult{}, err
	}
	return analysis.GrundyResult{
		Game:   g.String(),
		Grundy: n,
		Nimber: nimberName(n),
	}, nil
}

func (l *LocalEngine) Domineering(ctx context.Context, req analysis.DomineeringRequest) (analysis.DomineeringResult, error) {
	board, err := domineering.ParseBoard(req.Rows)
	if err != nil {
		return analysis.DomineeringResult{}, err
	}
	if err := board.Check(l.maxCells); err != nil {
		return analysis.DomineeringResult{}, err
	}
	g, err := board.GameContext(ctx, l.limits.MaxNodes)
	if err != nil {
		return analysis.DomineeringResult{}, err
	}
	s, err := short.Certify(g, l.limits)
	if err != nil {
		return analysis.DomineeringResult{}, err
	}
	d := l.newDecider()
	oc, err := outcome(ctx, d, s)
	if err != nil {
		return analysis.DomineeringResult{}, err
	}
	value, err := identify(ctx, d, s)
	if err != nil {
		return analysis.DomineeringResult{}, err
	}
	return analysis.DomineeringResult{
		Rows:               board.Rows(),
		Cells:              board.Len(),
		Positions:          game.Nodes(g),
		Birthday:           g.Depth(),
		LeftMoves:          g.NumLeft(),
		RightMoves:         g.NumRight(),
		Outcome:            oc.String(),
		OutcomeDescription: oc.Describe(),
		Value:              value,
		Game:               g.String(),
	}, nil
}
