// Package analysis runs game analyses for the delivery layers: it evaluates
// requests through an Engine, answers repeats from a cache and archives
// every result.
package analysis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"combgame/internal/domain/analysis"
)

type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a analysis.Analysis) error
	GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error)
	ListAnalyses(ctx context.Context, page int) (analysis.AnalysisPage, error)
}

type ResultCache interface {
	GetAnalysis(ctx context.Context, key string) (analysis.Analysis, bool)
	PutAnalysis(ctx context.Context, key string, a analysis.Analysis)
}

type AnalysisUseCase struct {
	engine  Engine
	store   AnalysisStore
	cache   ResultCache
	log     *zap.SugaredLogger
	timeout time.Duration
}

// NewAnalysisUseCase wires the use case. A zero timeout leaves evaluations
// bounded only by the caller's context.
func NewAnalysisUseCase(engine Engine, store AnalysisStore, cache ResultCache, log *zap.SugaredLogger, timeout time.Duration) *AnalysisUseCase {
	return &AnalysisUseCase{
		engine:  engine,
		store:   store,
		cache:   cache,
		log:     log,
		timeout: timeout,
	}
}

// CacheKey hashes the kind and input of an analysis into a cache key.
func CacheKey(kind analysis.Kind, input string) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(kind))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(input)
	return "analysis:" + strconv.FormatUint(h.Sum64(), 16)
}

func (a *AnalysisUseCase) Compare(ctx context.Context, req analysis.CompareRequest) (analysis.Analysis, error) {
	input := req.Left + " vs " + req.Right
	return a.run(ctx, analysis.KindCompare, input, func(ctx context.Context, res *analysis.Analysis) error {
		c, err := a.engine.Compare(ctx, req)
		if err != nil {
			return err
		}
		res.Comparison = &c
		return nil
	})
}

func (a *AnalysisUseCase) Grundy(ctx context.Context, req analysis.GrundyRequest) (analysis.Analysis, error) {
	return a.run(ctx, analysis.KindGrundy, req.Game, func(ctx context.Context, res *analysis.Analysis) error {
		g, err := a.engine.Grundy(ctx, req)
		if err != nil {
			return err
		}
		res.Grundy = &g
		return nil
	})
}

func (a *AnalysisUseCase) Domineering(ctx context.Context, req analysis.DomineeringRequest) (analysis.Analysis, error) {
	input := strings.Join(req.Rows, "/")
	return a.run(ctx, analysis.KindDomineering, input, func(ctx context.Context, res *analysis.Analysis) error {
		d, err := a.engine.Domineering(ctx, req)
		if err != nil {
			return err
		}
		res.Domineering = &d
		return nil
	})
}

// run answers from the cache when it can, otherwise evaluates, archives and
// caches. Failing to archive or cache is logged and does not fail the call.
func (a *AnalysisUseCase) run(ctx context.Context, kind analysis.Kind, input string, eval func(context.Context, *analysis.Analysis) error) (analysis.Analysis, error) {
	key := CacheKey(kind, input)
	if cached, ok := a.cache.GetAnalysis(ctx, key); ok {
		a.log.Infof("%s analysis served from cache: %s", kind, cached.ID)
		cached.Cached = true
		return cached, nil
	}

	evalCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	res := analysis.Analysis{
		ID:        uuid.New().String(),
		Kind:      kind,
		Input:     input,
		CreatedAt: time.Now().UTC(),
	}
	start := time.Now()
	if err := eval(evalCtx, &res); err != nil {
		a.log.Errorf("%s analysis of %q failed: %v", kind, input, err)
		return analysis.Analysis{}, err
	}
	a.log.Infof("%s analysis %s took %s", kind, res.ID, time.Since(start))

	if err := a.store.SaveAnalysis(ctx, res); err != nil {
		a.log.Errorf("failed to archive analysis %s: %v", res.ID, err)
	}
	a.cache.PutAnalysis(ctx, key, res)
	return res, nil
}

func (a *AnalysisUseCase) GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error) {
	return a.store.GetAnalysis(ctx, id)
}

// MaxPage is the highest page ListAnalyses asks the store for.
const MaxPage = 1 << 20

func (a *AnalysisUseCase) ListAnalyses(ctx context.Context, page int) (analysis.AnalysisPage, error) {
	page = min(max(page, 1), MaxPage)
	return a.store.ListAnalyses(ctx, page)
}
