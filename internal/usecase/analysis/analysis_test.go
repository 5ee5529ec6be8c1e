package analysis

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"combgame/internal/domain/analysis"
	errs "combgame/internal/errors"
	"combgame/internal/usecase/short"
)

type fakeStore struct {
	mu       sync.Mutex
	saved    map[string]analysis.Analysis
	lastPage int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]analysis.Analysis)}
}

func (f *fakeStore) SaveAnalysis(_ context.Context, a analysis.Analysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[a.ID] = a
	return nil
}

func (f *fakeStore) GetAnalysis(_ context.Context, id string) (analysis.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.saved[id]
	if !ok {
		return analysis.Analysis{}, errs.ErrAnalysisNotFound
	}
	return a, nil
}

func (f *fakeStore) ListAnalyses(_ context.Context, page int) (analysis.AnalysisPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = page
	out := analysis.AnalysisPage{PageNum: page, TotalPages: 1}
	for _, a := range f.saved {
		out.Analyses = append(out.Analyses, a)
	}
	return out, nil
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]analysis.Analysis
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]analysis.Analysis)}
}

func (f *fakeCache) GetAnalysis(_ context.Context, key string) (analysis.Analysis, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[key]
	return a, ok
}

func (f *fakeCache) PutAnalysis(_ context.Context, key string, a analysis.Analysis) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = a
}

// blockingEngine waits for its context to end.
type blockingEngine struct{}

func (blockingEngine) Compare(ctx context.Context, _ analysis.CompareRequest) (analysis.Comparison, error) {
	<-ctx.Done()
	return analysis.Comparison{}, ctx.Err()
}

func (blockingEngine) Grundy(ctx context.Context, _ analysis.GrundyRequest) (analysis.GrundyResult, error) {
	<-ctx.Done()
	return analysis.GrundyResult{}, ctx.Err()
}

func (blockingEngine) Domineering(ctx context.Context, _ analysis.DomineeringRequest) (analysis.DomineeringResult, error) {
	<-ctx.Done()
	return analysis.DomineeringResult{}, ctx.Err()
}

func newUseCase(t *testing.T, engine Engine) (*AnalysisUseCase, *fakeStore, *fakeCache) {
	t.Helper()
	store, cache := newFakeStore(), newFakeCache()
	return NewAnalysisUseCase(engine, store, cache, zaptest.NewLogger(t).Sugar(), 0), store, cache
}

func TestCompareIsArchivedAndCached(t *testing.T) {
	uc, store, cache := newUseCase(t, NewLocalEngine(short.DefaultLimits, 0))
	ctx := context.Background()
	first, err := uc.Compare(ctx, analysis.CompareRequest{Left: "1", Right: "{0|1}"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if first.Cached || first.Comparison == nil || first.Comparison.Ordering != "greater" {
		t.Fatalf("unexpected first result %+v", first)
	}
	if first.Kind != analysis.KindCompare || first.Input != "1 vs {0|1}" {
		t.Fatalf("kind %q input %q", first.Kind, first.Input)
	}
	second, err := uc.Compare(ctx, analysis.CompareRequest{Left: "1", Right: "{0|1}"})
	if err != nil {
		t.Fatalf("compare again: %v", err)
	}
	if !second.Cached || second.ID != first.ID {
		t.Fatalf("second call must come from the cache: %+v", second)
	}
	if len(store.saved) != 1 || len(cache.items) != 1 {
		t.Fatalf("saved %d, cached %d; want 1 and 1", len(store.saved), len(cache.items))
	}
	got, err := uc.GetAnalysis(ctx, first.ID)
	if err != nil || got.ID != first.ID {
		t.Fatalf("get analysis: %+v, %v", got, err)
	}
}

func TestFailuresAreNotStored(t *testing.T) {
	uc, store, cache := newUseCase(t, NewLocalEngine(short.DefaultLimits, 0))
	ctx := context.Background()
	if _, err := uc.Grundy(ctx, analysis.GrundyRequest{Game: "{0|"}); !errors.Is(err, errs.ErrInvalidNotation) {
		t.Fatalf("got %v, want ErrInvalidNotation", err)
	}
	if _, err := uc.Grundy(ctx, analysis.GrundyRequest{Game: "1"}); !errors.Is(err, errs.ErrNotImpartial) {
		t.Fatalf("got %v, want ErrNotImpartial", err)
	}
	if _, err := uc.Domineering(ctx, analysis.DomineeringRequest{Rows: []string{"#?"}}); !errors.Is(err, errs.ErrInvalidBoard) {
		t.Fatalf("got %v, want ErrInvalidBoard", err)
	}
	if len(store.saved) != 0 || len(cache.items) != 0 {
		t.Fatal("failed analyses must not be stored")
	}
}

func TestTimeout(t *testing.T) {
	store, cache := newFakeStore(), newFakeCache()
	uc := NewAnalysisUseCase(blockingEngine{}, store, cache, zaptest.NewLogger(t).Sugar(), 10*time.Millisecond)
	_, err := uc.Domineering(context.Background(), analysis.DomineeringRequest{Rows: []string{"##"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestListAnalysesClampsPage(t *testing.T) {
	uc, store, _ := newUseCase(t, NewLocalEngine(short.DefaultLimits, 0))
	if _, err := uc.ListAnalyses(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if store.lastPage != 1 {
		t.Fatalf("page = %d, want 1", store.lastPage)
	}
	if _, err := uc.ListAnalyses(context.Background(), math.MaxInt); err != nil {
		t.Fatal(err)
	}
	if store.lastPage != MaxPage {
		t.Fatalf("page = %d, want %d", store.lastPage, MaxPage)
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(analysis.KindGrundy, "*")
	if a != CacheKey(analysis.KindGrundy, "*") {
		t.Fatal("cache key must be deterministic")
	}
	if a == CacheKey(analysis.KindCompare, "*") {
		t.Fatal("kinds must not share cache keys")
	}
}
