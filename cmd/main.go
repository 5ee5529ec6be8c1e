package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"combgame/internal/adapters"
	"combgame/internal/bootstrap"
	analysisDelivery "combgame/internal/delivery/analysis"
	ownMiddleware "combgame/internal/middleware"
	"combgame/internal/repository"
	analysisuc "combgame/internal/usecase/analysis"
)

type mainDeliveryHandler struct {
	analysis *analysisDelivery.AnalysisHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	engine := initEngine(ctx, logger, cfg)

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(cfg, logger, engine, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}
	go handleShutdown(cancel, server, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.analysis.Routes(r)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

// initEngine evaluates in process unless EVALUATOR_ADDR points at the
// evaluator microservice.
func initEngine(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) analysisuc.Engine {
	if cfg.EvaluatorAddr == "" {
		log.Info("Evaluating analyses in process")
		return analysisuc.NewLocalEngine(cfg.Limits(), cfg.MaxBoardCells, cfg.DeciderOptions()...)
	}

	evaluator := adapters.NewAdapterEvaluator(cfg, log)
	if err := evaluator.Init(ctx); err != nil {
		log.Fatal("Failed to dial evaluator", zap.Error(err))
	}
	return evaluator
}

func initializeDeliveryHandlers(
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	engine analysisuc.Engine,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	store := repository.NewAnalysisRepository(cfg, log, databaseAdapters.mongoAdapter.Database)
	cache := repository.NewAnalysisCache(databaseAdapters.redisAdapter.GetClient(), log, cfg.CacheTTL())
	analysisUC := analysisuc.NewAnalysisUseCase(engine, store, cache, log, cfg.EvalTimeout())

	return &mainDeliveryHandler{
		analysis: analysisDelivery.NewAnalysisHandler(log, analysisUC),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, server *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
