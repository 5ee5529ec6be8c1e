package main

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"combgame/internal/bootstrap"
	analysisuc "combgame/internal/usecase/analysis"
	evaluatorRPC "combgame/microservices/proto"
	"combgame/microservices/usecase"
)

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	addr := ":" + cfg.GrpcPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("cant listen port %s: %v", addr, err)
	}

	engine := analysisuc.NewLocalEngine(cfg.Limits(), cfg.MaxBoardCells, cfg.DeciderOptions()...)

	server := grpc.NewServer()
	evaluatorRPC.RegisterEvaluatorServer(server, usecase.NewEvaluatorUseCase(engine, logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(evaluatorRPC.Evaluator_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	fmt.Println("starting evaluator at " + addr)
	if err := server.Serve(lis); err != nil {
		logger.Errorf("evaluator stopped: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
