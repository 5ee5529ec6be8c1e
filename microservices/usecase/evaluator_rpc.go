package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"combgame/internal/domain/analysis"
	analysisuc "combgame/internal/usecase/analysis"
	evaluatorRPC "combgame/microservices/proto"
)

type EvaluatorUseCase struct {
	engine analysisuc.Engine
	log    *zap.SugaredLogger
	evaluatorRPC.UnimplementedEvaluatorServer
}

func NewEvaluatorUseCase(engine analysisuc.Engine, log *zap.SugaredLogger) *EvaluatorUseCase {
	return &EvaluatorUseCase{
		engine: engine,
		log:    log,
	}
}

func (e *EvaluatorUseCase) Compare(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req analysis.CompareRequest
	if err := evaluatorRPC.Decode(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "compare request: %v", err)
	}
	res, err := e.engine.Compare(ctx, req)
	if err != nil {
		e.log.Infof("compare %q vs %q failed: %v", req.Left, req.Right, err)
		return nil, evaluatorRPC.StatusFromError(err)
	}
	return evaluatorRPC.Encode(res)
}

func (e *EvaluatorUseCase) Grundy(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req analysis.GrundyRequest
	if err := evaluatorRPC.Decode(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "grundy request: %v", err)
	}
	res, err := e.engine.Grundy(ctx, req)
	if err != nil {
		e.log.Infof("grundy of %q failed: %v", req.Game, err)
		return nil, evaluatorRPC.StatusFromError(err)
	}
	return evaluatorRPC.Encode(res)
}

func (e *EvaluatorUseCase) Domineering(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req analysis.DomineeringRequest
	if err := evaluatorRPC.Decode(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "domineering request: %v", err)
	}
	res, err := e.engine.Domineering(ctx, req)
	if err != nil {
		e.log.Infof("domineering %q failed: %v", req.Rows, err)
		return nil, evaluatorRPC.StatusFromError(err)
	}
	return evaluatorRPC.Encode(res)
}
