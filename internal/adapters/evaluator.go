package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"combgame/internal/bootstrap"
	"combgame/internal/domain/analysis"
	evaluatorRPC "combgame/microservices/proto"
)

// AdapterEvaluator forwards analyses to the evaluator microservice. It
// satisfies the analysis Engine interface.
type AdapterEvaluator struct {
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
	conn   *grpc.ClientConn
	client evaluatorRPC.EvaluatorClient
}

func NewAdapterEvaluator(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterEvaluator {
	return &AdapterEvaluator{
		cfg: cfg,
		log: log,
	}
}

func (a *AdapterEvaluator) Init(ctx context.Context) error {
	conn, err := grpc.NewClient(a.cfg.EvaluatorAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to create evaluator client for %s: %w", a.cfg.EvaluatorAddr, err)
	}
	a.conn = conn
	a.client = evaluatorRPC.NewEvaluatorClient(conn)

	a.log.Infof("evaluator client targets %s", a.cfg.EvaluatorAddr)
	return nil
}

func (a *AdapterEvaluator) Close(ctx context.Context) error {
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

type evaluatorCall func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func invoke(ctx context.Context, call evaluatorCall, req, dst any) error {
	in, err := evaluatorRPC.Encode(req)
	if err != nil {
		return err
	}
	out, err := call(ctx, in)
	if err != nil {
		return evaluatorRPC.ErrorFromStatus(err)
	}
	return evaluatorRPC.Decode(out, dst)
}

func (a *AdapterEvaluator) Compare(ctx context.Context, req analysis.CompareRequest) (analysis.Comparison, error) {
	var res analysis.Comparison
	err := invoke(ctx, a.client.Compare, req, &res)
	return res, err
}

func (a *AdapterEvaluator) Grundy(ctx context.Context, req analysis.GrundyRequest) (analysis.GrundyResult, error) {
	var res analysis.GrundyResult
	err := invoke(ctx, a.client.Grundy, req, &res)
	return res, err
}

func (a *AdapterEvaluator) Domineering(ctx context.Context, req analysis.DomineeringRequest) (analysis.DomineeringResult, error) {
	var res analysis.DomineeringResult
	err := invoke(ctx, a.client.Domineering, req, &res)
	return res, err
}
