package usecase

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"combgame/internal/adapters"
	"combgame/internal/bootstrap"
	"combgame/internal/domain/analysis"
	errs "combgame/internal/errors"
	analysisuc "combgame/internal/usecase/analysis"
	"combgame/internal/usecase/short"
	evaluatorRPC "combgame/microservices/proto"
)

func startEvaluator(t *testing.T) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	log := zaptest.NewLogger(t).Sugar()
	server := grpc.NewServer()
	engine := analysisuc.NewLocalEngine(short.DefaultLimits, 16)
	evaluatorRPC.RegisterEvaluatorServer(server, NewEvaluatorUseCase(engine, log))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(evaluatorRPC.Evaluator_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	return lis.Addr().String()
}

func dialEvaluator(t *testing.T, addr string) *adapters.AdapterEvaluator {
	t.Helper()

	cfg := &bootstrap.Config{EvaluatorAddr: addr}
	a := adapters.NewAdapterEvaluator(cfg, zaptest.NewLogger(t).Sugar())
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init evaluator client: %v", err)
	}
	t.Cleanup(func() {
		_ = a.Close(context.Background())
	})
	return a
}

func TestHealth(t *testing.T) {
	addr := startEvaluator(t)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: evaluatorRPC.Evaluator_ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", resp.GetStatus())
	}
}

func TestRemoteEngineMatchesLocal(t *testing.T) {
	remote := dialEvaluator(t, startEvaluator(t))
	local := analysisuc.NewLocalEngine(short.DefaultLimits, 16)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmpReq := analysis.CompareRequest{Left: "^", Right: "*"}
	want, err := local.Compare(ctx, cmpReq)
	if err != nil {
		t.Fatal(err)
	}
	got, err := remote.Compare(ctx, cmpReq)
	if err != nil {
		t.Fatalf("remote compare: %v", err)
	}
	if got != want {
		t.Fatalf("remote compare = %+v, want %+v", got, want)
	}

	gr, err := remote.Grundy(ctx, analysis.GrundyRequest{Game: "{0,*|0,*}"})
	if err != nil {
		t.Fatalf("remote grundy: %v", err)
	}
	if gr.Grundy != 2 || gr.Nimber != "*2" {
		t.Fatalf("remote grundy = %+v", gr)
	}

	dom, err := remote.Domineering(ctx, analysis.DomineeringRequest{Rows: []string{"##", "##"}})
	if err != nil {
		t.Fatalf("remote domineering: %v", err)
	}
	if dom.Outcome != "N" || dom.Cells != 4 || len(dom.Rows) != 2 {
		t.Fatalf("remote domineering = %+v", dom)
	}
}

func TestRemoteErrorsKeepTheirKind(t *testing.T) {
	remote := dialEvaluator(t, startEvaluator(t))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cases := []struct {
		name string
		call func() error
		want error
	}{
		{"not impartial", func() error {
			_, err := remote.Grundy(ctx, analysis.GrundyRequest{Game: "1"})
			return err
		}, errs.ErrNotImpartial},
		{"bad notation", func() error {
			_, err := remote.Compare(ctx, analysis.CompareRequest{Left: "{0|", Right: "0"})
			return err
		}, errs.ErrInvalidNotation},
		{"bad board", func() error {
			_, err := remote.Domineering(ctx, analysis.DomineeringRequest{Rows: []string{"#x"}})
			return err
		}, errs.ErrInvalidBoard},
		{"board too large", func() error {
			_, err := remote.Domineering(ctx, analysis.DomineeringRequest{Rows: []string{"#####", "#####", "#####", "#####"}})
			return err
		}, errs.ErrBoardTooLarge},
	}
	for _, c := range cases {
		err := c.call()
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}
