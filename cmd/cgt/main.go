package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"combgame/internal/bootstrap"
	"combgame/internal/domain/analysis"
	"combgame/internal/report"
	analysisuc "combgame/internal/usecase/analysis"
	"combgame/internal/usecase/short"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "cgt",
		Usage:     "evaluate short combinatorial games",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".env", Usage: "env file with engine limits"},
			&cli.IntFlag{Name: "max-depth", Usage: "reject games born later than this (0 for no limit)"},
			&cli.IntFlag{Name: "max-nodes", Usage: "reject games with more distinct positions (0 for no limit)"},
			&cli.IntFlag{Name: "max-cells", Usage: "reject larger Domineering boards (0 for no limit)"},
			&cli.IntFlag{Name: "parallel", Usage: "decider fan-out depth"},
		},
		Commands: []*cli.Command{
			{
				Name:      "compare",
				Usage:     "compare two games in {L|R} notation",
				ArgsUsage: "LEFT RIGHT",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return cli.Exit("compare needs exactly two games", 2)
					}
					engine, err := engineFrom(c)
					if err != nil {
						return err
					}
					res, err := engine.Compare(c.Context, analysis.CompareRequest{Left: c.Args().Get(0), Right: c.Args().Get(1)})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, res)
				},
			},
			{
				Name:      "grundy",
				Usage:     "Grundy value of an impartial game",
				ArgsUsage: "GAME",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return cli.Exit("grundy needs exactly one game", 2)
					}
					engine, err := engineFrom(c)
					if err != nil {
						return err
					}
					res, err := engine.Grundy(c.Context, analysis.GrundyRequest{Game: c.Args().First()})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, res)
				},
			},
			{
				Name:      "domineering",
				Usage:     "evaluate a Domineering board given as rows of '#' and '.'",
				ArgsUsage: "ROW...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pdf", Usage: "also write a PDF report to this file"},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return cli.Exit("domineering needs at least one row", 2)
					}
					engine, err := engineFrom(c)
					if err != nil {
						return err
					}
					res, err := engine.Domineering(c.Context, analysis.DomineeringRequest{Rows: c.Args().Slice()})
					if err != nil {
						return err
					}
					if path := c.String("pdf"); path != "" {
						if err := writeReport(path, res); err != nil {
							return err
						}
					}
					return printJSON(c.App.Writer, res)
				},
			},
		},
	}
}

// engineFrom builds a local engine from the config file, with command line
// flags taking precedence.
func engineFrom(c *cli.Context) (*analysisuc.LocalEngine, error) {
	cfg, err := bootstrap.Setup(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("max-depth") {
		cfg.MaxGameDepth = c.Int("max-depth")
	}
	if c.IsSet("max-nodes") {
		cfg.MaxGameNodes = c.Int("max-nodes")
	}
	if c.IsSet("max-cells") {
		cfg.MaxBoardCells = c.Int("max-cells")
	}
	opts := cfg.DeciderOptions()
	if c.IsSet("parallel") {
		opts = append(opts, short.WithParallelDepth(c.Int("parallel")))
	}
	return analysisuc.NewLocalEngine(cfg.Limits(), cfg.MaxBoardCells, opts...), nil
}

func writeReport(path string, res analysis.DomineeringResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Domineering(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
