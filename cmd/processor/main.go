// Command processor runs the workforce snapshot pipeline once: load the
// raw pipe-delimited file, clean it, aggregate it, and write the summary
// outputs. It is the batch entry point; the dashboard server exposes the
// same pipeline over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chipphillips/federal-employment-analysis/internal/config"
	"github.com/chipphillips/federal-employment-analysis/internal/infrastructure"
	"github.com/chipphillips/federal-employment-analysis/internal/operations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "processor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inFile    = flag.String("in", "", "raw snapshot file (overrides config)")
		outDir    = flag.String("out", "", "output directory (overrides config)")
		dashboard = flag.Bool("dashboard", true, "write the data.js dashboard bundle")
		excel     = flag.Bool("excel", false, "write the workforce_summary.xlsx workbook")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager := operations.NewManager(operations.ManagerConfig{
		RawFile:       cfg.GetRawFile(),
		OutDir:        cfg.GetProcessedDir(),
		TopAgencies:   cfg.Pipeline.TopAgencies,
		Timeout:       cfg.Pipeline.Timeout,
		WriteDataJS:   *dashboard,
		WriteWorkbook: *excel,
	}, nil, logger)

	req := operations.OperationRequest{
		RawFile: cfg.GetRawFile(),
		OutDir:  cfg.GetProcessedDir(),
	}
	if *inFile != "" {
		req.RawFile = *inFile
	}
	if *outDir != "" {
		req.OutDir = *outDir
	}

	op, err := manager.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("pipeline run %s completed in %s\n", op.ID, op.Duration().Round(time.Millisecond))
	fmt.Printf("outputs written to %s\n", req.OutDir)
	return nil
}
