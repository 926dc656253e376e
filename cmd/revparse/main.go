package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/revenue-parser/internal/app"
	"github.com/joseph-ayodele/revenue-parser/internal/common"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file    = flag.String("file", "", "revenue statement PDF to parse (required)")
		out     = flag.String("out", "", "output directory (optional, defaults to the PDF's directory)")
		envFile = flag.String("env", "", "dotenv file to load (optional, defaults to .env)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}
	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := app.LoadConfig(logger, envFiles...)
	if err != nil {
		printError("Error: %s\n", common.UserMessage(err))
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		printError("Error: %s\n", common.UserMessage(err))
		os.Exit(1)
	}

	res, err := a.ProcessFile(ctx, *file, *out)
	if err != nil {
		logger.Error("revparse.failed", "file", *file, "error", err)
		printError("Error: %s\n", common.UserMessage(err))
		if common.IsRetryable(err) {
			printError("The failure is temporary; try again shortly.\n")
		}
		os.Exit(1)
	}

	rec := res.Result.Record
	fmt.Printf("Parsed %s\n", *file)
	fmt.Printf("- Company: %s\n", rec.Company)
	fmt.Printf("- Period: %s\n", rec.Period)
	fmt.Printf("- Line items: %d\n", len(rec.LineItems))
	fmt.Printf("- Total revenue: %.2f\n", rec.TotalRevenue)
	fmt.Printf("- Net revenue: %.2f\n", rec.NetRevenue)
	fmt.Printf("- Workbook: %s\n", res.XLSXPath)
	if res.CDEXPath != "" {
		fmt.Printf("- CDEX: %s\n", res.CDEXPath)
	}
	for _, adj := range res.Result.Adjustments {
		fmt.Printf("  adjusted: %s\n", adj)
	}
	for _, w := range res.Result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	if len(res.AccountingErrors) > 0 {
		fmt.Printf("CDEX export skipped:\n")
		for _, e := range res.AccountingErrors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
