package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joseph-ayodele/revenue-parser/internal/app"
	"github.com/joseph-ayodele/revenue-parser/internal/async"
	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/ingest"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// totals are the job outcomes of one batch run.
type totals struct {
	processed   int
	failures    int
	cdex        int
	cdexSkipped int
	failed      []string
}

// summary tallies job outcomes across workers.
type summary struct {
	mu sync.Mutex
	t  totals
}

func (s *summary) record(path string, out app.Outcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.t.failures++
		s.t.failed = append(s.t.failed, fmt.Sprintf("%s: %s", path, common.UserMessage(err)))
		return
	}
	s.t.processed++
	if out.CDEXPath != "" {
		s.t.cdex++
	} else {
		s.t.cdexSkipped++
	}
}

// snapshot copies the tallies; workers may still be running after a timed-out shutdown.
func (s *summary) snapshot() totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.t
	out.failed = append([]string(nil), s.t.failed...)
	return out
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory to process statements from (required)")
		out      = flag.String("out", "", "output directory (optional, defaults to each PDF's directory)")
		exts     = flag.String("ext", "", "comma-separated extensions to pick up (optional, defaults to pdf)")
		hidden   = flag.Bool("hidden", false, "include hidden files and directories")
		workers  = flag.Int("workers", 2, "concurrent statements")
		timeout  = flag.Duration("timeout", 3*time.Minute, "per-statement time limit")
		watch    = flag.Bool("watch", false, "keep running and process statements as they arrive")
		debounce = flag.Duration("debounce", 2*time.Second, "quiet period before a new file is processed in watch mode")
		envFile  = flag.String("env", "", "dotenv file to load (optional, defaults to .env)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
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

	var includeExts []string
	if *exts != "" {
		includeExts = strings.Split(*exts, ",")
	}

	sum := &summary{}
	queue := async.NewWorkerQueue(async.HandlerFunc(func(jobCtx context.Context, job async.Job) error {
		jobCtx = common.WithRequestID(jobCtx, job.TraceID)
		res, err := a.ProcessFile(jobCtx, job.Path, *out)
		sum.record(job.Path, res, err)
		if err == nil {
			for _, w := range res.Result.Warnings {
				logger.Warn("batch.record.warning", "file", job.Path, "warning", w)
			}
		}
		return err
	}), logger, async.WithWorkers(*workers), async.WithProcessTimeout(*timeout))

	if *watch {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{*dir},
			AllowedExts: includeExts,
			SkipHidden:  !*hidden,
			InitialScan: true,
			Debounce:    *debounce,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("failed to watch directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("watching for statements", "dir", *dir)
		go func() {
			for err := range errs {
				logger.Warn("watch error", "error", err)
			}
		}()
		for path := range events {
			if err := queue.Enqueue(ctx, async.Job{Path: path}); err != nil {
				logger.Warn("enqueue failed", "path", path, "error", err)
			}
		}
	} else {
		paths, stats, err := ingest.ScanDirectory(*dir, includeExts, !*hidden)
		if err != nil {
			logger.Error("failed to scan directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("scan complete",
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"skipped", stats.Skipped,
			"failed", stats.Failed)

		for _, path := range paths {
			if err := queue.Enqueue(ctx, async.Job{Path: path}); err != nil {
				logger.Warn("enqueue failed", "path", path, "error", err)
				break
			}
		}
	}

	// queued jobs still get a grace period after an interrupt
	shutdownCtx, cancel := context.WithTimeout(context.Background(), *timeout+30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	final := sum.snapshot()

	logger.Info("batch processing complete",
		"files_processed", final.processed,
		"failures", final.failures,
		"cdex_written", final.cdex)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files processed: %d\n", final.processed)
	fmt.Printf("- CDEX documents: %d\n", final.cdex)
	fmt.Printf("- CDEX skipped (accounting gate): %d\n", final.cdexSkipped)
	fmt.Printf("- Failures: %d\n", final.failures)
	for _, f := range final.failed {
		fmt.Printf("  - %s\n", f)
	}
	if final.failures > 0 {
		os.Exit(2)
	}
}
