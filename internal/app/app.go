// Package app wires configuration into a ready pipeline for the commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/derive"
	"github.com/joseph-ayodele/revenue-parser/internal/export"
	"github.com/joseph-ayodele/revenue-parser/internal/ingest"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
	"github.com/joseph-ayodele/revenue-parser/internal/llm/provider"
	"github.com/joseph-ayodele/revenue-parser/internal/pipeline"
	"github.com/joseph-ayodele/revenue-parser/internal/raster"
	"github.com/joseph-ayodele/revenue-parser/internal/server"
)

// LoadConfig reads an optional .env file, then the environment, and
// validates the result.
func LoadConfig(logger *slog.Logger, envFiles ...string) (*common.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env: %w", err)
		}
		logger.Debug("config.dotenv.missing")
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is the assembled pipeline shared by the CLI and the HTTP server.
type App struct {
	Config    *common.Config
	Processor server.StatementProcessor
	Exporter  server.Exporter
	logger    *slog.Logger
}

// New builds the rasterizer, the configured vision model, the normalizer and
// the export service.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	model, err := provider.New(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	rasterizer := raster.NewRasterizer(raster.Config{
		Pdftoppm: cfg.Raster.Pdftoppm,
		DPI:      cfg.Raster.DPI,
		MaxPages: cfg.Raster.MaxPages,
	}, raster.ExecRunner{Logger: logger}, logger)

	proc := pipeline.NewProcessor(logger, rasterizer, model, llm.NewNormalizer(logger), cfg.Raster.MaxUploadMB)
	calc := derive.NewCalculator(derive.NewJitter(cfg.Export.JitterSeed))

	logger.Info("app.ready", "model", model.Name(), "dpi", cfg.Raster.DPI, "max_upload_mb", cfg.Raster.MaxUploadMB)
	return &App{
		Config:    cfg,
		Processor: proc,
		Exporter:  export.NewService(calc, time.Now, logger),
		logger:    logger,
	}, nil
}

// Outcome describes what ProcessFile produced for one statement.
type Outcome struct {
	Source           string
	Result           pipeline.Result
	XLSXPath         string
	CDEXPath         string
	AccountingErrors []string
}

// ProcessFile runs one PDF through the pipeline and writes the workbook, plus
// the CDEX document when the record passes the accounting gate. Outputs go to
// outDir, or next to the source when outDir is empty.
func (a *App) ProcessFile(ctx context.Context, path, outDir string) (Outcome, error) {
	out := Outcome{Source: path}
	logger := common.LoggerFromContext(ctx, a.logger).With("file", path)

	doc, err := ingest.LoadDocument(path, a.Config.Raster.MaxUploadMB)
	if err != nil {
		return out, err
	}

	res, err := a.Processor.Process(ctx, doc, func(pct int) {
		logger.Debug("app.progress", "percent", pct)
	})
	if err != nil {
		return out, err
	}
	out.Result = res

	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return out, fmt.Errorf("create output dir: %w", err)
	}

	xlsx, err := a.Exporter.ExportXLSX(ctx, res.Record, doc.FileName)
	if err != nil {
		return out, err
	}
	if out.XLSXPath, err = writeArtifact(outDir, xlsx); err != nil {
		return out, err
	}

	if msgs := export.ValidateForAccounting(res.Record); len(msgs) > 0 {
		out.AccountingErrors = msgs
		logger.Warn("app.cdex.skipped", "errors", msgs)
		return out, nil
	}
	cdex, err := a.Exporter.ExportCDEX(ctx, res.Record, doc.FileName)
	if err != nil {
		return out, err
	}
	if out.CDEXPath, err = writeArtifact(outDir, cdex); err != nil {
		return out, err
	}
	return out, nil
}

func writeArtifact(dir string, art export.Artifact) (string, error) {
	path := filepath.Join(dir, art.FileName)
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", art.FileName, err)
	}
	return path, nil
}
