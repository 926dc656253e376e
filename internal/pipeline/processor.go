// Package pipeline runs one statement from raw PDF bytes to a normalized
// revenue record: validate, rasterize, extract, normalize.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/revenue-parser/constants"
	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
	"github.com/joseph-ayodele/revenue-parser/internal/raster"
)

// ProgressFunc receives a percentage that never decreases within one run.
type ProgressFunc func(percent int)

// Result is the outcome of a successful run.
type Result struct {
	Record      entity.RevenueRecord
	Adjustments []string
	Warnings    []string
	Pages       int
	Model       string
}

type Processor struct {
	logger      *slog.Logger
	rasterizer  PageRasterizer
	model       VisionModel
	normalizer  *llm.Normalizer
	maxUploadMB int
}

func NewProcessor(logger *slog.Logger, rasterizer PageRasterizer, model VisionModel, normalizer *llm.Normalizer, maxUploadMB int) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if normalizer == nil {
		normalizer = llm.NewNormalizer(logger)
	}
	if maxUploadMB <= 0 {
		maxUploadMB = constants.MaxUploadMBDefault
	}
	return &Processor{
		logger:      logger,
		rasterizer:  rasterizer,
		model:       model,
		normalizer:  normalizer,
		maxUploadMB: maxUploadMB,
	}
}

// progress drops any report lower than the last one.
type progress struct {
	fn   ProgressFunc
	last int
}

func (p *progress) report(pct int) {
	if p.fn == nil || pct < p.last {
		return
	}
	p.last = pct
	p.fn(pct)
}

func stageError(stage constants.Stage, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}

// Process runs the document through every stage. Errors keep their
// common.AppError kind and are prefixed with the failing stage. Nothing is
// retried; cancel ctx to abandon a run.
func (p *Processor) Process(ctx context.Context, doc entity.Document, onProgress ProgressFunc) (Result, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, p.logger).With("file", doc.FileName)
	prog := &progress{fn: onProgress}

	if err := raster.ValidateDocument(doc, p.maxUploadMB); err != nil {
		logger.Warn("pipeline.validate.rejected", "error", err)
		return Result{}, stageError(constants.StageValidate, err)
	}
	prog.report(constants.ProgressValidated)

	prog.report(constants.ProgressRasterStart)
	span := constants.ProgressRasterEnd - constants.ProgressRasterStart
	pages, err := p.rasterizer.Rasterize(ctx, doc, func(done, total int) {
		if total > 0 {
			prog.report(constants.ProgressRasterStart + span*done/total)
		}
	})
	if err != nil {
		logger.Error("pipeline.rasterize.failed", "error", err)
		return Result{}, stageError(constants.StageRasterize, err)
	}
	prog.report(constants.ProgressRasterEnd)
	logger.Debug("pipeline.rasterize.ok", "pages", len(pages))

	raw, err := p.model.Extract(ctx, llm.ExtractRequest{Pages: pages, Prompt: llm.BuildPrompt()})
	if err != nil {
		logger.Error("pipeline.extract.failed", "model", p.model.Name(), "error", err)
		return Result{}, stageError(constants.StageExtract, err)
	}
	prog.report(constants.ProgressExtractEnd)

	norm, err := p.normalizer.Normalize(raw)
	if err != nil {
		logger.Error("pipeline.normalize.failed", "error", err)
		return Result{}, stageError(constants.StageNormalize, err)
	}
	prog.report(constants.ProgressDone)

	logger.Info("pipeline.ok",
		"model", p.model.Name(),
		"pages", len(pages),
		"line_items", len(norm.Record.LineItems),
		"warnings", len(norm.Warnings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Record:      norm.Record,
		Adjustments: norm.Adjustments,
		Warnings:    norm.Warnings,
		Pages:       len(pages),
		Model:       p.model.Name(),
	}, nil
}
