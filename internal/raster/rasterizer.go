package raster

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// Config for the pdftoppm-backed rasterizer.
type Config struct {
	Pdftoppm string // binary name or path, default "pdftoppm"
	DPI      int    // default 150
	MaxPages int    // 0 = all pages
	TempDir  string // "" = os.TempDir()
}

// ProgressFunc is told how many of total pages are ready.
type ProgressFunc func(done, total int)

// Rasterizer converts a PDF into ordered PNG pages by shelling out to pdftoppm.
type Rasterizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRasterizer(cfg Config, runner Runner, logger *slog.Logger) *Rasterizer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &Rasterizer{cfg: cfg, runner: runner, logger: logger}
}

// Rasterize renders every page of doc, in page order.
func (r *Rasterizer) Rasterize(ctx context.Context, doc entity.Document, onPage ProgressFunc) ([]entity.Page, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp(r.cfg.TempDir, "revparse-pp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			r.logger.Warn("raster.cleanup_failed", "dir", path, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(in, doc.Data, 0o600); err != nil {
		return nil, fmt.Errorf("stage input: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(r.cfg.DPI), "-png"}
	if r.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(r.cfg.MaxPages))
	}
	args = append(args, in, prefix)

	// pdftoppm -r 150 -png [-l N] <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, args...)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	files := orderPages(matches, prefix)
	if r.cfg.MaxPages > 0 && len(files) > r.cfg.MaxPages {
		files = files[:r.cfg.MaxPages]
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([]entity.Page, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", f.number, err)
		}
		pages = append(pages, entity.Page{Number: f.number, MimeType: "image/png", Data: b})
		if onPage != nil {
			onPage(i+1, len(files))
		}
	}

	r.logger.Info("raster.ok",
		"file", doc.FileName,
		"pages", len(pages),
		"dpi", r.cfg.DPI,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

type pageFile struct {
	path   string
	number int
}

// orderPages sorts prefix-N.png files by N; pdftoppm's zero padding varies with page count.
func orderPages(paths []string, prefix string) []pageFile {
	out := make([]pageFile, 0, len(paths))
	for _, p := range paths {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(p, prefix+"-"), ".png"))
		if err != nil {
			continue
		}
		out = append(out, pageFile{path: p, number: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out
}
