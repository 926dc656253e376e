package pipeline

//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go

import (
	"context"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
	"github.com/joseph-ayodele/revenue-parser/internal/raster"
)

// PageRasterizer renders a document into ordered page images.
type PageRasterizer interface {
	Rasterize(ctx context.Context, doc entity.Document, onPage raster.ProgressFunc) ([]entity.Page, error)
}

// VisionModel returns raw model text for the given pages and prompt.
type VisionModel interface {
	Extract(ctx context.Context, req llm.ExtractRequest) (string, error)
	Name() string
}
