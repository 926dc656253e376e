package server

//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go

import (
	"context"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/export"
	"github.com/joseph-ayodele/revenue-parser/internal/pipeline"
)

// StatementProcessor runs one uploaded statement through extraction.
type StatementProcessor interface {
	Process(ctx context.Context, doc entity.Document, onProgress pipeline.ProgressFunc) (pipeline.Result, error)
}

// Exporter renders a record into a downloadable artifact.
type Exporter interface {
	ExportXLSX(ctx context.Context, rec entity.RevenueRecord, fileName string) (export.Artifact, error)
	ExportCDEX(ctx context.Context, rec entity.RevenueRecord, fileName string) (export.Artifact, error)
}
