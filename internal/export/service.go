// Package export turns a normalized revenue record into downloadable
// artifacts: a three-sheet XLSX workbook and a CDEX accounting XML document.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/derive"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXML  = "application/xml"
)

// Artifact is a finished export ready to be written or served.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service builds export artifacts. Builders never modify the record passed in.
type Service struct {
	calc   *derive.Calculator
	now    func() time.Time
	logger *slog.Logger
}

// NewService wires the derived-field calculator and a clock. nil values fall
// back to a base-interest calculator and time.Now.
func NewService(calc *derive.Calculator, now func() time.Time, logger *slog.Logger) *Service {
	if calc == nil {
		calc = derive.NewCalculator(nil)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{calc: calc, now: now, logger: logger}
}

// ExportXLSX always produces a workbook.
func (s *Service) ExportXLSX(ctx context.Context, rec entity.RevenueRecord, fileName string) (Artifact, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, s.logger)

	sheets := s.BuildSheets(rec)
	data, err := encodeXLSX(sheets)
	if err != nil {
		logger.Error("export.xlsx.failed", "file", fileName, "error", err)
		return Artifact{}, fmt.Errorf("xlsx: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"file", fileName,
		"rows", len(rec.LineItems),
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Artifact{
		FileName:    XLSXFileName(fileName, s.now()),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// ExportCDEX fails with an ExportValidationError listing every gate violation.
func (s *Service) ExportCDEX(ctx context.Context, rec entity.RevenueRecord, fileName string) (Artifact, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, s.logger)

	doc, err := s.ConvertToAccounting(rec, fileName)
	if err != nil {
		logger.Warn("export.cdex.rejected", "file", fileName, "error", err)
		return Artifact{}, err
	}
	data, err := EncodeAccountingXML(doc)
	if err != nil {
		logger.Error("export.cdex.failed", "file", fileName, "error", err)
		return Artifact{}, fmt.Errorf("cdex: %w", err)
	}

	logger.Info("export.cdex.ok",
		"file", fileName,
		"transactions", doc.Summary.TransactionCount,
		"total_debits", doc.Summary.TotalDebits.StringFixed(2),
		"total_credits", doc.Summary.TotalCredits.StringFixed(2),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Artifact{
		FileName:    CDEXFileName(fileName, s.now()),
		ContentType: ContentTypeXML,
		Data:        data,
	}, nil
}
