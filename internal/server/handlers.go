package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/export"
)

const uploadField = "file"

type Handler struct {
	proc        StatementProcessor
	exporter    Exporter
	maxUploadMB int
	startTime   time.Time
}

func NewHandler(proc StatementProcessor, exporter Exporter, maxUploadMB int) *Handler {
	return &Handler{proc: proc, exporter: exporter, maxUploadMB: maxUploadMB, startTime: time.Now()}
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ParseResponse is the normalized record plus everything a client needs to
// decide whether to export it.
type ParseResponse struct {
	FileName         string               `json:"fileName"`
	Record           entity.RevenueRecord `json:"record"`
	Warnings         []string             `json:"warnings"`
	Adjustments      []string             `json:"adjustments"`
	Pages            int                  `json:"pages"`
	Model            string               `json:"model"`
	AccountingErrors []string             `json:"accountingErrors"`
}

// ExportRequest carries a record previously returned by the parse endpoint,
// possibly edited by the client.
type ExportRequest struct {
	FileName string                `json:"fileName" binding:"required,max=255"`
	Record   *entity.RevenueRecord `json:"record" binding:"required"`
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
	})
}

// Parse handles POST /api/v1/statements/parse with a multipart "file" field.
func (h *Handler) Parse(c *gin.Context) {
	limit := int64(h.maxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+(1<<20))

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			AppError(c, common.InvalidInputError(fmt.Sprintf("File is too large. Maximum size is %dMB.", h.maxUploadMB)))
			return
		}
		BadRequest(c, "A PDF file is required in the 'file' form field", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		AppError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		AppError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	ctx := common.WithLogger(common.WithRequestID(c.Request.Context(), GetRequestID(c)), GetLogger(c))
	res, err := h.proc.Process(ctx, entity.Document{FileName: fh.Filename, Data: data}, nil)
	if err != nil {
		AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		FileName:         fh.Filename,
		Record:           res.Record,
		Warnings:         nonNil(res.Warnings),
		Adjustments:      nonNil(res.Adjustments),
		Pages:            res.Pages,
		Model:            res.Model,
		AccountingErrors: nonNil(export.ValidateForAccounting(res.Record)),
	})
}

// ExportXLSX handles POST /api/v1/statements/export/xlsx.
func (h *Handler) ExportXLSX(c *gin.Context) {
	h.export(c, h.exporter.ExportXLSX)
}

// ExportCDEX handles POST /api/v1/statements/export/cdex.
func (h *Handler) ExportCDEX(c *gin.Context) {
	h.export(c, h.exporter.ExportCDEX)
}

type exportFunc func(ctx context.Context, rec entity.RevenueRecord, fileName string) (export.Artifact, error)

func (h *Handler) export(c *gin.Context, fn exportFunc) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ValidationError(c, verrs)
			return
		}
		BadRequest(c, "Invalid request body", nil)
		return
	}

	ctx := common.WithLogger(common.WithRequestID(c.Request.Context(), GetRequestID(c)), GetLogger(c))
	art, err := fn(ctx, *req.Record, req.FileName)
	if err != nil {
		AppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, art.FileName))
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
