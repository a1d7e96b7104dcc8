package server

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/nexus/internal/rag"
)

// Ingester runs the ingestion pipeline for one uploaded file. *rag.Pipeline
// satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, data []byte, filename string) (rag.IngestSummary, error)
}

// IngestHandler accepts multipart document uploads.
type IngestHandler struct {
	Pipeline Ingester
}

func (h *IngestHandler) Register(g *echo.Group) {
	g.POST("/ingest", h.ingest)
}

// ingest processes each uploaded file independently. One malformed file does
// not fail the batch; its result carries the error while the rest proceed.
func (h *IngestHandler) ingest(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files provided")
	}

	ctx := c.Request().Context()
	results := make([]ingestResult, 0, len(files))
	for _, fh := range files {
		result := ingestResult{Filename: fh.Filename}
		data, err := readUpload(fh)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			documentsIngested.WithLabelValues("error").Inc()
			results = append(results, result)
			continue
		}
		summary, err := h.Pipeline.Ingest(ctx, data, fh.Filename)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			documentsIngested.WithLabelValues("error").Inc()
			results = append(results, result)
			continue
		}
		result.Status = "success"
		result.ID = summary.DocumentID
		result.Chunks = summary.Chunks
		result.Indexed = summary.Indexed
		documentsIngested.WithLabelValues("success").Inc()
		chunksIndexed.Add(float64(summary.Chunks))
		results = append(results, result)
	}
	return c.JSON(http.StatusOK, ingestResponse{Results: results})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
