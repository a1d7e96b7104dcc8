package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/nexus/internal/store"
)

// DocumentsHandler exposes the document catalog.
type DocumentsHandler struct {
	Store *store.Store
}

func (h *DocumentsHandler) Register(g *echo.Group) {
	g.GET("/documents", h.list)
	g.GET("/documents/:id", h.get)
}

func (h *DocumentsHandler) list(c echo.Context) error {
	docs, err := h.Store.ListDocuments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DocumentsHandler) get(c echo.Context) error {
	doc, err := h.Store.GetDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func toDocumentResponse(d store.DocumentRecord) documentResponse {
	return documentResponse{
		ID:         d.ID,
		Filename:   d.Filename,
		SizeBytes:  d.SizeBytes,
		Status:     d.Status,
		Summary:    d.Summary,
		UploadedAt: d.UploadedAt,
	}
}
