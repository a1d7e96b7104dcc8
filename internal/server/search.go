package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Searcher answers free-text retrieval queries. *rag.Retriever satisfies it.
type Searcher interface {
	Retrieve(ctx context.Context, query string, limit int) []string
}

// SearchHandler exposes raw retrieval without generation, mainly for
// debugging what the index returns for a query.
type SearchHandler struct {
	Retriever Searcher
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("/search", h.search)
}

func (h *SearchHandler) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	results := h.Retriever.Retrieve(c.Request().Context(), req.Query, req.Limit)
	if results == nil {
		results = []string{}
	}
	return c.JSON(http.StatusOK, searchResponse{Results: results})
}
