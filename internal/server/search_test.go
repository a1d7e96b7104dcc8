package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubSearcher struct {
	lastQuery string
	lastLimit int
	results   []string
}

func (s *stubSearcher) Retrieve(ctx context.Context, query string, limit int) []string {
	s.lastQuery = query
	s.lastLimit = limit
	return s.results
}

func TestSearchHandler(t *testing.T) {
	stub := &stubSearcher{results: []string{"hit one", "hit two"}}
	e := echo.New()
	(&SearchHandler{Retriever: stub}).Register(e.Group("/api"))

	rec := postJSON(e, "/api/search", searchRequest{Query: "pooling", Limit: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if stub.lastQuery != "pooling" || stub.lastLimit != 2 {
		t.Fatalf("retriever received %q/%d", stub.lastQuery, stub.lastLimit)
	}
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	e := echo.New()
	(&SearchHandler{Retriever: &stubSearcher{}}).Register(e.Group("/api"))

	rec := postJSON(e, "/api/search", searchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchHandlerNoHits(t *testing.T) {
	e := echo.New()
	(&SearchHandler{Retriever: &stubSearcher{}}).Register(e.Group("/api"))

	rec := postJSON(e, "/api/search", searchRequest{Query: "nothing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["results"]) != "[]" {
		t.Fatalf("results must serialize as an empty array, got %s", raw["results"])
	}
}
