package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/nexus/internal/rag"
)

type stubIngester struct {
	summaries map[string]rag.IngestSummary
	errs      map[string]error
	calls     []string
}

func (s *stubIngester) Ingest(ctx context.Context, data []byte, filename string) (rag.IngestSummary, error) {
	s.calls = append(s.calls, filename)
	if err := s.errs[filename]; err != nil {
		return rag.IngestSummary{}, err
	}
	return s.summaries[filename], nil
}

func multipartUpload(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestIngestHandler(t *testing.T) {
	stub := &stubIngester{summaries: map[string]rag.IngestSummary{
		"guide.txt": {DocumentID: "doc-1", Chunks: 3, Indexed: true},
	}}
	e := echo.New()
	(&IngestHandler{Pipeline: stub}).Register(e.Group("/api"))

	body, contentType := multipartUpload(t, map[string][]byte{"guide.txt": []byte("contents")})
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ingestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Status != "success" || r.ID != "doc-1" || r.Chunks != 3 || !r.Indexed {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestIngestHandlerPerFileIsolation(t *testing.T) {
	stub := &stubIngester{
		summaries: map[string]rag.IngestSummary{
			"good.txt": {DocumentID: "doc-good", Chunks: 1, Indexed: true},
		},
		errs: map[string]error{
			"bad.pdf": &rag.ExtractionError{Filename: "bad.pdf", Reason: rag.ReasonMalformedDocument},
		},
	}
	e := echo.New()
	(&IngestHandler{Pipeline: stub}).Register(e.Group("/api"))

	body, contentType := multipartUpload(t, map[string][]byte{
		"good.txt": []byte("fine"),
		"bad.pdf":  []byte("broken"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("a failed file must not fail the batch: status = %d", rec.Code)
	}
	var resp ingestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected two results, got %d", len(resp.Results))
	}
	byName := map[string]ingestResult{}
	for _, r := range resp.Results {
		byName[r.Filename] = r
	}
	if byName["good.txt"].Status != "success" {
		t.Fatalf("good file should succeed: %+v", byName["good.txt"])
	}
	bad := byName["bad.pdf"]
	if bad.Status != "error" || bad.Error == "" || bad.ID != "" {
		t.Fatalf("bad file should carry an error: %+v", bad)
	}
	if len(stub.calls) != 2 {
		t.Fatalf("both files must reach the pipeline, got %v", stub.calls)
	}
}

func TestIngestHandlerNoFiles(t *testing.T) {
	e := echo.New()
	(&IngestHandler{Pipeline: &stubIngester{}}).Register(e.Group("/api"))

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
