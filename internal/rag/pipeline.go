package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/nexus/internal/index"
	"github.com/mohammad-safakhou/nexus/internal/store"
)

// BlobStore persists raw uploaded bytes and returns a retrieval path. The
// path is informational only; ingestion does not read it back.
type BlobStore interface {
	Save(data []byte, filename string) (string, error)
}

// Catalog persists document metadata records keyed by document id.
// *store.Store satisfies it.
type Catalog interface {
	SaveDocument(ctx context.Context, doc store.DocumentRecord) error
	SetDocumentStatus(ctx context.Context, id, status string) error
}

// IngestSummary reports the outcome of ingesting one document. Indexed is
// false when extraction and chunking succeeded but the index rejected the
// batch; the document is then not retrievable until re-ingested.
type IngestSummary struct {
	DocumentID string
	Chunks     int
	Indexed    bool
}

// Pipeline orchestrates extraction, chunking and indexing for one uploaded
// document.
type Pipeline struct {
	Blobs        BlobStore
	Catalog      Catalog
	Index        index.Index
	ChunkSize    int
	ChunkOverlap int
	Logger       *log.Logger
}

// Ingest runs the full pipeline for one file. Extraction failure is the
// per-file result; catalog, blob-store and index failures are operational
// and never invalidate a successful extraction. Chunk ids are deterministic
// ({filename}_{index}), so re-ingesting the same filename overwrites the
// previous chunk set.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename string) (IngestSummary, error) {
	docID := uuid.NewString()
	summary := IngestSummary{DocumentID: docID}

	p.saveRecord(ctx, store.DocumentRecord{
		ID:        docID,
		Filename:  filename,
		SizeBytes: int64(len(data)),
		Status:    store.DocumentStatusPending,
	})

	if p.Blobs != nil {
		if _, err := p.Blobs.Save(data, filename); err != nil {
			p.logf("warn: blob save for %s failed: %v", filename, err)
		}
	}

	text, err := ExtractText(data, filename)
	if err != nil {
		p.setStatus(ctx, docID, store.DocumentStatusFailed)
		return summary, err
	}

	size := p.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := p.ChunkOverlap
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	var chunks []string
	if strings.TrimSpace(text) != "" {
		chunks, err = Split(text, size, overlap)
		if err != nil {
			p.setStatus(ctx, docID, store.DocumentStatusFailed)
			return summary, err
		}
	}
	p.setStatus(ctx, docID, store.DocumentStatusExtracted)
	summary.Chunks = len(chunks)
	summary.Indexed = true

	if len(chunks) == 0 {
		return summary, nil
	}
	entries := make([]index.Entry, len(chunks))
	for i, text := range chunks {
		entries[i] = index.Entry{
			ID:       fmt.Sprintf("%s_%d", filename, i),
			Document: filename,
			Index:    i,
			Text:     text,
		}
	}
	if err := p.Index.Add(ctx, entries); err != nil {
		summary.Indexed = false
		p.logf("warn: indexing %s failed, document not retrievable: %v", filename, err)
	}
	return summary, nil
}

func (p *Pipeline) saveRecord(ctx context.Context, doc store.DocumentRecord) {
	if p.Catalog == nil {
		return
	}
	if err := p.Catalog.SaveDocument(ctx, doc); err != nil {
		p.logf("warn: catalog save for %s failed: %v", doc.Filename, err)
	}
}

func (p *Pipeline) setStatus(ctx context.Context, id, status string) {
	if p.Catalog == nil {
		return
	}
	if err := p.Catalog.SetDocumentStatus(ctx, id, status); err != nil {
		p.logf("warn: catalog status update for %s failed: %v", id, err)
	}
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
