package lexical

import (
	"context"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/mohammad-safakhou/nexus/internal/index"
)

// chunkDoc is the shape bleve indexes for each chunk.
type chunkDoc struct {
	Document string `json:"document"`
	Text     string `json:"text"`
}

// Index is an in-process BM25 index over chunk text. It backs retrieval when
// no embedding provider is configured or the vector store is unreachable.
type Index struct {
	mu    sync.RWMutex
	bleve bleve.Index
	texts map[string]string
}

// New creates an in-memory lexical index.
func New() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{bleve: idx, texts: make(map[string]string)}, nil
}

// Add indexes the entries. Re-indexing an id replaces the previous entry.
func (ix *Index) Add(ctx context.Context, entries []index.Entry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	batch := ix.bleve.NewBatch()
	for _, e := range entries {
		if err := batch.Index(e.ID, chunkDoc{Document: e.Document, Text: e.Text}); err != nil {
			return err
		}
	}
	if err := ix.bleve.Batch(batch); err != nil {
		return err
	}
	for _, e := range entries {
		ix.texts[e.ID] = e.Text
	}
	return nil
}

// Query runs a BM25 match query and returns the hit texts in rank order.
func (ix *Index) Query(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 || text == "" {
		return nil, nil
	}
	query := bleve.NewMatchQuery(text)
	searchReq := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := ix.bleve.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, err
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []string
	for _, hit := range res.Hits {
		if t, ok := ix.texts[hit.ID]; ok {
			out = append(out, t)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
