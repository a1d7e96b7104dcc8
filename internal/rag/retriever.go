package rag

import (
	"context"
	"log"

	"github.com/mohammad-safakhou/nexus/internal/index"
)

// DefaultTopK is the system-wide default for how much context to pull per
// question.
const DefaultTopK = 5

// Retriever returns the most relevant indexed chunks for a free-text query.
type Retriever struct {
	Index  index.Index
	TopK   int
	Logger *log.Logger
}

// Retrieve returns up to limit chunk texts ordered by descending relevance.
// A non-positive limit uses the configured default. Retrieval never fails:
// index errors degrade to an empty result so chat is never blocked.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		limit = r.TopK
	}
	if limit <= 0 {
		limit = DefaultTopK
	}
	results, err := r.Index.Query(ctx, query, limit)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Printf("warn: retrieval degraded: %v", err)
		}
		return nil
	}
	return results
}
