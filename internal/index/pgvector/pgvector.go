package pgvector

import (
	"context"
	"fmt"
	"log"

	"github.com/mohammad-safakhou/nexus/internal/index"
	"github.com/mohammad-safakhou/nexus/internal/store"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Storage persists chunk vectors and answers nearest-neighbour queries.
// *store.Store satisfies it.
type Storage interface {
	UpsertChunks(ctx context.Context, filename string, records []store.ChunkRecord) error
	SearchChunks(ctx context.Context, vector []float32, limit int) ([]string, error)
}

// Cache is an optional embedding cache for query texts.
type Cache interface {
	Get(ctx context.Context, text string) ([]float32, bool)
	Put(ctx context.Context, text string, vec []float32)
}

// Index stores chunk embeddings in a pgvector column and ranks query matches
// by cosine distance. Similarity scoring is delegated entirely to Postgres.
type Index struct {
	embedder Embedder
	storage  Storage
	cache    Cache
	logger   *log.Logger
}

// New builds a pgvector index. It returns nil when no embedder is available;
// callers fall back to lexical retrieval in that case.
func New(embedder Embedder, storage Storage, cache Cache, logger *log.Logger) *Index {
	if embedder == nil || storage == nil {
		return nil
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[PGVECTOR] ", log.LstdFlags)
	}
	return &Index{embedder: embedder, storage: storage, cache: cache, logger: logger}
}

// Add embeds the batch in a single provider call and upserts the chunk rows.
func (ix *Index) Add(ctx context.Context, entries []index.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	filename := entries[0].Document
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	vectors, err := ix.embedder.CreateEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed batch: %v", index.ErrUnavailable, err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("%w: expected %d vectors, got %d", index.ErrUnavailable, len(entries), len(vectors))
	}
	records := make([]store.ChunkRecord, len(entries))
	for i, e := range entries {
		records[i] = store.ChunkRecord{
			ID:       e.ID,
			Filename: e.Document,
			Index:    e.Index,
			Text:     e.Text,
			Vector:   vectors[i],
		}
	}
	if err := ix.storage.UpsertChunks(ctx, filename, records); err != nil {
		return fmt.Errorf("%w: upsert chunks: %v", index.ErrUnavailable, err)
	}
	return nil
}

// Query embeds the text (consulting the cache first) and returns the closest
// chunk texts.
func (ix *Index) Query(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 || text == "" {
		return nil, nil
	}
	vec, cached := ix.cachedVector(ctx, text)
	if !cached {
		vectors, err := ix.embedder.CreateEmbedding(ctx, []string{text})
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		if len(vectors) == 0 {
			return nil, fmt.Errorf("embed query: provider returned no vectors")
		}
		vec = vectors[0]
		if ix.cache != nil {
			ix.cache.Put(ctx, text, vec)
		}
	}
	return ix.storage.SearchChunks(ctx, vec, limit)
}

func (ix *Index) cachedVector(ctx context.Context, text string) ([]float32, bool) {
	if ix.cache == nil {
		return nil, false
	}
	return ix.cache.Get(ctx, text)
}
