package index

import (
	"context"
	"errors"
	"log"
)

// Entry is a chunk submitted for indexing: an identifier, the filename of the
// parent document and the chunk's position within it, and the raw text.
type Entry struct {
	ID       string
	Document string
	Index    int
	Text     string
}

// Index stores chunk entries and answers free-text queries with ranked chunk
// texts. Implementations delegate similarity ranking to their backing store.
type Index interface {
	// Add indexes the entries in one batch. Entries with an already-indexed
	// id replace the previous entry (last write wins).
	Add(ctx context.Context, entries []Entry) error
	// Query returns up to limit chunk texts ordered by descending relevance.
	Query(ctx context.Context, text string, limit int) ([]string, error)
}

// ErrUnavailable indicates the backing store cannot be reached. Ingestion
// treats it as a degraded-mode signal, not a failure.
var ErrUnavailable = errors.New("index unavailable")

// Fanout writes entries to every component index and serves queries from the
// first component that returns results. Components are ordered by preference;
// a semantic index first and a lexical fallback behind it gives retrieval
// that degrades instead of erroring when the vector store is down.
type Fanout struct {
	Components []Index
	Logger     *log.Logger
}

// NewFanout builds a fanout over the given components, skipping nil ones.
func NewFanout(logger *log.Logger, components ...Index) *Fanout {
	if logger == nil {
		logger = log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
	}
	var active []Index
	for _, c := range components {
		if c != nil {
			active = append(active, c)
		}
	}
	return &Fanout{Components: active, Logger: logger}
}

// Add indexes the batch into every component. It fails with ErrUnavailable
// only when no component accepted the batch; a partial write still leaves the
// entries retrievable through the surviving component.
func (f *Fanout) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ok := false
	for _, c := range f.Components {
		if err := c.Add(ctx, entries); err != nil {
			f.Logger.Printf("warn: index add failed: %v", err)
			continue
		}
		ok = true
	}
	if !ok {
		return ErrUnavailable
	}
	return nil
}

// Query asks each component in order and returns the first non-empty result.
// Component errors are logged and skipped; an exhausted component list yields
// an empty result, never an error.
func (f *Fanout) Query(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	for _, c := range f.Components {
		results, err := c.Query(ctx, text, limit)
		if err != nil {
			f.Logger.Printf("warn: index query failed: %v", err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, nil
}
