package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Store wraps the Postgres connection used for the document catalog and the
// chunk embedding table.
type Store struct {
	DB *sql.DB
}

// Document extraction statuses persisted in the catalog.
const (
	DocumentStatusPending   = "pending"
	DocumentStatusExtracted = "extracted"
	DocumentStatusFailed    = "failed"
)

// DefaultEmbeddingDimensions indicates the expected length of vectors stored
// in the pgvector column.
const DefaultEmbeddingDimensions = 1536

// ErrNotFound is returned when a catalog record does not exist.
var ErrNotFound = errors.New("not found")

// DocumentRecord is a catalog entry for one uploaded document.
type DocumentRecord struct {
	ID         string
	Filename   string
	SizeBytes  int64
	Status     string
	Summary    string
	UploadedAt time.Time
}

// ChunkRecord is one indexed chunk with its embedding vector.
type ChunkRecord struct {
	ID       string
	Filename string
	Index    int
	Text     string
	Vector   []float32
}

// NewWithDSN opens a Postgres connection and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// SaveDocument inserts or overwrites a catalog record (last write wins).
func (s *Store) SaveDocument(ctx context.Context, doc DocumentRecord) error {
	if doc.ID == "" {
		return fmt.Errorf("document id required")
	}
	if doc.Status == "" {
		doc.Status = DocumentStatusPending
	}
	uploadedAt := doc.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO documents (id, filename, size_bytes, status, summary, uploaded_at)
VALUES ($1,$2,$3,$4,NULLIF($5,''),$6)
ON CONFLICT (id) DO UPDATE SET
  filename = EXCLUDED.filename,
  size_bytes = EXCLUDED.size_bytes,
  status = EXCLUDED.status,
  summary = EXCLUDED.summary,
  uploaded_at = EXCLUDED.uploaded_at;
`, doc.ID, doc.Filename, doc.SizeBytes, doc.Status, doc.Summary, uploadedAt)
	return err
}

// GetDocument returns the catalog record with the given id.
func (s *Store) GetDocument(ctx context.Context, id string) (DocumentRecord, error) {
	var (
		doc     DocumentRecord
		summary sql.NullString
	)
	err := s.DB.QueryRowContext(ctx, `
SELECT id, filename, size_bytes, status, summary, uploaded_at FROM documents WHERE id=$1
`, id).Scan(&doc.ID, &doc.Filename, &doc.SizeBytes, &doc.Status, &summary, &doc.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return DocumentRecord{}, err
	}
	doc.Summary = summary.String
	return doc, nil
}

// ListDocuments returns all catalog records, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, filename, size_bytes, status, summary, uploaded_at FROM documents ORDER BY uploaded_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []DocumentRecord
	for rows.Next() {
		var (
			doc     DocumentRecord
			summary sql.NullString
		)
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.SizeBytes, &doc.Status, &summary, &doc.UploadedAt); err != nil {
			return nil, err
		}
		doc.Summary = summary.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SetDocumentStatus updates the extraction status for a document.
func (s *Store) SetDocumentStatus(ctx context.Context, id, status string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE documents SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDocumentSummary updates the stored summary for a document.
func (s *Store) SetDocumentSummary(ctx context.Context, id, summary string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE documents SET summary=NULLIF($2,'') WHERE id=$1`, id, summary)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertChunks replaces the chunk set for one filename in a single
// transaction: records are upserted by id and stale trailing chunks from a
// longer previous version of the document are removed.
func (s *Store) UpsertChunks(ctx context.Context, filename string, records []ChunkRecord) (err error) {
	if filename == "" {
		return fmt.Errorf("filename required")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM chunks WHERE filename=$1 AND chunk_index >= $2`, filename, len(records)); err != nil {
		return fmt.Errorf("delete stale chunks: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO chunks (id, filename, chunk_index, content, embedding, created_at)
VALUES ($1,$2,$3,$4,$5::vector,NOW())
ON CONFLICT (id) DO UPDATE SET
  filename = EXCLUDED.filename,
  chunk_index = EXCLUDED.chunk_index,
  content = EXCLUDED.content,
  embedding = EXCLUDED.embedding,
  created_at = NOW();
`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("chunk id required")
		}
		if len(rec.Vector) == 0 {
			return fmt.Errorf("embedding vector required for chunk %s", rec.ID)
		}
		var vectorLiteral string
		vectorLiteral, err = encodeVectorLiteral(rec.Vector)
		if err != nil {
			return err
		}
		if _, err = stmt.ExecContext(ctx, rec.ID, rec.Filename, rec.Index, rec.Text, vectorLiteral); err != nil {
			return err
		}
	}
	return nil
}

// SearchChunks returns the texts of the chunks closest to the supplied
// vector, best match first. Ranking is delegated to pgvector.
func (s *Store) SearchChunks(ctx context.Context, vector []float32, limit int) ([]string, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector must not be empty")
	}
	if limit <= 0 {
		limit = 5
	}
	vecLiteral, err := encodeVectorLiteral(vector)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `
SELECT content
FROM chunks
ORDER BY embedding <=> $1::vector
LIMIT $2
`, vecLiteral, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		results = append(results, text)
	}
	return results, rows.Err()
}

func encodeVectorLiteral(vec []float32) (string, error) {
	if len(vec) == 0 {
		return "", fmt.Errorf("vector must not be empty")
	}
	var builder strings.Builder
	builder.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	builder.WriteByte(']')
	return builder.String(), nil
}
