package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Embeddings caches embedding vectors in Redis keyed by model and input
// text, so repeated queries skip the provider round trip. All cache errors
// are logged and swallowed; a broken cache must never affect retrieval.
type Embeddings struct {
	client *redis.Client
	model  string
	ttl    time.Duration
	logger *log.Logger
}

// Conn opens and verifies a Redis connection.
func Conn(ctx context.Context, host, port, pass string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// NewEmbeddings builds an embedding cache over the given client.
func NewEmbeddings(client *redis.Client, model string, ttl time.Duration, logger *log.Logger) *Embeddings {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[CACHE] ", log.LstdFlags)
	}
	return &Embeddings{client: client, model: model, ttl: ttl, logger: logger}
}

// Get returns the cached vector for the text, if present.
func (e *Embeddings) Get(ctx context.Context, text string) ([]float32, bool) {
	data, err := e.client.Get(ctx, e.key(text)).Bytes()
	if err != nil {
		if err != redis.Nil {
			e.logger.Printf("warn: embedding cache get: %v", err)
		}
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		e.logger.Printf("warn: embedding cache decode: %v", err)
		return nil, false
	}
	return vec, true
}

// Put stores the vector for the text.
func (e *Embeddings) Put(ctx context.Context, text string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		e.logger.Printf("warn: embedding cache encode: %v", err)
		return
	}
	if err := e.client.Set(ctx, e.key(text), data, e.ttl).Err(); err != nil {
		e.logger.Printf("warn: embedding cache set: %v", err)
	}
}

func (e *Embeddings) key(text string) string {
	sum := sha256.Sum256([]byte(e.model + "\x00" + text))
	return "nexus:embed:" + hex.EncodeToString(sum[:])
}
