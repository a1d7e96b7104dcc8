package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/nexus/config"
	"github.com/mohammad-safakhou/nexus/internal/blob"
	"github.com/mohammad-safakhou/nexus/internal/cache"
	"github.com/mohammad-safakhou/nexus/internal/index"
	"github.com/mohammad-safakhou/nexus/internal/index/lexical"
	"github.com/mohammad-safakhou/nexus/internal/index/pgvector"
	"github.com/mohammad-safakhou/nexus/internal/rag"
	"github.com/mohammad-safakhou/nexus/internal/store"
	"github.com/mohammad-safakhou/nexus/provider"
)

func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize shared dependencies (top-level DI)
	ctx := context.Background()
	if err := cfg.Storage.Postgres.Validate(); err != nil {
		return err
	}
	dsn := cfg.Storage.Postgres.DSN()
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		return err
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	// Generation and embedding provider. A nil provider is a degraded server,
	// not a broken one: chat answers with a fixed apology and retrieval falls
	// back to the lexical index.
	prov := provider.NewProvider(cfg.Providers.OpenAI)
	if prov == nil {
		baseLogger.Printf("warn: no OpenAI API key configured, running degraded")
	}

	idxLogger := log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
	var embedCache pgvector.Cache
	if cfg.Storage.Redis.Enabled() {
		client, err := cache.Conn(ctx, cfg.Storage.Redis.Host, cfg.Storage.Redis.Port,
			cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.Timeout)
		if err != nil {
			baseLogger.Printf("warn: redis unavailable, embedding cache disabled: %v", err)
		} else {
			embedCache = cache.NewEmbeddings(client, cfg.Providers.OpenAI.EmbeddingModel, 0, idxLogger)
		}
	}

	var components []index.Index
	if vec := pgvector.New(prov, st, embedCache, idxLogger); vec != nil {
		components = append(components, vec)
	}
	lex, err := lexical.New()
	if err != nil {
		baseLogger.Printf("warn: lexical index unavailable: %v", err)
	} else {
		components = append(components, lex)
	}
	idx := index.NewFanout(idxLogger, components...)

	blobs, err := blob.NewStore(cfg.Storage.File.UploadDir)
	if err != nil {
		return err
	}

	ragLogger := log.New(log.Writer(), "[RAG] ", log.LstdFlags)
	pipeline := &rag.Pipeline{
		Blobs:        blobs,
		Catalog:      st,
		Index:        idx,
		ChunkSize:    cfg.Retrieval.ChunkSize,
		ChunkOverlap: cfg.Retrieval.ChunkOverlap,
		Logger:       ragLogger,
	}
	retriever := &rag.Retriever{Index: idx, TopK: cfg.Retrieval.TopK, Logger: ragLogger}
	orchestrator := &rag.Orchestrator{
		Retriever: retriever,
		Generator: &rag.Generator{Provider: prov},
		Logger:    ragLogger,
	}

	api := e.Group("/api")
	(&ChatHandler{Orchestrator: orchestrator}).Register(api)
	(&IngestHandler{Pipeline: pipeline}).Register(api)
	(&SearchHandler{Retriever: retriever}).Register(api)
	(&DocumentsHandler{Store: st}).Register(api)

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8000"
	}
	return e.Start(addr)
}
