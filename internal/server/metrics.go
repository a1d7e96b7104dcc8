package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_documents_ingested_total",
		Help: "Documents accepted for ingestion, by outcome.",
	}, []string{"status"})

	chunksIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexus_chunks_indexed_total",
		Help: "Chunks submitted to the index.",
	})

	chatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nexus_chat_duration_seconds",
		Help:    "End-to-end latency of chat requests.",
		Buckets: prometheus.DefBuckets,
	})
)
