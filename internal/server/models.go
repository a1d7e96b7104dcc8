package server

import (
	"time"

	"github.com/mohammad-safakhou/nexus/internal/rag"
)

type chatRequest struct {
	Messages       []rag.Turn `json:"messages"`
	ConversationID string     `json:"conversation_id"`
}

type chatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversation_id"`
	Sources        []string  `json:"sources"`
	Timestamp      time.Time `json:"timestamp"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Results []string `json:"results"`
}

// ingestResult is the per-file outcome of a multipart upload. Status is
// "success" or "error"; exactly one of ID and Error is set.
type ingestResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	ID       string `json:"id,omitempty"`
	Chunks   int    `json:"chunks"`
	Indexed  bool   `json:"indexed"`
	Error    string `json:"error,omitempty"`
}

type ingestResponse struct {
	Results []ingestResult `json:"results"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	Status     string    `json:"status"`
	Summary    string    `json:"summary,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
