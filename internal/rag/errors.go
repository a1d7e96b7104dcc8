package rag

import (
	"errors"
	"fmt"
)

// ErrInvalidChunking indicates chunker parameters that violate the
// size/overlap preconditions. This is a programmer error, not a
// user-recoverable one.
var ErrInvalidChunking = errors.New("invalid chunking configuration")

// ErrEmptyConversation indicates a chat request with no messages.
var ErrEmptyConversation = errors.New("conversation has no messages")

// Extraction failure reasons.
const (
	ReasonMalformedDocument = "malformed-document"
	ReasonInvalidEncoding   = "invalid-encoding"
)

// ExtractionError reports that text could not be extracted from an uploaded
// document. It is surfaced as the per-file ingestion result and never aborts
// a multi-file batch.
type ExtractionError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract %s (%s): %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to extract %s (%s)", e.Filename, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
