package rag

import (
	"fmt"
	"unicode"
)

// Default chunking configuration. The 200-character overlap keeps enough
// trailing context from the previous chunk that cross-sentence references at
// a boundary are not lost.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Split windows text into chunks of at most size characters, each sharing
// overlap characters of context with its predecessor. Within a window the cut
// prefers a paragraph, then sentence, then word boundary before falling back
// to a hard cut at size. Split is pure and deterministic; concatenating the
// chunks with each chunk's overlap prefix removed (first chunk excepted)
// reconstructs the input exactly.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidChunking, size, overlap)
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	var chunks []string
	start := 0
	for {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks, nil
		}
		end = cutAt(runes, start, end, overlap)
		chunks = append(chunks, string(runes[start:end]))
		start = end - overlap
	}
}

// cutAt picks the cut position for a window [start, end). A natural boundary
// is only taken when it leaves the cut past start+overlap, so every step
// still advances by at least one character.
func cutAt(runes []rune, start, end, overlap int) int {
	min := start + overlap + 1
	if min >= end {
		return end
	}
	for i := end; i >= min; i-- {
		if runes[i-1] == '\n' && i >= 2 && runes[i-2] == '\n' {
			return i
		}
	}
	for i := end; i >= min; i-- {
		c := runes[i-1]
		if (c == '.' || c == '!' || c == '?') && unicode.IsSpace(runes[i]) {
			return i
		}
	}
	for i := end; i >= min; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
