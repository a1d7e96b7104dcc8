package rag

import (
	"fmt"
	"strings"
)

const contextInstruction = "Use the following context to answer the user's question:"

// Assemble injects the retrieved context into the conversation: the chunks
// are joined into a single block and the last turn (the current user
// question) is rewritten to carry it. Earlier turns pass through untouched
// and the input slice is never mutated. With nothing retrieved the
// conversation is returned as-is.
func Assemble(turns []Turn, retrieved []string) ([]Turn, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyConversation
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	if len(retrieved) == 0 {
		return out, nil
	}
	contextBlock := strings.Join(retrieved, "\n")
	last := &out[len(out)-1]
	last.Content = fmt.Sprintf("%s\n%s\n\nUser Question: %s", contextInstruction, contextBlock, last.Content)
	return out, nil
}
