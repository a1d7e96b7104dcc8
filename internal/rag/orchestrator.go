package rag

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const generationErrorPrefix = "Error generating response: "

// Answer is the outcome of one chat exchange.
type Answer struct {
	Response       string
	ConversationID string
	Sources        []string
	Timestamp      time.Time
}

// Orchestrator runs the retrieve → assemble → generate flow for one
// conversation. It never mutates stored state; retrieval and generation
// failures both degrade in-band, so the only hard failure is an empty
// conversation.
type Orchestrator struct {
	Retriever *Retriever
	Generator *Generator
	Logger    *log.Logger
}

// AnswerConversation takes the last turn as the query, retrieves context,
// and returns the completion together with the source chunks it was grounded
// on. A fresh conversation id is generated when none is supplied.
func (o *Orchestrator) AnswerConversation(ctx context.Context, turns []Turn, conversationID string) (Answer, error) {
	if len(turns) == 0 {
		return Answer{}, ErrEmptyConversation
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	query := turns[len(turns)-1].Content
	sources := o.Retriever.Retrieve(ctx, query, 0)

	augmented, err := Assemble(turns, sources)
	if err != nil {
		return Answer{}, err
	}
	response, err := o.Generator.Generate(ctx, augmented)
	if err != nil {
		if o.Logger != nil {
			o.Logger.Printf("generation failed for conversation %s: %v", conversationID, err)
		}
		response = generationErrorPrefix + err.Error()
	}
	return Answer{
		Response:       response,
		ConversationID: conversationID,
		Sources:        sources,
		Timestamp:      time.Now().UTC(),
	}, nil
}
