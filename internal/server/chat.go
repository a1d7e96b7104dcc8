package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/nexus/internal/rag"
)

// Answerer runs the retrieval and generation flow for one conversation.
// *rag.Orchestrator satisfies it.
type Answerer interface {
	AnswerConversation(ctx context.Context, turns []rag.Turn, conversationID string) (rag.Answer, error)
}

// ChatHandler exposes the conversational endpoint.
type ChatHandler struct {
	Orchestrator Answerer
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages must not be empty")
	}
	started := time.Now()
	answer, err := h.Orchestrator.AnswerConversation(c.Request().Context(), req.Messages, req.ConversationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	chatDuration.Observe(time.Since(started).Seconds())
	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	return c.JSON(http.StatusOK, chatResponse{
		Response:       answer.Response,
		ConversationID: answer.ConversationID,
		Sources:        sources,
		Timestamp:      answer.Timestamp,
	})
}
