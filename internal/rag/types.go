package rag

// Conversation roles understood by the generation path. Turns with any other
// role are dropped before the provider call.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single role-tagged message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
