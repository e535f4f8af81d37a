package types

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one turn of a thread as stored by the chat backend.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// RenderedMessage is a ChatMessage decorated for display. Assistant turns carry
// structured blocks and destination candidates; user turns carry neither.
type RenderedMessage struct {
	Role         MessageRole    `json:"role"`
	Content      string         `json:"content"`
	Blocks       []ContentBlock `json:"blocks,omitempty"`
	Destinations []string       `json:"destinations,omitempty"`
}

// ChatSummary is one entry of the thread list.
type ChatSummary struct {
	ChatID    string `json:"chat_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// ChatHistory is the ordered message list of one thread.
type ChatHistory struct {
	ChatID   string        `json:"chat_id"`
	Messages []ChatMessage `json:"messages"`
}

// RenderedHistory is a ChatHistory with every message decorated.
type RenderedHistory struct {
	ChatID   string            `json:"chat_id"`
	Messages []RenderedMessage `json:"messages"`
}

// SendMessageRequest is the body accepted by the chat message endpoint.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
	ChatID  string `json:"chat_id,omitempty"`
}

// SendMessageResponse is returned after the backend produced a reply.
type SendMessageResponse struct {
	ChatID string          `json:"chat_id"`
	Reply  RenderedMessage `json:"reply"`
}

// UserProfile is the signed-in user as reported by the backend.
type UserProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
