// internal/models/chat.go
package models

// ChatTimestampLayout is the reply timestamp format of the chat gateway.
const ChatTimestampLayout = "2006-01-02 15:04:05.000000"

const MessageTypeUnstructured = "unstructured"

// ChatRequest is the gateway's inbound payload. Only the first message's
// text is forwarded.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1"`
}

type ChatMessage struct {
	Type         string              `json:"type"`
	Unstructured UnstructuredMessage `json:"unstructured"`
}

type UnstructuredMessage struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ForwardResponse echoes the dialog engine status code and wraps its reply.
type ForwardResponse struct {
	StatusCode int           `json:"statusCode"`
	Messages   []ChatMessage `json:"messages"`
}
