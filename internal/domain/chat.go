package domain

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the per-document assistant conversation.
// History is replayed to the text provider as context on every prompt.
type ChatMessage struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Role       ChatRole  `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
