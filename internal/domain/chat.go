package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is a single entry in the append-only conversation record.
// Content is either text or, when IsImage is set, an image data URL.
type ChatTurn struct {
	ID        string
	Role      ChatRole
	Content   string
	Timestamp time.Time
	IsImage   bool
}

// NewChatTurn creates a text chat turn stamped with the current time.
func NewChatTurn(role ChatRole, content string) ChatTurn {
	return ChatTurn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewImageTurn creates an assistant chat turn carrying an image
// reference.
func NewImageTurn(dataURL string) ChatTurn {
	turn := NewChatTurn(RoleAssistant, dataURL)
	turn.IsImage = true
	return turn
}
