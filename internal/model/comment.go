package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment content is always stored trimmed. The task association and
// the author are fixed at creation.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	TaskID    uuid.UUID `json:"task_id"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
