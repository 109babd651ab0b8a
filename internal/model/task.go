package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Owner       User         `json:"owner"`
	Assignees   []User       `json:"assignees"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Attachment struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	FileName  string    `json:"file_name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByTitle     SortKey = "title"
	SortByStatus    SortKey = "status"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter is the normalized form of a task listing request. Build it
// with filter.Parse rather than by hand so defaults and clamps apply.
type TaskFilter struct {
	Search    string
	Statuses  []TaskStatus
	Page      int
	PageSize  int
	SortBy    SortKey
	SortOrder SortOrder

	// OwnedOrAssignedTo restricts the listing to tasks the given user
	// owns or is assigned to. Nil means no restriction.
	OwnedOrAssignedTo *uuid.UUID
}

func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
