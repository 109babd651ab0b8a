package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/avolkonsky/taskboard-api/internal/model"
)

type TaskRepository interface {
	// List returns one page of tasks matching the filter plus the total
	// count of the filtered set before pagination. Every returned task
	// carries its owner, full assignee set and attachments.
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, int, error)
	Get(ctx context.Context, id uuid.UUID) (model.Task, error)
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	Get(ctx context.Context, id uuid.UUID) (model.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
