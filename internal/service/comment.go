package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
	"github.com/avolkonsky/taskboard-api/internal/permission"
	"github.com/avolkonsky/taskboard-api/internal/repo"
)

type CommentService struct {
	comments repo.CommentRepository
	tasks    repo.TaskRepository
	users    repo.UserRepository
}

func NewCommentService(comments repo.CommentRepository, tasks repo.TaskRepository, users repo.UserRepository) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, users: users}
}

func (s *CommentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

// Create requires both the task and the author to already exist; a
// missing one surfaces as not-found rather than being created on the
// fly. Content is stored trimmed.
func (s *CommentService) Create(ctx context.Context, principal *auth.Principal, taskID uuid.UUID, content string) (model.Comment, error) {
	if principal == nil {
		return model.Comment{}, ErrUnauthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, ErrValidation
	}

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return model.Comment{}, err
	}
	author, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return model.Comment{}, err
	}

	return s.comments.Create(ctx, model.Comment{
		Content: content,
		TaskID:  task.ID,
		Author:  author,
	})
}

// Update is author-only, with no role override, and changes nothing but
// the content.
func (s *CommentService) Update(ctx context.Context, principal *auth.Principal, id uuid.UUID, content string) (model.Comment, error) {
	if principal == nil {
		return model.Comment{}, ErrUnauthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, ErrValidation
	}

	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return model.Comment{}, err
	}
	if !permission.CanModifyComment(principal, comment) {
		return model.Comment{}, ErrForbidden
	}

	return s.comments.UpdateContent(ctx, comment.ID, content)
}

func (s *CommentService) Delete(ctx context.Context, principal *auth.Principal, id uuid.UUID) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}
	if !permission.CanModifyComment(principal, comment) {
		return ErrForbidden
	}

	return s.comments.Delete(ctx, comment.ID)
}
