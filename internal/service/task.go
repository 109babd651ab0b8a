package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
	"github.com/avolkonsky/taskboard-api/internal/permission"
	"github.com/avolkonsky/taskboard-api/internal/repo"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type TaskService struct {
	tasks repo.TaskRepository
	users repo.UserRepository
}

func NewTaskService(tasks repo.TaskRepository, users repo.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// List returns one page of the filtered task set. Visibility is
// deliberately unrestricted: permissions gate mutation, not reads, and
// the only narrowing is the caller's own myTasks opt-in already baked
// into the filter.
func (s *TaskService) List(ctx context.Context, f model.TaskFilter) (model.Page[model.Task], error) {
	tasks, total, err := s.tasks.List(ctx, f)
	if err != nil {
		return model.Page[model.Task]{}, err
	}
	return model.NewPage(tasks, total, f.Page, f.PageSize), nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	return s.tasks.Get(ctx, id)
}

type CreateTaskInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      model.TaskStatus `json:"status"`
	AssigneeIDs []uuid.UUID      `json:"assignee_ids"`
}

func (s *TaskService) Create(ctx context.Context, principal *auth.Principal, in CreateTaskInput) (model.Task, error) {
	if principal == nil {
		return model.Task{}, ErrUnauthenticated
	}
	if !permission.CanCreateTask(principal) {
		return model.Task{}, ErrForbidden
	}

	if in.Status == "" {
		in.Status = model.StatusTodo
	}
	if err := validateTaskFields(in.Title, in.Description, in.Status); err != nil {
		return model.Task{}, err
	}

	owner, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return model.Task{}, err
	}

	assignees, err := s.users.GetByIDs(ctx, in.AssigneeIDs)
	if err != nil {
		return model.Task{}, err
	}

	return s.tasks.Create(ctx, model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		Owner:       owner,
		Assignees:   assignees,
	})
}

// UpdateTaskInput carries partial task changes. Nil fields are left
// untouched; a non-nil AssigneeIDs replaces the whole assignee set.
type UpdateTaskInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Status      *model.TaskStatus `json:"status"`
	AssigneeIDs *[]uuid.UUID      `json:"assignee_ids"`
}

func (s *TaskService) Update(ctx context.Context, principal *auth.Principal, id uuid.UUID, in UpdateTaskInput) (model.Task, error) {
	if principal == nil {
		return model.Task{}, ErrUnauthenticated
	}

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if !permission.CanEditTask(principal, task) {
		return model.Task{}, ErrForbidden
	}

	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if err := validateTaskFields(task.Title, task.Description, task.Status); err != nil {
		return model.Task{}, err
	}

	if in.AssigneeIDs != nil {
		assignees, err := s.users.GetByIDs(ctx, *in.AssigneeIDs)
		if err != nil {
			return model.Task{}, err
		}
		task.Assignees = assignees
	}

	return s.tasks.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, principal *auth.Principal, id uuid.UUID) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if !permission.CanDeleteTask(principal, task) {
		return ErrForbidden
	}

	return s.tasks.Delete(ctx, id)
}

func validateTaskFields(title, description string, status model.TaskStatus) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 || len(title) > 120 {
		return ErrValidation
	}
	if len(description) > 2000 {
		return ErrValidation
	}
	if !status.Valid() {
		return ErrValidation
	}
	return nil
}
