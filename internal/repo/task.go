package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkonsky/taskboard-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `
	t.id, t.title, coalesce(t.description, ''), t.status, t.created_at, t.updated_at,
	u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at`

// sortColumns maps the allow-listed sort keys to real columns. Raw
// query input never reaches the ORDER BY.
var sortColumns = map[model.SortKey]string{
	model.SortByCreatedAt: "t.created_at",
	model.SortByTitle:     "t.title",
	model.SortByStatus:    "t.status",
}

// buildWhere composes the filter dimensions with AND. The returned args
// line up with the $n placeholders embedded in the clause.
func buildWhere(f model.TaskFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(lower(t.title) LIKE $%d OR lower(coalesce(t.description, '')) LIKE $%d)", n, n))
	}

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("t.status = ANY($%d)", len(args)))
	}

	if f.OwnedOrAssignedTo != nil {
		args = append(args, *f.OwnedOrAssignedTo)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(t.owner_id = $%d OR EXISTS (SELECT 1 FROM task_assignees a WHERE a.task_id = t.id AND a.user_id = $%d))", n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *TaskRepo) List(ctx context.Context, f model.TaskFilter) ([]model.Task, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := "SELECT count(*) FROM tasks t" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if f.SortOrder == model.SortAsc {
		dir = "ASC"
	}
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = sortColumns[model.SortByCreatedAt]
	}
	// Secondary sort on id keeps pagination stable across equal keys.
	orderBy := fmt.Sprintf(" ORDER BY %s %s, t.id %s", col, dir, dir)

	args = append(args, f.PageSize, f.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM tasks t JOIN users u ON u.id = t.owner_id%s%s LIMIT $%d OFFSET $%d",
		taskColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, f.PageSize)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.expandRelations(ctx, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepo) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT"+taskColumns+" FROM tasks t JOIN users u ON u.id = t.owner_id WHERE t.id = $1", id)

	t, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	if err != nil {
		return t, err
	}

	tasks := []model.Task{t}
	if err := r.expandRelations(ctx, tasks); err != nil {
		return t, err
	}
	return tasks[0], nil
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return t, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, status, owner_id)
		VALUES (gen_random_uuid(), $1, nullif($2, ''), $3, $4)
		RETURNING id
	`, t.Title, t.Description, t.Status, t.Owner.ID).Scan(&t.ID)
	if err != nil {
		return t, mapError(err)
	}

	if err := replaceAssignees(ctx, tx, t.ID, t.Assignees); err != nil {
		return t, mapError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return t, err
	}

	return r.Get(ctx, t.ID)
}

// Update replaces the assignee set wholesale; ownership never changes.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return t, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = nullif($3, ''), status = $4, updated_at = now()
		WHERE id = $1
	`, t.ID, t.Title, t.Description, t.Status)
	if err != nil {
		return t, mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return t, ErrorNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM task_assignees WHERE task_id = $1", t.ID); err != nil {
		return t, err
	}
	if err := replaceAssignees(ctx, tx, t.ID, t.Assignees); err != nil {
		return t, mapError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return t, err
	}

	return r.Get(ctx, t.ID)
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func replaceAssignees(ctx context.Context, tx pgx.Tx, taskID uuid.UUID, assignees []model.User) error {
	for _, a := range assignees {
		_, err := tx.Exec(ctx,
			"INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			taskID, a.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.Owner.ID, &t.Owner.Email, &t.Owner.FirstName, &t.Owner.LastName,
		&t.Owner.CreatedAt, &t.Owner.UpdatedAt,
	)
	return t, err
}

// expandRelations batch-loads assignees and attachments for a page of
// tasks so listing stays at a fixed number of queries.
func (r *TaskRepo) expandRelations(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(tasks))
	byID := make(map[uuid.UUID]*model.Task, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		byID[tasks[i].ID] = &tasks[i]
		tasks[i].Assignees = []model.User{}
		tasks[i].Attachments = []model.Attachment{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT a.task_id, u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
		FROM task_assignees a
		JOIN users u ON u.id = a.user_id
		WHERE a.task_id = ANY($1)
		ORDER BY u.last_name, u.first_name, u.id
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var taskID uuid.UUID
		var u model.User
		if err := rows.Scan(&taskID, &u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			rows.Close()
			return err
		}
		if t := byID[taskID]; t != nil {
			t.Assignees = append(t.Assignees, u)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, task_id, file_name, size, created_at
		FROM attachments
		WHERE task_id = ANY($1)
		ORDER BY created_at, id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.FileName, &a.Size, &a.CreatedAt); err != nil {
			return err
		}
		if t := byID[a.TaskID]; t != nil {
			t.Attachments = append(t.Attachments, a)
		}
	}
	return rows.Err()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503":
			return ErrorNotFound
		}
	}
	return err
}
