package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkonsky/taskboard-api/internal/model"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.content, c.task_id, c.created_at, c.updated_at,
	       u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID, &c.Content, &c.TaskID, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Email, &c.Author.FirstName, &c.Author.LastName,
		&c.Author.CreatedAt, &c.Author.UpdatedAt,
	)
	return c, err
}

func (r *CommentRepo) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, content, task_id, author_id)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id
	`, c.Content, c.TaskID, c.Author.ID).Scan(&c.ID)
	if err != nil {
		return c, mapError(err)
	}
	return r.Get(ctx, c.ID)
}

func (r *CommentRepo) Get(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, commentSelect+" WHERE c.id = $1", id))
	if err == pgx.ErrNoRows {
		return c, ErrorNotFound
	}
	return c, err
}

func (r *CommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+" WHERE c.task_id = $1 ORDER BY c.created_at, c.id", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// UpdateContent only ever touches the content; the task association and
// author are immutable.
func (r *CommentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (model.Comment, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $2, updated_at = now() WHERE id = $1
	`, id, content)
	if err != nil {
		return model.Comment{}, err
	}
	if cmd.RowsAffected() == 0 {
		return model.Comment{}, ErrorNotFound
	}
	return r.Get(ctx, id)
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
