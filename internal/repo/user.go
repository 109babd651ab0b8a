package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkonsky/taskboard-api/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userSelect = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash,
	       u.created_at, u.updated_at,
	       coalesce(array_remove(array_agg(r.name), NULL), '{}')
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

const userGroupBy = " GROUP BY u.id"

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.Roles,
	)
	return u, err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE u.id = $1"+userGroupBy, id))
	if err == pgx.ErrNoRows {
		return u, ErrorNotFound
	}
	return u, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE u.email = $1"+userGroupBy, email))
	if err == pgx.ErrNoRows {
		return u, ErrorNotFound
	}
	return u, err
}

// GetByIDs resolves assignee ids. Unknown ids are silently dropped, so
// the result may be shorter than the input.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, userSelect+" WHERE u.id = ANY($1)"+userGroupBy, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create stores a new user and grants the default role.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return u, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password_hash)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.FirstName, u.LastName, u.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, mapError(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = 'user'
	`, u.ID)
	if err != nil {
		return u, err
	}

	if err := tx.Commit(ctx); err != nil {
		return u, err
	}
	u.Roles = []string{"user"}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, userSelect+userGroupBy+" ORDER BY u.created_at, u.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
