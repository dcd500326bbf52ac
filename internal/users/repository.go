package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository persists user accounts.
type Repository interface {
	Get(ctx context.Context, id int64) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context, req ListUsersRequest) ([]User, int, error)
	Create(ctx context.Context, user User) (*User, error)
	Update(ctx context.Context, user User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository constructs a Postgres-backed repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const userColumns = `id, name, username, email, phone, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func mapWriteError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		switch db.ConstraintName(err) {
		case "users_email_key":
			return fmt.Errorf("%w: email already registered", shared.ErrConflict)
		case "users_username_key":
			return fmt.Errorf("%w: username already taken", shared.ErrConflict)
		}
		return fmt.Errorf("%w: user already exists", shared.ErrConflict)
	}
	return fmt.Errorf("%s user: %w", op, err)
}

func (r *repository) Get(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByLogin matches login against email or username.
func (r *repository) FindByLogin(ctx context.Context, login string) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) OR username = $1 LIMIT 1`, login))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("user %q: %w", login, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *repository) List(ctx context.Context, req ListUsersRequest) ([]User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		req.Limit, req.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, u User) (*User, error) {
	created, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (name, username, email, phone, password_hash) VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Name, u.Username, u.Email, u.Phone, u.PasswordHash))
	if err != nil {
		return nil, mapWriteError("insert", err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, u User) (*User, error) {
	updated, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET name = $2, username = $3, email = $4, phone = $5, password_hash = $6, updated_at = now()
		WHERE id = $1 RETURNING `+userColumns,
		u.ID, u.Name, u.Username, u.Email, u.Phone, u.PasswordHash))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("user %d: %w", u.ID, shared.ErrNotFound)
		}
		return nil, mapWriteError("update", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
	}
	return nil
}
