package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, username, email, password_hash, address, role, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Address, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	var exists bool
	if err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, u.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO users(id, username, email, password_hash, address, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Address, u.Role)
	return row.Scan(&u.CreatedAt)
}

func (r *Repo) ByID(ctx context.Context, id string) (*User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *Repo) ByEmail(ctx context.Context, email string) (*User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

// SetRole flips a user's role, e.g. to vendor when they register a store.
func (r *Repo) SetRole(ctx context.Context, id, role string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET role=$2 WHERE id=$1`, id, role)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
