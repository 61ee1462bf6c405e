package stores

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const storeCols = `id, owner_id, name, email, password_hash, logo, phone, address, created_at`

func scanStore(row pgx.Row) (*Store, error) {
	var s Store
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Email, &s.PasswordHash,
		&s.Logo, &s.Phone, &s.Address, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, s *Store) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	var exists bool
	if err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM stores WHERE email=$1)`, s.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO stores(id, owner_id, name, email, password_hash, logo, phone, address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		s.ID, s.OwnerID, s.Name, s.Email, s.PasswordHash, s.Logo, s.Phone, s.Address)
	return row.Scan(&s.CreatedAt)
}

func (r *Repo) ByID(ctx context.Context, id string) (*Store, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+storeCols+` FROM stores WHERE id=$1`, id)
	return scanStore(row)
}

func (r *Repo) ByEmail(ctx context.Context, email string) (*Store, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+storeCols+` FROM stores WHERE email=$1`, email)
	return scanStore(row)
}

func (r *Repo) List(ctx context.Context) ([]Store, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+storeCols+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Store{}
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Email, &s.PasswordHash,
			&s.Logo, &s.Phone, &s.Address, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
