package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, store_id, name, description, price_cents, stock, images, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents,
		&p.Stock, &p.Images, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Product(ctx context.Context, id string) (*Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

// ProductInStore resolves a product only if it belongs to the given
// store; a mismatched pairing reads the same as a missing product.
func (r *Repo) ProductInStore(ctx context.Context, id, storeID string) (*Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1 AND store_id=$2`, id, storeID)
	return scanProduct(row)
}

// DecrementStock takes qty units off a product's stock, but only if that
// much is available. The guard in the UPDATE makes check-and-decrement a
// single atomic statement, so concurrent placements cannot drive stock
// negative. On refusal the current stock is re-read to report what was
// actually available.
func (r *Repo) DecrementStock(ctx context.Context, id string, qty int) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id=$1 AND stock >= $2`, id, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	p, err := r.Product(ctx, id)
	if err != nil {
		return err
	}
	return &InsufficientStockError{ProductID: id, Name: p.Name, Requested: qty, Available: p.Stock}
}

// RestoreStock gives back units taken by a reservation that did not end
// in a committed order.
func (r *Repo) RestoreStock(ctx context.Context, id string, qty int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id=$1`, id, qty)
	return err
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products(id, store_id, name, description, price_cents, stock, images)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		p.ID, p.StoreID, p.Name, p.Description, p.PriceCents, p.Stock, p.Images)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites a product's mutable fields. Scoped by store so a
// vendor cannot touch another store's product.
func (r *Repo) Update(ctx context.Context, p *Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$3, description=$4, price_cents=$5, stock=$6, images=$7, updated_at=now()
		WHERE id=$1 AND store_id=$2`,
		p.ID, p.StoreID, p.Name, p.Description, p.PriceCents, p.Stock, p.Images)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id, storeID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1 AND store_id=$2`, id, storeID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents,
			&p.Stock, &p.Images, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `SELECT `+productCols+` FROM products ORDER BY name`)
}

func (r *Repo) ListByStore(ctx context.Context, storeID string) ([]Product, error) {
	return r.list(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE store_id=$1 ORDER BY name`, productCols), storeID)
}
