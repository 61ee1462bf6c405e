package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists orders in postgres: one row per order, one row per line
// in order_items, line order preserved via position.
type Repo struct{ DB *pgxpool.Pool }

var _ OrderStore = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, status, payment_method, shipping_address, comments, total_cents, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.UserID, o.Status, o.PaymentMethod, o.ShippingAddress, o.Comments,
		o.TotalCents, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}
	if err := insertLines(ctx, tx, o.ID, o.Lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, orderID string, lines []OrderLine) error {
	for i, ln := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, position, product_id, store_id, qty, unit_price_cents, subtotal_cents)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			orderID, i, ln.ProductID, ln.StoreID, ln.Qty, ln.UnitPriceCents, ln.SubtotalCents)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, status, payment_method, shipping_address, comments, total_cents, created_at, updated_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.ShippingAddress,
			&o.Comments, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) loadLines(ctx context.Context, o *Order) error {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, store_id, qty, unit_price_cents, subtotal_cents
		FROM order_items WHERE order_id=$1 ORDER BY position`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Lines = o.Lines[:0]
	for rows.Next() {
		var ln OrderLine
		if err := rows.Scan(&ln.ProductID, &ln.StoreID, &ln.Qty, &ln.UnitPriceCents, &ln.SubtotalCents); err != nil {
			return err
		}
		o.Lines = append(o.Lines, ln)
	}
	return rows.Err()
}

// Update rewrites the order row and replaces its line set.
func (r *Repo) Update(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE orders SET status=$2, payment_method=$3, shipping_address=$4, comments=$5, total_cents=$6, updated_at=$7
		WHERE id=$1`,
		o.ID, o.Status, o.PaymentMethod, o.ShippingAddress, o.Comments, o.TotalCents, o.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, o.ID, o.Lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Find lists orders matching the filter, newest first. An empty filter
// returns everything (the admin listing).
func (r *Repo) Find(ctx context.Context, f Filter) ([]Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, o.payment_method, o.shipping_address, o.comments, o.total_cents, o.created_at, o.updated_at
		FROM orders o`
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("o.user_id=$%d", len(args)))
	}
	if f.StoreID != "" {
		args = append(args, f.StoreID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id=o.id AND oi.store_id=$%d)", len(args)))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	rows, err := r.DB.Query(ctx, query+` ORDER BY o.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.ShippingAddress,
			&o.Comments, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadLines(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// StatusOf reads just the status column; the cached read path falls back
// to this.
func (r *Repo) StatusOf(ctx context.Context, id string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}
