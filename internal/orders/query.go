package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
)

type UserDisplay struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProductDisplay struct {
	Name       string   `json:"name,omitempty"`
	Images     []string `json:"images"`
	PriceCents int      `json:"price_cents,omitempty"`
	StoreID    string   `json:"store_id"`
}

type LineView struct {
	OrderLine
	Product ProductDisplay `json:"product"`
}

type OrderView struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Lines           []LineView    `json:"lines"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address"`
	Comments        string        `json:"comments,omitempty"`
	TotalCents      int           `json:"total_cents"`
	Status          Status        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	User            UserDisplay   `json:"user"`
}

// Query is the read side: orders scoped to a buyer and/or a store, with
// display data joined in for rendering.
type Query struct {
	Orders  OrderStore
	Catalog Catalog
	Users   UserDirectory
}

// OrdersFor lists orders matching the given identities. At least one of
// userID/storeID must be set; with both, orders of that user containing
// lines of that store. The owning user join is mandatory and a missing
// user record fails the whole query; the per-line product join is
// best-effort, falling back to ids plus placeholder images.
func (q *Query) OrdersFor(ctx context.Context, userID, storeID string) ([]OrderView, error) {
	if userID == "" && storeID == "" {
		return nil, ErrNoIdentity
	}

	found, err := q.Orders.Find(ctx, Filter{UserID: userID, StoreID: storeID})
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(found))
	for _, o := range found {
		u, err := q.Users.ByID(ctx, o.UserID)
		if err != nil {
			// Deliberately not wrapped as a not-found: an order pointing
			// at a vanished user is a data integrity failure, not a bad
			// request.
			return nil, fmt.Errorf("order %s: owner %s unresolvable (%v)", o.ID, o.UserID, err)
		}

		lines := make([]LineView, 0, len(o.Lines))
		for _, ln := range o.Lines {
			lv := LineView{OrderLine: ln}
			if p, err := q.Catalog.Product(ctx, ln.ProductID); err == nil {
				lv.Product = ProductDisplay{
					Name:       p.Name,
					Images:     p.DisplayImages(),
					PriceCents: p.PriceCents,
					StoreID:    p.StoreID,
				}
			} else {
				lv.Product = ProductDisplay{Images: catalog.PlaceholderImages, StoreID: ln.StoreID}
			}
			lines = append(lines, lv)
		}

		views = append(views, OrderView{
			ID:              o.ID,
			UserID:          o.UserID,
			Lines:           lines,
			PaymentMethod:   o.PaymentMethod,
			ShippingAddress: o.ShippingAddress,
			Comments:        o.Comments,
			TotalCents:      o.TotalCents,
			Status:          o.Status,
			CreatedAt:       o.CreatedAt,
			User:            UserDisplay{Username: u.Username, Email: u.Email},
		})
	}
	return views, nil
}
