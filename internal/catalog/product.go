package catalog

import (
	"errors"
	"fmt"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError reports a requested quantity that exceeds what a
// product has available. Available is the stock observed when the
// decrement was refused.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

type Product struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaceholderImages is substituted when a product has no images of its
// own, so order listings always have something to render.
var PlaceholderImages = []string{"/placeholder.png"}

// DisplayImages returns the product's images or the placeholder set.
func (p *Product) DisplayImages() []string {
	if len(p.Images) == 0 {
		return PlaceholderImages
	}
	return p.Images
}
