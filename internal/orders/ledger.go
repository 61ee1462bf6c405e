package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
	"github.com/google/uuid"
)

// Catalog is the slice of the product catalog the ledger consumes.
// DecrementStock must be atomic: it takes qty off a product's stock only
// if that much is available, and returns *catalog.InsufficientStockError
// otherwise.
type Catalog interface {
	Product(ctx context.Context, id string) (*catalog.Product, error)
	ProductInStore(ctx context.Context, id, storeID string) (*catalog.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	RestoreStock(ctx context.Context, id string, qty int) error
}

type UserDirectory interface {
	ByID(ctx context.Context, id string) (*users.User, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *Order) error
	ByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	Find(ctx context.Context, f Filter) ([]Order, error)
}

type Filter struct {
	UserID  string
	StoreID string
}

// Ledger owns order placement and amendment. The caller resolves the
// requester's identity first and passes the user id in explicitly; the
// ledger never reads ambient session state.
type Ledger struct {
	Catalog Catalog
	Users   UserDirectory
	Orders  OrderStore
}

type LineInput struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type PlaceRequest struct {
	Lines           []LineInput   `json:"lines"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address,omitempty"`
	Comments        string        `json:"comments,omitempty"`
}

// Place validates the request against current stock, reserves every line,
// and persists a pending order priced at the catalog's current unit
// prices. Reservation is two-phase: each line is taken with an atomic
// conditional decrement, in ascending product-id order, and every line
// already taken is restored if a later line or the order insert fails.
// A rejected placement leaves all stock exactly as it found it.
func (l *Ledger) Place(ctx context.Context, userID string, req PlaceRequest) (*Order, error) {
	user, err := l.Users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, ErrNoLines
	}
	for _, in := range req.Lines {
		if in.Qty < 1 {
			return nil, fmt.Errorf("product %s: %w", in.ProductID, ErrBadQuantity)
		}
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%q: %w", req.PaymentMethod, ErrBadPaymentMethod)
	}
	addr := req.ShippingAddress
	if addr == "" {
		addr = user.Address
	}
	if addr == "" {
		return nil, ErrAddressRequired
	}

	// Reserve in ascending product-id order so concurrent multi-line
	// placements touching the same products cannot deadlock a locking
	// catalog implementation.
	idx := make([]int, len(req.Lines))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return req.Lines[idx[a]].ProductID < req.Lines[idx[b]].ProductID
	})

	type reserved struct {
		productID string
		qty       int
	}
	var taken []reserved
	release := func() {
		for i := len(taken) - 1; i >= 0; i-- {
			if err := l.Catalog.RestoreStock(ctx, taken[i].productID, taken[i].qty); err != nil {
				log.Printf("restore stock %s: %v", taken[i].productID, err)
			}
		}
	}

	lines := make([]OrderLine, len(req.Lines))
	for _, i := range idx {
		in := req.Lines[i]
		p, err := l.Catalog.Product(ctx, in.ProductID)
		if err != nil {
			release()
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("product %s: %w", in.ProductID, err)
			}
			return nil, err
		}
		if err := l.Catalog.DecrementStock(ctx, in.ProductID, in.Qty); err != nil {
			release()
			return nil, err
		}
		taken = append(taken, reserved{in.ProductID, in.Qty})
		lines[i] = OrderLine{
			ProductID:      p.ID,
			StoreID:        p.StoreID,
			Qty:            in.Qty,
			UnitPriceCents: p.PriceCents,
			SubtotalCents:  p.PriceCents * in.Qty,
		}
	}

	total := 0
	for _, ln := range lines {
		total += ln.SubtotalCents
	}

	now := time.Now().UTC()
	o := &Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Lines:           lines,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: addr,
		Comments:        req.Comments,
		TotalCents:      total,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := l.Orders.Create(ctx, o); err != nil {
		release()
		return nil, err
	}
	return o, nil
}

type AmendLine struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Qty       int    `json:"qty"`
}

type AmendRequest struct {
	Lines           []AmendLine   `json:"lines"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
	ShippingAddress string        `json:"shipping_address,omitempty"`
	Comments        string        `json:"comments,omitempty"`
}

// Amend replaces an order's line set wholesale and recomputes its total
// at current catalog prices. Only the owning user may amend; anyone else
// sees ErrOrderNotFound. The new lines are validated against stock but
// not reserved, and stock consumed by the superseded lines is not
// restored.
func (l *Ledger) Amend(ctx context.Context, userID, orderID string, req AmendRequest) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, ErrNoLines
	}

	o, err := l.Orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	lines := make([]OrderLine, 0, len(req.Lines))
	total := 0
	for _, in := range req.Lines {
		if in.Qty < 1 {
			return nil, fmt.Errorf("product %s: %w", in.ProductID, ErrBadQuantity)
		}
		p, err := l.Catalog.ProductInStore(ctx, in.ProductID, in.StoreID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("product %s in store %s: %w", in.ProductID, in.StoreID, err)
			}
			return nil, err
		}
		if p.Stock < in.Qty {
			return nil, &catalog.InsufficientStockError{
				ProductID: p.ID, Name: p.Name, Requested: in.Qty, Available: p.Stock,
			}
		}
		sub := p.PriceCents * in.Qty
		total += sub
		lines = append(lines, OrderLine{
			ProductID:      p.ID,
			StoreID:        p.StoreID,
			Qty:            in.Qty,
			UnitPriceCents: p.PriceCents,
			SubtotalCents:  sub,
		})
	}

	o.Lines = lines
	o.TotalCents = total
	if req.PaymentMethod != "" {
		if !req.PaymentMethod.Valid() {
			return nil, fmt.Errorf("%q: %w", req.PaymentMethod, ErrBadPaymentMethod)
		}
		o.PaymentMethod = req.PaymentMethod
	}
	if req.ShippingAddress != "" {
		o.ShippingAddress = req.ShippingAddress
	}
	if req.Comments != "" {
		o.Comments = req.Comments
	}
	o.UpdatedAt = time.Now().UTC()

	if err := l.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SetStatus moves an order along the status transition map. Used by the
// admin surface; buyer identity is not consulted here.
func (l *Ledger) SetStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%q: %w", next, ErrBadTransition)
	}
	o, err := l.Orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%s -> %s: %w", o.Status, next, ErrBadTransition)
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	if err := l.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
