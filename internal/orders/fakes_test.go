package orders_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
)

// memCatalog implements orders.Catalog over a map. DecrementStock holds
// the lock across check and decrement, giving the same atomicity the
// conditional UPDATE gives in postgres.
type memCatalog struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
}

func newMemCatalog(ps ...*catalog.Product) *memCatalog {
	c := &memCatalog{products: map[string]*catalog.Product{}}
	for _, p := range ps {
		c.products[p.ID] = p
	}
	return c
}

func (c *memCatalog) Product(_ context.Context, id string) (*catalog.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *memCatalog) ProductInStore(_ context.Context, id, storeID string) (*catalog.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok || p.StoreID != storeID {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *memCatalog) DecrementStock(_ context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return catalog.ErrProductNotFound
	}
	if p.Stock < qty {
		return &catalog.InsufficientStockError{
			ProductID: id, Name: p.Name, Requested: qty, Available: p.Stock,
		}
	}
	p.Stock -= qty
	return nil
}

func (c *memCatalog) RestoreStock(_ context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return catalog.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (c *memCatalog) stock(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[id].Stock
}

type memUsers struct {
	byID map[string]*users.User
}

func newMemUsers(us ...*users.User) *memUsers {
	m := &memUsers{byID: map[string]*users.User{}}
	for _, u := range us {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) ByID(_ context.Context, id string) (*users.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type memOrders struct {
	mu        sync.Mutex
	byID      map[string]*orders.Order
	failNext  error
	createSeq []string
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[string]*orders.Order{}}
}

func (m *memOrders) Create(_ context.Context, o *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	cp := *o
	m.byID[o.ID] = &cp
	m.createSeq = append(m.createSeq, o.ID)
	return nil
}

func (m *memOrders) ByID(_ context.Context, id string) (*orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	cp := *o
	cp.Lines = append([]orders.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (m *memOrders) Update(_ context.Context, o *orders.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[o.ID]; !ok {
		return orders.ErrOrderNotFound
	}
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memOrders) Find(_ context.Context, f orders.Filter) ([]orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []orders.Order{}
	for _, o := range m.byID {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.StoreID != "" && !touchesStore(o, f.StoreID) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func touchesStore(o *orders.Order, storeID string) bool {
	for _, ln := range o.Lines {
		if ln.StoreID == storeID {
			return true
		}
	}
	return false
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

var errStorageDown = errors.New("storage down")
