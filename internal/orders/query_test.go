package orders_test

import (
	"context"
	"testing"

	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRequiresAnIdentity(t *testing.T) {
	q := &orders.Query{Orders: newMemOrders(), Catalog: newMemCatalog(), Users: newMemUsers()}

	_, err := q.OrdersFor(context.Background(), "", "")
	assert.ErrorIs(t, err, orders.ErrNoIdentity)
}

func TestQueryZeroOrdersIsEmptyNotError(t *testing.T) {
	q := &orders.Query{Orders: newMemOrders(), Catalog: newMemCatalog(), Users: newMemUsers(buyer())}

	views, err := q.OrdersFor(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}

func TestQueryJoinsDisplayData(t *testing.T) {
	cat := newMemCatalog(
		&catalog.Product{ID: "p1", StoreID: "s1", Name: "Laptop", PriceCents: 100, Stock: 10,
			Images: []string{"/img/laptop.png"}},
		&catalog.Product{ID: "p2", StoreID: "s1", Name: "Cable", PriceCents: 30, Stock: 10},
	)
	ordStore := newMemOrders()
	l := testLedger(cat, newMemUsers(buyer()), ordStore)
	o, err := l.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines: []orders.LineInput{
			{ProductID: "p1", Qty: 1},
			{ProductID: "p2", Qty: 2},
		},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)

	q := &orders.Query{Orders: ordStore, Catalog: cat, Users: newMemUsers(buyer())}
	views, err := q.OrdersFor(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, o.ID, v.ID)
	assert.Equal(t, "ana", v.User.Username)
	assert.Equal(t, "ana@example.com", v.User.Email)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "Laptop", v.Lines[0].Product.Name)
	assert.Equal(t, []string{"/img/laptop.png"}, v.Lines[0].Product.Images)
	// a product without images gets the placeholder set
	assert.Equal(t, catalog.PlaceholderImages, v.Lines[1].Product.Images)
}

func TestQueryMissingProductFallsBackPerLine(t *testing.T) {
	cat := newMemCatalog(&catalog.Product{ID: "p1", StoreID: "s1", Name: "Laptop", PriceCents: 100, Stock: 10})
	ordStore := newMemOrders()
	l := testLedger(cat, newMemUsers(buyer()), ordStore)
	_, err := l.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines:         []orders.LineInput{{ProductID: "p1", Qty: 1}},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)

	// product vanishes from the catalog after placement
	delete(cat.products, "p1")

	q := &orders.Query{Orders: ordStore, Catalog: cat, Users: newMemUsers(buyer())}
	views, err := q.OrdersFor(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Lines, 1)
	assert.Equal(t, catalog.PlaceholderImages, views[0].Lines[0].Product.Images)
	assert.Equal(t, "s1", views[0].Lines[0].Product.StoreID)
}

func TestQueryMissingOwnerFailsWhole(t *testing.T) {
	cat := newMemCatalog(&catalog.Product{ID: "p1", StoreID: "s1", Name: "Laptop", PriceCents: 100, Stock: 10})
	ordStore := newMemOrders()
	l := testLedger(cat, newMemUsers(buyer()), ordStore)
	_, err := l.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines:         []orders.LineInput{{ProductID: "p1", Qty: 1}},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)

	// owner record gone: integrity failure, not a not-found for the caller
	q := &orders.Query{Orders: ordStore, Catalog: cat, Users: newMemUsers()}
	_, err = q.OrdersFor(context.Background(), "u1", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, users.ErrUserNotFound)
}

func TestQueryByStore(t *testing.T) {
	cat := newMemCatalog(
		&catalog.Product{ID: "p1", StoreID: "s1", Name: "Laptop", PriceCents: 100, Stock: 10},
		&catalog.Product{ID: "p2", StoreID: "s2", Name: "Cable", PriceCents: 30, Stock: 10},
	)
	ordStore := newMemOrders()
	l := testLedger(cat, newMemUsers(buyer()), ordStore)

	_, err := l.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines:         []orders.LineInput{{ProductID: "p1", Qty: 1}},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)
	_, err = l.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines:         []orders.LineInput{{ProductID: "p2", Qty: 1}},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)

	q := &orders.Query{Orders: ordStore, Catalog: cat, Users: newMemUsers(buyer())}

	views, err := q.OrdersFor(context.Background(), "", "s2")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "p2", views[0].Lines[0].ProductID)

	views, err = q.OrdersFor(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
