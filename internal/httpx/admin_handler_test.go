package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/httpx"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (http.Handler, *fakeOrders, *fakePublisher, *fakeCache, *orders.Order) {
	t.Helper()
	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", StoreID: "s1", Name: "Laptop", PriceCents: 100, Stock: 5},
	}}
	us := &fakeUsers{byID: map[string]*users.User{
		"u1": {ID: "u1", Username: "ana", Email: "ana@example.com", Address: "Calle 1"},
	}}
	ords := &fakeOrders{byID: map[string]*orders.Order{}}
	ledger := &orders.Ledger{Catalog: cat, Users: us, Orders: ords}

	o, err := ledger.Place(context.Background(), "u1", orders.PlaceRequest{
		Lines:         []orders.LineInput{{ProductID: "p1", Qty: 1}},
		PaymentMethod: orders.PayCard,
	})
	require.NoError(t, err)

	changed := &fakePublisher{}
	cache := &fakeCache{m: map[string]string{}}
	router := httpx.NewRouter()
	(&httpx.AdminHandler{
		Ledger:  ledger,
		Orders:  ords,
		Changed: changed,
		Cache:   cache,
		Service: "order-api-test",
	}).Register(router)
	return router, ords, changed, cache, o
}

func TestAdminListsAllOrders(t *testing.T) {
	router, _, _, _, o := newAdminFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var all []orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, o.ID, all[0].ID)
}

func TestAdminUpdatesStatus(t *testing.T) {
	router, ords, changed, cache, o := newAdminFixture(t)

	patch := func(id, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"status": status})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
			"/admin/orders/"+id+"/status", bytes.NewReader(body)))
		return rec
	}

	rec := patch(o.ID, "paid")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	saved, err := ords.ByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, saved.Status)
	assert.Equal(t, "paid", cache.m[o.ID])
	require.Len(t, changed.events, 1)
	assert.Equal(t, orders.EventOrderStatusChanged, changed.events[0].EventType)

	// paid -> pending is not a legal transition, and neither is nonsense
	assert.Equal(t, http.StatusBadRequest, patch(o.ID, "pending").Code)
	assert.Equal(t, http.StatusBadRequest, patch(o.ID, "misplaced").Code)
	assert.Equal(t, http.StatusNotFound, patch("nope", "paid").Code)
}
