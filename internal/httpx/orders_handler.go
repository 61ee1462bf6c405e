package httpx

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Afthercaf/Web-Tecnoshop/internal/auth"
	kafkax "github.com/Afthercaf/Web-Tecnoshop/internal/kafka"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher is the slice of the kafka producer the handlers use.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type statusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}

type statusReader interface {
	StatusOf(ctx context.Context, id string) (orders.Status, error)
}

// OrdersHandler is the buyer-facing order surface: place, amend, list,
// and the cached status read.
type OrdersHandler struct {
	Ledger  *orders.Ledger
	Query   *orders.Query
	Placed  Publisher
	Amended Publisher
	Cache   statusCache
	Status  statusReader
	Auth    *auth.Manager
	Service string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Put("/orders/{id}", h.amendOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}/status", h.orderStatus)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Auth.VerifyUser(cookieValue(r, userCookie))
	if err != nil {
		writeError(w, err)
		return
	}

	var req orders.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	o, err := h.Ledger.Place(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Cache.SetStatus(r.Context(), o.ID, string(o.Status)); err != nil {
		log.Printf("status cache: %v", err)
	}
	h.publish(h.Placed, orders.EventOrderPlaced, r.Header.Get("X-Request-Id"), o.ID,
		orders.OrderPlacedPayload{
			OrderID:    o.ID,
			UserID:     o.UserID,
			Lines:      orders.LinePayloads(o.Lines),
			TotalCents: o.TotalCents,
			Status:     string(o.Status),
		})

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) amendOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Auth.VerifyUser(cookieValue(r, userCookie))
	if err != nil {
		writeError(w, err)
		return
	}

	var req orders.AmendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	o, err := h.Ledger.Amend(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.publish(h.Amended, orders.EventOrderAmended, r.Header.Get("X-Request-Id"), o.ID,
		orders.OrderAmendedPayload{
			OrderID:    o.ID,
			Lines:      orders.LinePayloads(o.Lines),
			TotalCents: o.TotalCents,
		})

	writeJSON(w, http.StatusOK, o)
}

// listOrders resolves whichever identity cookies are present. A cookie
// that is present but does not verify is an authentication failure; two
// absent cookies are a bad request.
func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	var userID, storeID string

	if tok := cookieValue(r, userCookie); tok != "" {
		id, err := h.Auth.VerifyUser(tok)
		if err != nil {
			writeError(w, err)
			return
		}
		userID = id
	}
	if tok := cookieValue(r, storeCookie); tok != "" {
		id, err := h.Auth.VerifyStore(tok)
		if err != nil {
			writeError(w, err)
			return
		}
		storeID = id
	}

	views, err := h.Query.OrdersFor(r.Context(), userID, storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *OrdersHandler) orderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if s, err := h.Cache.GetStatus(r.Context(), orderID); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	status, err := h.Status.StatusOf(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Cache.SetStatus(r.Context(), orderID, string(status)); err != nil {
		log.Printf("status cache: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *OrdersHandler) publish(p Publisher, eventType, traceID, orderID string, payload any) {
	if p == nil {
		return
	}
	ev := orders.NewEnvelope(eventType, h.Service, traceID, orderID, payload)
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
