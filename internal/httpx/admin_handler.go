package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	kafkax "github.com/Afthercaf/Web-Tecnoshop/internal/kafka"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
)

// AdminHandler backs the back-office order table: list everything, move
// orders along the status transitions.
type AdminHandler struct {
	Ledger  *orders.Ledger
	Orders  orders.OrderStore
	Changed Publisher
	Cache   statusCache
	Service string
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Get("/admin/orders", h.listAll)
	r.Patch("/admin/orders/{id}/status", h.updateStatus)
}

func (h *AdminHandler) listAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.Orders.Find(r.Context(), orders.Filter{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

type statusReq struct {
	Status orders.Status `json:"status"`
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	o, err := h.Ledger.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Cache.SetStatus(r.Context(), o.ID, string(o.Status)); err != nil {
		log.Printf("status cache: %v", err)
	}
	if h.Changed != nil {
		ev := orders.NewEnvelope(orders.EventOrderStatusChanged, h.Service,
			r.Header.Get("X-Request-Id"), o.ID,
			orders.OrderStatusPayload{OrderID: o.ID, Status: string(o.Status)})
		h.Changed.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusOK, o)
}
