package orders

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderAmended       = "OrderAmended"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload in a v1 envelope. Panics on a payload that
// cannot marshal, which would be a programming error.
func NewEnvelope(eventType, producer, traceID, orderID string, payload any) Envelope {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload:       raw,
	}
}

type LinePayload struct {
	ProductID      string `json:"product_id"`
	StoreID        string `json:"store_id"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unit_price_cents"`
	SubtotalCents  int    `json:"subtotal_cents"`
}

type OrderPlacedPayload struct {
	OrderID    string        `json:"order_id"`
	UserID     string        `json:"user_id"`
	Lines      []LinePayload `json:"lines"`
	TotalCents int           `json:"total_cents"`
	Status     string        `json:"status"`
}

type OrderAmendedPayload struct {
	OrderID    string        `json:"order_id"`
	Lines      []LinePayload `json:"lines"`
	TotalCents int           `json:"total_cents"`
}

type OrderStatusPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func LinePayloads(lines []OrderLine) []LinePayload {
	out := make([]LinePayload, 0, len(lines))
	for _, ln := range lines {
		out = append(out, LinePayload{
			ProductID:      ln.ProductID,
			StoreID:        ln.StoreID,
			Qty:            ln.Qty,
			UnitPriceCents: ln.UnitPriceCents,
			SubtotalCents:  ln.SubtotalCents,
		})
	}
	return out
}
