// Package statuscache keeps the redis order-status cache in step with
// the order event stream, so status reads rarely hit postgres.
package statuscache

import (
	"context"
	"encoding/json"
	"fmt"

	kafkax "github.com/Afthercaf/Web-Tecnoshop/internal/kafka"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleEvent is wired as the consumer handler for the placed and
// status topics. Events are deduplicated by event id before the cache
// write, so redelivery is harmless.
func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	cache := &redisx.StatusCache{R: s.Redis}
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		return cache.SetStatus(ctx, p.OrderID, p.Status)
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusPayload](env.Payload)
		if err != nil {
			return err
		}
		return cache.SetStatus(ctx, p.OrderID, p.Status)
	}
	return nil // other event types are not this worker's business
}
