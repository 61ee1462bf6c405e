package kafka

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// Handler must return nil only when the message was processed and the
// offset may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	r       *kafka.Reader
	workers int
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{r: r, workers: workers}
}

// Start reads messages and fans them out to a bounded worker pool.
// Handler errors are logged with a light backoff; the message is not
// committed so the group will redeliver it.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	jobs := make(chan kafka.Message, 1024)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < c.workers; i++ {
		g.Go(func() error {
			for m := range jobs {
				if err := h(ctx, m); err != nil {
					log.Printf("worker error: %v", err)
					time.Sleep(200 * time.Millisecond)
					continue
				}
				if err := c.r.CommitMessages(ctx, m); err != nil {
					log.Printf("commit: %v", err)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for {
			m, err := c.r.ReadMessage(ctx)
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					return err
				}
			}
			select {
			case jobs <- m:
			case <-ctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
