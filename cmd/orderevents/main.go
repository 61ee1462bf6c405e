package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Afthercaf/Web-Tecnoshop/internal/config"
	kafkax "github.com/Afthercaf/Web-Tecnoshop/internal/kafka"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/redisx"
	"github.com/Afthercaf/Web-Tecnoshop/internal/statuscache"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &statuscache.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-orderevents",
	}

	group := getenv("ORDEREVENTS_GROUP", "orderevents-svc")
	workers := mustAtoi(os.Getenv("ORDEREVENTS_WORKERS"), "4")

	// One consumer per topic the cache cares about.
	for _, topic := range []string{orders.TopicOrderPlaced, orders.TopicOrderStatus} {
		cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topic, workers)
		go func(topic string) {
			log.Printf("consumer started: group=%s topic=%s workers=%d", group, topic, workers)
			if err := cons.Start(ctx, svc.HandleEvent); err != nil {
				log.Printf("consumer %s exit: %v", topic, err)
				cancel()
			}
		}(topic)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Println("shutting down consumers...")
		cancel()
	case <-ctx.Done():
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
