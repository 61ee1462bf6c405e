package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Afthercaf/Web-Tecnoshop/internal/auth"
	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/Afthercaf/Web-Tecnoshop/internal/config"
	"github.com/Afthercaf/Web-Tecnoshop/internal/httpx"
	kafkax "github.com/Afthercaf/Web-Tecnoshop/internal/kafka"
	"github.com/Afthercaf/Web-Tecnoshop/internal/orders"
	"github.com/Afthercaf/Web-Tecnoshop/internal/postgres"
	"github.com/Afthercaf/Web-Tecnoshop/internal/redisx"
	"github.com/Afthercaf/Web-Tecnoshop/internal/stores"
	"github.com/Afthercaf/Web-Tecnoshop/internal/users"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pAmended := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderAmended, 1024)
	pAmended.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatus, 1024)
	pStatus.Start(ctx)

	// Repos & services
	tokens := auth.NewManager(cfg.TokenSecret, cfg.TokenTTL)
	userRepo := &users.Repo{DB: db}
	storeRepo := &stores.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	ledger := &orders.Ledger{Catalog: catalogRepo, Users: userRepo, Orders: orderRepo}
	query := &orders.Query{Orders: orderRepo, Catalog: catalogRepo, Users: userRepo}
	cache := &redisx.StatusCache{R: rdb}

	router := httpx.NewRouter()
	(&httpx.AuthHandler{Users: userRepo, Stores: storeRepo, Auth: tokens}).Register(router)
	(&httpx.ProductsHandler{Catalog: catalogRepo, Stores: storeRepo, Auth: tokens}).Register(router)
	(&httpx.OrdersHandler{
		Ledger:  ledger,
		Query:   query,
		Placed:  pPlaced,
		Amended: pAmended,
		Cache:   cache,
		Status:  orderRepo,
		Auth:    tokens,
		Service: cfg.ServiceName,
	}).Register(router)
	(&httpx.AdminHandler{
		Ledger:  ledger,
		Orders:  orderRepo,
		Changed: pStatus,
		Cache:   cache,
		Service: cfg.ServiceName,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	for _, p := range []*kafkax.Producer{pPlaced, pAmended, pStatus} {
		p.Close()
	}
	cancel()
	for _, p := range []*kafkax.Producer{pPlaced, pAmended, pStatus} {
		p.WaitClosed()
	}
}
