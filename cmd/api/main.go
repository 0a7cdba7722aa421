package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/ceylonstyle/salon-backend/internal/config"
	dbpkg "github.com/ceylonstyle/salon-backend/internal/db"
	infraRepo "github.com/ceylonstyle/salon-backend/internal/infra/repository"
	"github.com/ceylonstyle/salon-backend/internal/notify"
	"github.com/ceylonstyle/salon-backend/internal/payments"
	"github.com/ceylonstyle/salon-backend/internal/routes"
	"github.com/ceylonstyle/salon-backend/internal/scheduler"
	"github.com/ceylonstyle/salon-backend/internal/storage"
	tryonproc "github.com/ceylonstyle/salon-backend/internal/tryon"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	notifier := notify.New(db, cfg)

	var gateway payments.Gateway = payments.DisabledGateway{}
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Fatalf("failed to init payment gateway: %v", err)
		}
		gateway = mp
	} else {
		log.Println("no MP_ACCESS_TOKEN set, card payments disabled")
	}

	tryonRepo := infraRepo.NewTryOnGormRepository(db)
	generator := tryonproc.NewStyleBlendGenerator(store)
	processor := tryonproc.NewProcessor(tryonRepo, generator, cfg.TryOnWorkers, cfg.TryOnQueueSize)
	processor.Start()

	sched := scheduler.New(db, notifier)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:       db,
		Redis:    rdb,
		Storage:  store,
		Notifier: notifier,
		Gateway:  gateway,
		TryOns:   processor,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
