package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitamed/backend/internal/config"
	"github.com/vitamed/backend/internal/db"
	"github.com/vitamed/backend/internal/httpapi"
	"github.com/vitamed/backend/internal/httpapi/handlers"
	"github.com/vitamed/backend/internal/store/rabbitmq"
	"github.com/vitamed/backend/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rds.Ping(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("redis ping: %v", err)
	}
	pingCancel()

	// SMS delivery is simulated; a missing broker is not fatal
	var sms handlers.SMSPublisher
	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Printf("rabbit unavailable, sms jobs disabled: %v", err)
	} else {
		sms = pub
		defer pub.Close()
	}

	h, err := handlers.NewHandler(gdb, cfg, rds, sms)
	if err != nil {
		log.Fatalf("handler: %v", err)
	}
	router := httpapi.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout + 30*time.Second, // assistant calls block for seconds
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Printf("server exited")
}
