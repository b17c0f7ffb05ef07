package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreynolds89/tv-sentiment-relay/internal/api"
	"github.com/dreynolds89/tv-sentiment-relay/internal/config"
	"github.com/dreynolds89/tv-sentiment-relay/internal/decision"
	"github.com/dreynolds89/tv-sentiment-relay/internal/kafka"
	"github.com/dreynolds89/tv-sentiment-relay/internal/redis"
	"github.com/dreynolds89/tv-sentiment-relay/internal/sentiment"
	"github.com/dreynolds89/tv-sentiment-relay/internal/threecommas"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.Webhook.Token == "" {
		log.Println("Warning: TV_WEBHOOK_TOKEN not set; webhook authentication is disabled")
	}
	if cfg.ThreeCommas.DryRun {
		log.Println("DRY_RUN enabled; deals will be simulated")
	}

	// Connect to Redis (optional sentiment cache)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = redis.New(cfg.Redis, cfg.Sentiment.CacheTTL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v (continuing without cache)", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Connected to Redis cache")
		}
	}

	// Sentiment scorer backed by the remote FinBERT endpoint
	classifier := sentiment.NewHTTPClassifier(cfg.Sentiment)
	var cache sentiment.ScoreCache
	if redisClient != nil {
		cache = redisClient
	}
	scorer := sentiment.NewScorer(classifier, cache)
	log.Printf("Sentiment classifier endpoint: %s", cfg.Sentiment.APIURL)

	// 3Commas dispatcher
	deals := threecommas.NewClient(cfg.ThreeCommas)

	// Kafka producer for decision events (optional)
	var publisher api.DecisionPublisher
	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DecisionsTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("Kafka producer initialized (brokers: %v, topic: %s)",
			cfg.Kafka.Brokers, cfg.Kafka.DecisionsTopic)
	}

	thresholds := decision.Thresholds{
		Buy:        cfg.Sentiment.BuyThreshold,
		Sell:       cfg.Sentiment.SellThreshold,
		Confidence: cfg.Sentiment.ConfidenceThreshold,
	}

	// Set up HTTP handler and routes
	handler := api.NewHandler(scorer, deals, publisher, redisClient, cfg.Webhook, cfg.ThreeCommas, thresholds)
	router := api.SetupRoutes(handler)

	// Create HTTP server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout: 15 * time.Second,
		// Classifier (30s) plus trading call (20s) can legitimately take
		// most of a minute.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
