// Command server runs the property search API: bucket resolution, listing
// CRUD, and the read endpoints over geo-buckets.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propsearch/internal/bucket/cache"
	buckethandler "propsearch/internal/bucket/handler"
	bucketservice "propsearch/internal/bucket/service"
	"propsearch/internal/bucket/store"
	"propsearch/internal/bucket/store/memory"
	bucketpg "propsearch/internal/bucket/store/postgres"
	"propsearch/internal/geo"
	"propsearch/internal/location/matcher"
	"propsearch/internal/location/normalizer"
	"propsearch/internal/platform/config"
	"propsearch/internal/platform/events"
	"propsearch/internal/platform/httpserver"
	"propsearch/internal/platform/logger"
	"propsearch/internal/platform/metrics"
	"propsearch/internal/platform/middleware"
	"propsearch/internal/platform/postgres"
	"propsearch/internal/platform/redis"
	"propsearch/internal/property"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var bucketStore store.Store
	var propertyStore property.Store
	if cfg.DatabaseURL != "" {
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		bucketStore = bucketpg.New(pool)
		propertyStore = property.NewPostgresStore(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		bucketStore = memory.New()
		propertyStore = property.NewMemoryStore()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := events.NewKafka(cfg.KafkaBrokers, log)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	m := metrics.New()

	engineOpts := []bucketservice.Option{
		bucketservice.WithMetrics(m),
		bucketservice.WithLogger(log),
	}
	if bucketCache := cache.NewBuckets(redisClient, cfg.Redis.CacheTTL, log); bucketCache != nil {
		engineOpts = append(engineOpts, bucketservice.WithCache(bucketCache))
	}
	if publisher != nil {
		engineOpts = append(engineOpts, bucketservice.WithEvents(publisher))
	}

	engine := bucketservice.New(
		geo.NewGrid(cfg.Grid.Resolution),
		normalizer.New(normalizer.Config{
			Stoplist:     cfg.Matching.Stoplist,
			Replacements: normalizer.DefaultConfig().Replacements,
		}),
		matcher.New(
			matcher.WithEditSimilarityThreshold(cfg.Matching.EditSimilarityThreshold),
			matcher.WithTrigramThreshold(cfg.Matching.TrigramThreshold),
		),
		bucketStore,
		bucketservice.Config{
			MinResultsBeforeExpand: cfg.Matching.MinResultsBeforeExpand,
			VariantCap:             cfg.Matching.VariantCap,
		},
		engineOpts...,
	)
	properties := property.NewService(propertyStore, engine, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))

	buckethandler.New(engine, log).Register(router)
	property.NewHandler(properties, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting propsearch", "addr", cfg.Addr, "grid_resolution", cfg.Grid.Resolution)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
