// Command seed loads a small Lagos data set through the full assignment path,
// so a fresh environment has buckets, index rows, and listings to play with.
// The Sangotedo entries deliberately use three spellings of one neighborhood.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	bucketservice "propsearch/internal/bucket/service"
	bucketpg "propsearch/internal/bucket/store/postgres"
	"propsearch/internal/geo"
	"propsearch/internal/location/matcher"
	"propsearch/internal/location/normalizer"
	"propsearch/internal/platform/config"
	"propsearch/internal/platform/logger"
	"propsearch/internal/platform/postgres"
	"propsearch/internal/property"
)

var listings = []property.CreateInput{
	{Title: "3 bedroom terrace", LocationName: "Sangotedo", Lat: 6.4698, Lng: 3.6285, Price: 45_000_000, Bedrooms: 3, Bathrooms: 3},
	{Title: "2 bedroom flat", LocationName: "Sangotedo, Ajah", Lat: 6.4720, Lng: 3.6301, Price: 28_000_000, Bedrooms: 2, Bathrooms: 2},
	{Title: "4 bedroom duplex", LocationName: "sangotedo lagos", Lat: 6.4705, Lng: 3.6290, Price: 85_000_000, Bedrooms: 4, Bathrooms: 4},
	{Title: "Self-contain studio", LocationName: "Yaba", Lat: 6.5095, Lng: 3.3711, Price: 9_000_000, Bedrooms: 1, Bathrooms: 1},
	{Title: "3 bedroom apartment", LocationName: "Lekki Phase 1", Lat: 6.4478, Lng: 3.4723, Price: 95_000_000, Bedrooms: 3, Bathrooms: 3},
	{Title: "2 bedroom flat", LocationName: "Ajah", Lat: 6.4667, Lng: 3.5725, Price: 25_000_000, Bedrooms: 2, Bathrooms: 2},
	{Title: "5 bedroom detached house", LocationName: "Ikeja GRA", Lat: 6.5800, Lng: 3.3570, Price: 250_000_000, Bedrooms: 5, Bathrooms: 5},
	{Title: "Mini flat", LocationName: "Agege", Lat: 6.6158, Lng: 3.3204, Price: 7_500_000, Bedrooms: 1, Bathrooms: 1},
	{Title: "3 bedroom flat", LocationName: "Victoria Island", Lat: 6.4281, Lng: 3.4219, Price: 120_000_000, Bedrooms: 3, Bathrooms: 3},
	{Title: "2 bedroom terrace", LocationName: "Surulere, Lagos", Lat: 6.5005, Lng: 3.3558, Price: 32_000_000, Bedrooms: 2, Bathrooms: 2},
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required for seeding")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	engine := bucketservice.New(
		geo.NewGrid(cfg.Grid.Resolution),
		normalizer.New(normalizer.DefaultConfig()),
		matcher.New(),
		bucketpg.New(pool),
		bucketservice.Config{
			MinResultsBeforeExpand: cfg.Matching.MinResultsBeforeExpand,
			VariantCap:             cfg.Matching.VariantCap,
		},
		bucketservice.WithLogger(log),
	)
	properties := property.NewService(property.NewPostgresStore(pool), engine, log)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, input := range listings {
		g.Go(func() error {
			p, err := properties.Create(gctx, input)
			if err != nil {
				return err
			}
			log.Info("seeded listing", "title", p.Title, "cell_id", p.BucketCellID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	stats, err := engine.Stats(ctx, false)
	if err != nil {
		log.Error("read stats", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete",
		"listings", len(listings),
		"buckets", stats.TotalBuckets,
		"properties", stats.TotalProperties,
	)
}
