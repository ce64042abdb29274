package main

import (
	"context"
	"flag"
	"log"
	"time"

	"gridsynth/internal/config"
	"gridsynth/internal/generate"
	"gridsynth/internal/model"
	"gridsynth/internal/sink"
)

func main() {
	nodes := flag.Int("nodes", 1000, "number of nodes to generate")
	hours := flag.Int("hours", 720, "duration of the series in hours")
	anomaly := flag.Float64("anomaly", 0.02, "anomaly probability per data point")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg := config.Load()
	if cfg.Postgres.DSN == "" {
		log.Fatal("PG_DSN or DATABASE_URL must be set")
	}

	seeder, err := sink.NewPostgresSeeder(cfg.Postgres.DSN, cfg.Postgres.BatchSize)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer seeder.Close()

	ctx := context.Background()
	if err := seeder.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	gen := generate.New(*seed)
	start := time.Now().Add(-time.Duration(*hours) * time.Hour)

	log.Printf("Generating %d nodes over %d hours, seed %d", *nodes, *hours, *seed)
	generated := gen.GenerateNodes(*nodes, model.DensityUrban, nil)
	points := gen.GenerateTimeSeries(generated, start, *hours, *anomaly)

	began := time.Now()
	if err := seeder.Seed(ctx, points); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d rows in %s", len(points), time.Since(began).Round(time.Millisecond))
}
