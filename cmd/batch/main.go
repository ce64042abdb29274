package main

import (
	"flag"
	"log"
	"time"

	"gridsynth/internal/config"
	"gridsynth/internal/export"
	"gridsynth/internal/generate"
	"gridsynth/internal/model"
)

func main() {
	configPath := flag.String("config", "batch.yaml", "batch configuration file")
	flag.Parse()

	batch, err := config.LoadBatch(*configPath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *configPath, err)
	}

	seed := batch.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generate.New(seed)

	var succeeded, failed int
	for i := range batch.Datasets {
		ds := &batch.Datasets[i]
		if err := runDataset(gen, ds); err != nil {
			log.Printf("Dataset %q failed: %v", ds.Name, err)
			failed++
			continue
		}
		succeeded++
	}

	log.Printf("Batch done: %d succeeded, %d failed", succeeded, failed)
	if succeeded == 0 {
		log.Fatal("All datasets failed")
	}
}

func runDataset(gen *generate.Generator, ds *config.DatasetSpec) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	start, err := ds.Start()
	if err != nil {
		return err
	}

	var dist *generate.PatternDistribution
	if len(ds.PatternDistribution) > 0 {
		weights := make(map[model.PatternType]float64, len(ds.PatternDistribution))
		for name, w := range ds.PatternDistribution {
			weights[model.PatternType(name)] = w
		}
		dist, err = generate.NewPatternDistribution(weights)
		if err != nil {
			return err
		}
	}

	nodes := gen.GenerateNodes(ds.Nodes, model.DensityClass(ds.Location), dist)
	points := gen.GenerateTimeSeries(nodes, start, ds.Hours, ds.Anomalies())

	if err := export.WriteFile(ds.Output, export.Format(ds.Format), points); err != nil {
		return err
	}
	log.Printf("Dataset %q: %d points -> %s", ds.Name, len(points), ds.Output)
	return nil
}
