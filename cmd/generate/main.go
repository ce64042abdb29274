package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"gridsynth/internal/config"
	"gridsynth/internal/export"
	"gridsynth/internal/generate"
	"gridsynth/internal/model"
	"gridsynth/internal/sink"
)

func main() {
	nodes := flag.Int("nodes", 100, "number of nodes to generate")
	hours := flag.Int("hours", 168, "duration of the series in hours")
	pattern := flag.String("pattern", "", "single pattern type (default: population mix)")
	location := flag.String("location", "urban", "density class: urban, suburban or rural")
	startStr := flag.String("start", "", "series start, RFC3339 (default: now minus duration)")
	anomaly := flag.Float64("anomaly", 0.02, "anomaly probability per data point")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	out := flag.String("out", "energy_data.csv", "output CSV path")
	format := flag.String("format", "standard", "CSV format: standard or utility")
	xlsxPath := flag.String("xlsx", "", "also write an XLSX workbook to this path")
	pdfPath := flag.String("pdf", "", "also write a PDF run summary to this path")
	toKafka := flag.Bool("kafka", false, "also publish records to Kafka")
	toInflux := flag.Bool("influx", false, "also write records to InfluxDB")
	flag.Parse()

	cfg := config.Load()

	var dist *generate.PatternDistribution
	if *pattern != "" {
		var err error
		dist, err = generate.SinglePattern(model.PatternType(*pattern))
		if err != nil {
			log.Fatalf("Invalid pattern: %v", err)
		}
	}

	gen := generate.New(*seed)

	start := time.Now().Add(-time.Duration(*hours) * time.Hour)
	if *startStr != "" {
		t, err := time.Parse(time.RFC3339, *startStr)
		if err != nil {
			log.Fatalf("Invalid start time: %v", err)
		}
		start = t
	}

	log.Printf("Generating %d nodes (%s) over %d hours, seed %d", *nodes, *location, *hours, *seed)

	generated := gen.GenerateNodes(*nodes, model.DensityClass(*location), dist)
	points := gen.GenerateTimeSeries(generated, start, *hours, *anomaly)

	if err := export.WriteFile(*out, export.Format(*format), points); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d data points to %s", len(points), *out)

	if *xlsxPath != "" {
		if err := export.WriteXLSX(*xlsxPath, points); err != nil {
			log.Fatalf("Failed to write workbook: %v", err)
		}
		log.Printf("Wrote workbook to %s", *xlsxPath)
	}

	if *pdfPath != "" {
		title := fmt.Sprintf("Generation run: %d nodes, %d hours", *nodes, *hours)
		if err := export.WriteSummaryPDF(*pdfPath, title, points); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Wrote report to %s", *pdfPath)
	}

	ctx := context.Background()

	if *toKafka {
		publisher := sink.NewKafkaPublisher(cfg.Kafka, slog.Default())
		if err := publisher.Publish(ctx, points); err != nil {
			log.Fatalf("Kafka publish failed: %v", err)
		}
		publisher.Close()
		log.Printf("Published %d records to %s", len(points), cfg.Kafka.Topic)
	}

	if *toInflux {
		writer, err := sink.NewInfluxWriter(cfg.InfluxDB)
		if err != nil {
			log.Fatalf("InfluxDB connect failed: %v", err)
		}
		if err := writer.WritePoints(ctx, points); err != nil {
			log.Fatalf("InfluxDB write failed: %v", err)
		}
		writer.Close()
		log.Printf("Wrote %d records to bucket %s", len(points), cfg.InfluxDB.Bucket)
	}

	s := export.Summarize(points)
	fmt.Println()
	fmt.Println("Run summary")
	fmt.Printf("  Points:     %d across %d nodes\n", s.Points, s.Nodes)
	fmt.Printf("  Total kWh:  %.3f (avg %.3f per point)\n", s.TotalKWh, s.AverageKWh)
	fmt.Printf("  Anomalies:  %d (%.2f%%)\n", s.Anomalies, s.AnomalyShare*100)
	fmt.Printf("  Range:      %s to %s\n", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
}
