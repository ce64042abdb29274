package main

import (
	"flag"
	"log"
	"time"

	"gridsynth/internal/export"
	"gridsynth/internal/merge"
)

func main() {
	in := flag.String("in", "", "external CSV file to merge")
	out := flag.String("out", "merged_data.csv", "output CSV path")
	sample := flag.Int("sample", 1000, "max rows to sample from the input")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}

	merger := merge.New(*seed, nil)
	points := merger.MergeFile(*in, *sample)
	if len(points) == 0 {
		log.Fatalf("No usable rows in %s", *in)
	}

	if err := export.WriteFile(*out, export.FormatStandard, points); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Merged %d records from %s into %s", len(points), *in, *out)
}
