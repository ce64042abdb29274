package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DatasetSpec describes one dataset in a batch configuration file.
type DatasetSpec struct {
	Name                string             `yaml:"name"`
	Nodes               int                `yaml:"nodes"`
	Location            string             `yaml:"location"`
	PatternDistribution map[string]float64 `yaml:"pattern_distribution"`
	StartDate           string             `yaml:"start_date"`
	Hours               int                `yaml:"hours"`
	AnomalyProbability  *float64           `yaml:"anomaly_probability"`
	Output              string             `yaml:"output"`
	Format              string             `yaml:"format"`
}

// Anomalies returns the anomaly probability, defaulting to 2% when the
// spec omits it. An explicit zero stays zero.
func (d DatasetSpec) Anomalies() float64 {
	if d.AnomalyProbability == nil {
		return 0.02
	}
	return *d.AnomalyProbability
}

// BatchConfig is a list of dataset specifications driven one at a time.
type BatchConfig struct {
	Seed     int64         `yaml:"seed"`
	Datasets []DatasetSpec `yaml:"datasets"`
}

var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Start parses the dataset's start date.
func (d DatasetSpec) Start() (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, d.StartDate, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start_date %q", d.StartDate)
}

// Validate checks required fields and fills defaults: urban location,
// 2% anomaly probability, standard format.
func (d *DatasetSpec) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dataset has no name")
	}
	if d.Nodes <= 0 {
		return fmt.Errorf("dataset %s: nodes must be positive", d.Name)
	}
	if d.Hours <= 0 {
		return fmt.Errorf("dataset %s: hours must be positive", d.Name)
	}
	if d.Output == "" {
		return fmt.Errorf("dataset %s: output is required", d.Name)
	}
	if _, err := d.Start(); err != nil {
		return fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	if d.Location == "" {
		d.Location = "urban"
	}
	if d.Format == "" {
		d.Format = "standard"
	}
	return nil
}

// LoadBatch reads a batch configuration from a YAML file.
func LoadBatch(path string) (*BatchConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch config: %w", err)
	}

	var cfg BatchConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing batch config: %w", err)
	}
	if len(cfg.Datasets) == 0 {
		return nil, fmt.Errorf("batch config %s: no datasets", path)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &cfg, nil
}
