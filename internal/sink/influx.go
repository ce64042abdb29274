package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"gridsynth/internal/config"
	"gridsynth/internal/model"
)

// InfluxWriter delivers generated records to an InfluxDB v2 bucket.
type InfluxWriter struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewInfluxWriter connects to InfluxDB and verifies the credentials.
func NewInfluxWriter(cfg config.InfluxDBConfig) (*InfluxWriter, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	if _, err := client.Health(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
	}

	return &InfluxWriter{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

// WritePoints writes all data points as energy_consumption measurements.
func (w *InfluxWriter) WritePoints(ctx context.Context, points []model.EnergyDataPoint) error {
	influxPoints := make([]*write.Point, 0, len(points))
	for _, p := range points {
		influxPoints = append(influxPoints, influxPoint(p))
	}
	if err := w.writeAPI.WritePoint(ctx, influxPoints...); err != nil {
		return fmt.Errorf("writing to InfluxDB: %w", err)
	}
	return nil
}

func influxPoint(p model.EnergyDataPoint) *write.Point {
	return write.NewPoint(
		"energy_consumption",
		map[string]string{
			"meter_id":     p.NodeID,
			"pattern_type": string(p.PatternType),
			"anomaly":      strconv.FormatBool(p.Anomaly),
		},
		map[string]interface{}{
			"kwh":      p.KWh,
			"location": p.Location,
		},
		time.Unix(p.Timestamp, 0),
	)
}

func (w *InfluxWriter) Close() {
	w.client.Close()
}
