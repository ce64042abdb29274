package export

import (
	"time"

	"gridsynth/internal/model"
)

// RunSummary aggregates a generated dataset for reports.
type RunSummary struct {
	Points       int
	Nodes        int
	TotalKWh     float64
	AverageKWh   float64
	Anomalies    int
	AnomalyShare float64
	Start        time.Time
	End          time.Time
}

// Summarize computes totals over a set of data points.
func Summarize(points []model.EnergyDataPoint) RunSummary {
	s := RunSummary{Points: len(points)}
	if len(points) == 0 {
		return s
	}

	nodes := make(map[string]bool)
	minTS, maxTS := points[0].Timestamp, points[0].Timestamp
	for _, p := range points {
		nodes[p.NodeID] = true
		s.TotalKWh += p.KWh
		if p.Anomaly {
			s.Anomalies++
		}
		if p.Timestamp < minTS {
			minTS = p.Timestamp
		}
		if p.Timestamp > maxTS {
			maxTS = p.Timestamp
		}
	}

	s.Nodes = len(nodes)
	s.AverageKWh = s.TotalKWh / float64(len(points))
	s.AnomalyShare = float64(s.Anomalies) / float64(len(points))
	s.Start = time.Unix(minTS, 0)
	s.End = time.Unix(maxTS, 0)
	return s
}
