package generate

import (
	"fmt"
	"math"
	"time"

	"gridsynth/internal/catalog"
	"gridsynth/internal/model"
)

// GenerateTimeSeries synthesizes hourly measurements for every active
// node, in node order and then hour order within a node. Inactive nodes
// contribute nothing. anomalyProb is clamped to [0, 1].
func (g *Generator) GenerateTimeSeries(nodes []model.EnergyNode, start time.Time, durationHours int, anomalyProb float64) []model.EnergyDataPoint {
	anomalyProb = clamp01(anomalyProb)

	var points []model.EnergyDataPoint
	for _, node := range nodes {
		if !node.Active {
			continue
		}
		pattern, ok := catalog.Pattern(node.PatternType)
		if !ok {
			continue
		}
		points = append(points, g.nodeSeries(node, pattern, start, durationHours, anomalyProb)...)
	}
	return points
}

func (g *Generator) nodeSeries(node model.EnergyNode, pattern model.UsagePattern, start time.Time, durationHours int, anomalyProb float64) []model.EnergyDataPoint {
	points := make([]model.EnergyDataPoint, 0, durationHours)

	for h := 0; h < durationHours; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		// Derived fields follow local time so they always match what a
		// consumer recovers from the unix timestamp.
		lt := ts.Local()
		hourOfDay := lt.Hour()
		dayOfWeek := model.DayOfWeek(lt)
		month := int(lt.Month())

		kwh := pattern.BaselineKWh
		if pattern.IsPeakHour(hourOfDay) {
			kwh = pattern.PeakKWh
		}

		if dayOfWeek >= 5 {
			kwh *= pattern.WeekendMultiplier
		} else {
			kwh *= pattern.WeekdayMultiplier
		}

		// One-year sinusoid peaking near August, troughing near
		// February: cooling and heating load.
		kwh *= 1 + pattern.SeasonalVariation*math.Sin(float64(month-2)*math.Pi/6)

		kwh *= node.Multiplier

		kwh *= 1 + g.rng.NormFloat64()*pattern.NoiseLevel

		anomaly := false
		if g.rng.Float64() < anomalyProb {
			kwh, anomaly = g.injector(g.rng, kwh)
		}

		if kwh < 0.1 {
			kwh = 0.1
		}

		points = append(points, model.EnergyDataPoint{
			DataID:      fmt.Sprintf("data_%08d", g.dataIDs.Next()),
			NodeID:      node.NodeID,
			KWh:         round3(kwh),
			Location:    node.Location,
			Timestamp:   ts.Unix(),
			Hour:        hourOfDay,
			DayOfWeek:   dayOfWeek,
			Month:       month,
			PatternType: node.PatternType,
			Anomaly:     anomaly,
		})
	}
	return points
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
