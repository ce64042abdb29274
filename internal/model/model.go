package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PatternType names a class of energy consumer.
type PatternType string

const (
	PatternResidential PatternType = "residential"
	PatternCommercial  PatternType = "commercial"
	PatternIndustrial  PatternType = "industrial"
	PatternDatacenter  PatternType = "datacenter"
	PatternMixed       PatternType = "mixed"
)

// DensityClass groups geographic areas by population density.
type DensityClass string

const (
	DensityUrban    DensityClass = "urban"
	DensitySuburban DensityClass = "suburban"
	DensityRural    DensityClass = "rural"
)

// UsagePattern defines the characteristic load shape of a consumer class.
type UsagePattern struct {
	BaselineKWh       float64
	PeakKWh           float64
	PeakHours         []int // hours of day, 0-23
	WeekdayMultiplier float64
	WeekendMultiplier float64
	SeasonalVariation float64
	NoiseLevel        float64
}

// IsPeakHour reports whether the given hour of day is in the pattern's peak set.
func (p UsagePattern) IsPeakHour(hour int) bool {
	for _, h := range p.PeakHours {
		if h == hour {
			return true
		}
	}
	return false
}

// GeographicArea is a named region with a center point and bounding box.
type GeographicArea struct {
	Name              string
	CenterLat         float64
	CenterLon         float64
	LatMin, LatMax    float64
	LonMin, LonMax    float64
	PopulationDensity string
}

// Contains reports whether the coordinate lies within the area's bounding box.
func (a GeographicArea) Contains(lat, lon float64) bool {
	return lat >= a.LatMin && lat <= a.LatMax && lon >= a.LonMin && lon <= a.LonMax
}

// EnergyNode is a monitoring point with a fixed location and pattern assignment.
type EnergyNode struct {
	NodeID       string      `json:"node_id"`
	Location     string      `json:"location"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	PatternType  PatternType `json:"pattern_type"`
	Active       bool        `json:"active"`
	RegisteredAt int64       `json:"registered_at"`
	Multiplier   float64     `json:"multiplier"`
	Density      string      `json:"density"`
}

// EnergyDataPoint is a single hourly energy measurement.
type EnergyDataPoint struct {
	DataID      string      `json:"data_id"`
	NodeID      string      `json:"node_id"`
	KWh         float64     `json:"kwh"`
	Location    string      `json:"location"`
	Timestamp   int64       `json:"timestamp"`
	Hour        int         `json:"hour"`
	DayOfWeek   int         `json:"day_of_week"`
	Month       int         `json:"month"`
	PatternType PatternType `json:"pattern_type"`
	Anomaly     bool        `json:"anomaly"`
}

// IntervalRecord is a one-hour measurement in the utility-compatible schema.
type IntervalRecord struct {
	Meter string  `json:"meter"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	KWh   float64 `json:"kWh"`
	KW    float64 `json:"kW"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Interval converts a data point to the utility-compatible interval schema.
// Intervals are one hour, so kW equals kWh.
func (d EnergyDataPoint) Interval() IntervalRecord {
	start := time.Unix(d.Timestamp, 0)
	lat, lon, _ := ParseLocation(d.Location)
	return IntervalRecord{
		Meter: d.NodeID,
		Start: start.Format(time.RFC3339),
		End:   start.Add(time.Hour).Format(time.RFC3339),
		KWh:   d.KWh,
		KW:    d.KWh,
		Lat:   lat,
		Lon:   lon,
	}
}

// FormatLocation renders a coordinate as the canonical location string.
func FormatLocation(lat, lon float64) string {
	return fmt.Sprintf("lat:%.4f,lon:%.4f", lat, lon)
}

// ParseLocation recovers the coordinate from a canonical location string.
func ParseLocation(s string) (lat, lon float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	latStr := strings.TrimPrefix(parts[0], "lat:")
	lonStr := strings.TrimPrefix(parts[1], "lon:")
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lon, err2 := strconv.ParseFloat(lonStr, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// DayOfWeek returns the weekday of t with Monday as 0 and Sunday as 6.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return DayOfWeek(t) >= 5
}
