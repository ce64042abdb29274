package merge

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridsynth/internal/catalog"
	"gridsynth/internal/generate"
	"gridsynth/internal/model"
)

// Table is an external tabular dataset loaded fully into memory.
// Loading everything before sampling is an accepted limitation for
// very large inputs.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses a CSV dataset with a header row.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		rows = append(rows, record)
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Merger re-emits rows of a real dataset in the synthesizer's record
// shape, with synthetic location and classification attached.
type Merger struct {
	rng *rand.Rand
	ids *generate.Counter

	// Now supplies the wall clock for fallback timestamps.
	Now func() time.Time
}

// New creates a merger seeded with the given value. ids may be shared
// with a Generator so a run hands out globally unique data identifiers;
// passing nil gives the merger its own counter.
func New(seed int64, ids *generate.Counter) *Merger {
	if ids == nil {
		ids = &generate.Counter{}
	}
	return &Merger{
		rng: rand.New(rand.NewSource(seed)),
		ids: ids,
		Now: time.Now,
	}
}

// MergeFile loads a CSV dataset and merges it. An unreadable or
// malformed file is reported once and yields an empty result; it never
// fails the run.
func (m *Merger) MergeFile(path string, sampleSize int) []model.EnergyDataPoint {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("merge: cannot read dataset", "path", path, "err", err)
		return nil
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		slog.Warn("merge: malformed dataset", "path", path, "err", err)
		return nil
	}
	return m.Merge(table, sampleSize)
}

// Merge samples up to sampleSize rows without replacement and converts
// each surviving row to an EnergyDataPoint. Rows without a parseable
// energy value are skipped; bad timestamps and identifiers are
// recovered with fallbacks.
func (m *Merger) Merge(table *Table, sampleSize int) []model.EnergyDataPoint {
	res := Resolve(table.Header, DefaultRules)
	energyCol := res.Column(FieldEnergy, 0)
	tsCol := res.Column(FieldTimestamp, 1)
	meterCol := res.Column(FieldMeterID, -1)

	n := sampleSize
	if n < 0 {
		n = 0
	}
	if len(table.Rows) < n {
		n = len(table.Rows)
	}
	sample := m.rng.Perm(len(table.Rows))[:n]

	urban := catalog.AreasFor(model.DensityUrban)

	points := make([]model.EnergyDataPoint, 0, n)
	for _, rowIdx := range sample {
		row := table.Rows[rowIdx]

		kwh, ok := extractNumeric(row, energyCol)
		if !ok {
			// A row is useless without a value.
			continue
		}

		ts := m.extractTimestamp(row, tsCol)
		meter := m.extractMeterID(row, meterCol)

		// Vary the value so the output is never a byte copy of the
		// source data.
		kwh *= 0.8 + m.rng.Float64()*0.4

		area := urban[m.rng.Intn(len(urban))]
		lat := area.LatMin + m.rng.Float64()*(area.LatMax-area.LatMin)
		lon := area.LonMin + m.rng.Float64()*(area.LonMax-area.LonMin)

		// Round before classifying so the pattern type always agrees
		// with the emitted kWh at the bucket thresholds.
		kwh = math.Round(kwh*1000) / 1000

		dt := time.Unix(ts, 0)
		points = append(points, model.EnergyDataPoint{
			DataID:      fmt.Sprintf("merged_%08d", m.ids.Next()),
			NodeID:      "merged_" + meter,
			KWh:         kwh,
			Location:    model.FormatLocation(lat, lon),
			Timestamp:   ts,
			Hour:        dt.Hour(),
			DayOfWeek:   model.DayOfWeek(dt),
			Month:       int(dt.Month()),
			PatternType: classify(kwh),
			Anomaly:     false,
		})
	}
	return points
}

// classify buckets a kWh value into a pattern type by fixed thresholds.
func classify(kwh float64) model.PatternType {
	switch {
	case kwh < 5:
		return model.PatternResidential
	case kwh < 20:
		return model.PatternCommercial
	case kwh < 50:
		return model.PatternIndustrial
	default:
		return model.PatternDatacenter
	}
}

func extractNumeric(row []string, col int) (float64, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[col])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// timestampLayouts are tried in order for string-valued timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

const fallbackWindow = 365 * 24 * 3600 // seconds

// extractTimestamp never fails: an approximate time is still useful.
// Numeric values above 1e9 are unix seconds; smaller ones are scaled up
// a unit. Strings are tried against the known layouts. Anything else
// falls back to a random time within the past year.
func (m *Merger) extractTimestamp(row []string, col int) int64 {
	if col >= 0 && col < len(row) {
		s := strings.TrimSpace(row[col])
		if s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				if v > 1e9 {
					return int64(v)
				}
				return int64(v * 1000)
			}
			for _, layout := range timestampLayouts {
				if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
					return t.Unix()
				}
			}
		}
	}
	return m.Now().Unix() - int64(m.rng.Intn(fallbackWindow))
}

func (m *Merger) extractMeterID(row []string, col int) string {
	if col >= 0 && col < len(row) {
		s := strings.TrimSpace(row[col])
		if s != "" {
			return s
		}
	}
	return uuid.NewString()
}
