package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gridsynth/internal/model"
)

// Format selects an export record shape.
type Format string

const (
	FormatStandard Format = "standard"
	FormatUtility  Format = "utility"
)

// StandardHeader is the column set of the standard record shape.
// Downstream consumers depend on the exact field order.
var StandardHeader = []string{
	"data_id", "node_id", "kwh", "location", "timestamp",
	"hour", "day_of_week", "month", "pattern_type", "anomaly",
}

// UtilityHeader is the column set of the utility-compatible interval shape.
var UtilityHeader = []string{"meter", "start", "end", "kWh", "kW", "lat", "lon"}

// WriteStandardCSV writes data points in the standard record shape.
func WriteStandardCSV(w io.Writer, points []model.EnergyDataPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StandardHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range points {
		record := []string{
			p.DataID,
			p.NodeID,
			strconv.FormatFloat(p.KWh, 'f', 3, 64),
			p.Location,
			strconv.FormatInt(p.Timestamp, 10),
			strconv.Itoa(p.Hour),
			strconv.Itoa(p.DayOfWeek),
			strconv.Itoa(p.Month),
			string(p.PatternType),
			strconv.FormatBool(p.Anomaly),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record %s: %w", p.DataID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadStandardCSV parses data points written by WriteStandardCSV.
func ReadStandardCSV(r io.Reader) ([]model.EnergyDataPoint, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(StandardHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(StandardHeader), len(header))
	}
	for i, col := range StandardHeader {
		if header[i] != col {
			return nil, fmt.Errorf("expected column %d to be %q, got %q", i, col, header[i])
		}
	}

	var points []model.EnergyDataPoint
	line := 1
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		p, err := parseStandardRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func parseStandardRecord(record []string) (model.EnergyDataPoint, error) {
	if len(record) != len(StandardHeader) {
		return model.EnergyDataPoint{}, fmt.Errorf("expected %d fields, got %d", len(StandardHeader), len(record))
	}
	kwh, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing kwh: %w", err)
	}
	ts, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	hour, err := strconv.Atoi(record[5])
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing hour: %w", err)
	}
	dow, err := strconv.Atoi(record[6])
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing day_of_week: %w", err)
	}
	month, err := strconv.Atoi(record[7])
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing month: %w", err)
	}
	anomaly, err := strconv.ParseBool(record[9])
	if err != nil {
		return model.EnergyDataPoint{}, fmt.Errorf("parsing anomaly: %w", err)
	}
	return model.EnergyDataPoint{
		DataID:      record[0],
		NodeID:      record[1],
		KWh:         kwh,
		Location:    record[3],
		Timestamp:   ts,
		Hour:        hour,
		DayOfWeek:   dow,
		Month:       month,
		PatternType: model.PatternType(record[8]),
		Anomaly:     anomaly,
	}, nil
}

// WriteUtilityCSV writes data points as utility-compatible interval records.
func WriteUtilityCSV(w io.Writer, points []model.EnergyDataPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(UtilityHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range points {
		iv := p.Interval()
		record := []string{
			iv.Meter,
			iv.Start,
			iv.End,
			strconv.FormatFloat(iv.KWh, 'f', 3, 64),
			strconv.FormatFloat(iv.KW, 'f', 3, 64),
			strconv.FormatFloat(iv.Lat, 'f', 4, 64),
			strconv.FormatFloat(iv.Lon, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record for %s: %w", iv.Meter, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile exports points to path in the given format.
func WriteFile(path string, format Format, points []model.EnergyDataPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatUtility:
		err = WriteUtilityCSV(f, points)
	default:
		err = WriteStandardCSV(f, points)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
