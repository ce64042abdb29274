package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsynth/internal/generate"
	"gridsynth/internal/model"
)

func samplePoints(t *testing.T) []model.EnergyDataPoint {
	t.Helper()
	g := generate.New(77)
	g.Now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	nodes := g.GenerateNodes(5, model.DensityUrban, nil)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)
	points := g.GenerateTimeSeries(nodes, start, 24, 0.05)
	require.NotEmpty(t, points)
	return points
}

func TestStandardCSV_RoundTrip(t *testing.T) {
	points := samplePoints(t)

	var buf bytes.Buffer
	require.NoError(t, WriteStandardCSV(&buf, points))

	got, err := ReadStandardCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(points))

	for i, p := range points {
		assert.Equal(t, p.DataID, got[i].DataID)
		assert.Equal(t, p.NodeID, got[i].NodeID)
		assert.InDelta(t, p.KWh, got[i].KWh, 0.0005) // 3-decimal precision
		assert.Equal(t, p.Location, got[i].Location)
		assert.Equal(t, p.Timestamp, got[i].Timestamp)
		assert.Equal(t, p.Hour, got[i].Hour)
		assert.Equal(t, p.DayOfWeek, got[i].DayOfWeek)
		assert.Equal(t, p.Month, got[i].Month)
		assert.Equal(t, p.PatternType, got[i].PatternType)
		assert.Equal(t, p.Anomaly, got[i].Anomaly)
	}
}

func TestReadStandardCSV_RejectsWrongHeader(t *testing.T) {
	in := "a,b,c\n1,2,3\n"
	_, err := ReadStandardCSV(strings.NewReader(in))
	assert.Error(t, err)
}

func TestUtilityCSV_Shape(t *testing.T) {
	points := samplePoints(t)

	var buf bytes.Buffer
	require.NoError(t, WriteUtilityCSV(&buf, points))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(points)+1)
	assert.Equal(t, "meter,start,end,kWh,kW,lat,lon", lines[0])

	// kW equals kWh and end is start+1h on every line.
	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 7)
	assert.Equal(t, fields[3], fields[4])

	start, err := time.Parse(time.RFC3339, fields[1])
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, fields[2])
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestSummarize(t *testing.T) {
	points := []model.EnergyDataPoint{
		{NodeID: "node_000000", KWh: 2, Timestamp: 100, Anomaly: false},
		{NodeID: "node_000000", KWh: 4, Timestamp: 3700, Anomaly: true},
		{NodeID: "node_000001", KWh: 6, Timestamp: 200, Anomaly: false},
	}
	s := Summarize(points)
	assert.Equal(t, 3, s.Points)
	assert.Equal(t, 2, s.Nodes)
	assert.InDelta(t, 12, s.TotalKWh, 1e-9)
	assert.InDelta(t, 4, s.AverageKWh, 1e-9)
	assert.Equal(t, 1, s.Anomalies)
	assert.Equal(t, int64(100), s.Start.Unix())
	assert.Equal(t, int64(3700), s.End.Unix())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Points)
	assert.Equal(t, 0.0, s.AverageKWh)
}

func TestBuildWorkbook(t *testing.T) {
	points := samplePoints(t)
	f, err := BuildWorkbook(points)
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "data_id", cell)

	cell, err = f.GetCellValue("data", "A2")
	require.NoError(t, err)
	assert.Equal(t, points[0].DataID, cell)
}

func TestBuildSummaryPDF(t *testing.T) {
	points := samplePoints(t)
	b, err := BuildSummaryPDF("gridsynth run", points)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
