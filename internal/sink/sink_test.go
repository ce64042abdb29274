package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsynth/internal/model"
)

var testPoints = []model.EnergyDataPoint{
	{
		DataID:      "data_00000000",
		NodeID:      "node_000001",
		KWh:         3.215,
		Location:    "lat:40.7128,lon:-74.0060",
		Timestamp:   1767589200,
		Hour:        5,
		DayOfWeek:   0,
		Month:       1,
		PatternType: model.PatternResidential,
		Anomaly:     false,
	},
	{
		DataID:      "data_00000001",
		NodeID:      "node_000001",
		KWh:         14.5,
		Timestamp:   1767592800,
		PatternType: model.PatternResidential,
		Anomaly:     true,
	},
}

func TestBuildMessages(t *testing.T) {
	msgs, err := buildMessages(testPoints)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, []byte("node_000001"), msgs[0].Key)

	var decoded model.EnergyDataPoint
	require.NoError(t, json.Unmarshal(msgs[0].Value, &decoded))
	assert.Equal(t, testPoints[0], decoded)
}

func TestInfluxPoint(t *testing.T) {
	p := influxPoint(testPoints[1])
	assert.Equal(t, "energy_consumption", p.Name())
	assert.Equal(t, testPoints[1].Timestamp, p.Time().Unix())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "node_000001", tags["meter_id"])
	assert.Equal(t, "residential", tags["pattern_type"])
	assert.Equal(t, "true", tags["anomaly"])
}

func TestBuildInsert(t *testing.T) {
	query, args := buildInsert(testPoints)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO energy_data"))
	assert.Contains(t, query, "($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)")
	assert.Contains(t, query, "($11, $12, $13, $14, $15, $16, $17, $18, $19, $20)")
	assert.Contains(t, query, "ON CONFLICT (data_id) DO NOTHING")
	require.Len(t, args, 20)
	assert.Equal(t, "data_00000000", args[0])
	assert.Equal(t, "data_00000001", args[10])
}
