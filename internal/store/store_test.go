package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsynth/internal/model"
)

func record(meter string, start time.Time, kwh float64) model.IntervalRecord {
	return model.IntervalRecord{
		Meter: meter,
		Start: start.Format(time.RFC3339),
		End:   start.Add(time.Hour).Format(time.RFC3339),
		KWh:   kwh,
		KW:    kwh,
	}
}

var base = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func TestStore_PutSortsByStart(t *testing.T) {
	s := New()
	s.Put("node_000001", []model.IntervalRecord{
		record("node_000001", base.Add(2*time.Hour), 3),
		record("node_000001", base, 1),
		record("node_000001", base.Add(time.Hour), 2),
	})

	asc := s.Intervals("node_000001", 0, false)
	require.Len(t, asc, 3)
	assert.Equal(t, 1.0, asc[0].KWh)
	assert.Equal(t, 2.0, asc[1].KWh)
	assert.Equal(t, 3.0, asc[2].KWh)
}

func TestStore_IntervalsDescendingWithLimit(t *testing.T) {
	s := New()
	var records []model.IntervalRecord
	for i := 0; i < 10; i++ {
		records = append(records, record("m", base.Add(time.Duration(i)*time.Hour), float64(i)))
	}
	s.Put("m", records)

	desc := s.Intervals("m", 3, true)
	require.Len(t, desc, 3)
	assert.Equal(t, 9.0, desc[0].KWh)
	assert.Equal(t, 8.0, desc[1].KWh)
	assert.Equal(t, 7.0, desc[2].KWh)
}

func TestStore_Latest(t *testing.T) {
	s := New()
	_, ok := s.Latest("m")
	assert.False(t, ok)

	s.Put("m", []model.IntervalRecord{
		record("m", base, 1),
		record("m", base.Add(5*time.Hour), 6),
	})

	latest, ok := s.Latest("m")
	require.True(t, ok)
	assert.Equal(t, 6.0, latest.KWh)
}

func TestStore_HasAndMeters(t *testing.T) {
	s := New()
	assert.False(t, s.Has("m"))

	s.Put("b", []model.IntervalRecord{record("b", base, 1)})
	s.Put("a", []model.IntervalRecord{record("a", base, 1)})

	assert.True(t, s.Has("a"))
	assert.Equal(t, []string{"a", "b"}, s.Meters())
}

func TestStore_IgnoresUnparseableStart(t *testing.T) {
	s := New()
	s.Put("m", []model.IntervalRecord{{Meter: "m", Start: "not-a-time", KWh: 1}})
	assert.False(t, s.Has("m"))
}
