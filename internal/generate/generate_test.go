package generate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsynth/internal/catalog"
	"gridsynth/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerateNodes_CountAndBounds(t *testing.T) {
	g := New(42)
	g.Now = fixedClock

	nodes := g.GenerateNodes(200, model.DensityUrban, nil)
	require.Len(t, nodes, 200)

	areas := catalog.AreasFor(model.DensityUrban)
	for _, n := range nodes {
		inSomeArea := false
		for _, a := range areas {
			if a.Contains(n.Latitude, n.Longitude) {
				inSomeArea = true
				break
			}
		}
		assert.True(t, inSomeArea, "node %s at (%v, %v) outside every urban area", n.NodeID, n.Latitude, n.Longitude)
		assert.GreaterOrEqual(t, n.Multiplier, 0.8)
		assert.LessOrEqual(t, n.Multiplier, 1.3)
		assert.LessOrEqual(t, n.RegisteredAt, fixedClock().Unix())
		assert.GreaterOrEqual(t, n.RegisteredAt, fixedClock().Unix()-registrationWindow)
		assert.Equal(t, model.FormatLocation(n.Latitude, n.Longitude), n.Location)
	}

	// IDs are monotonically assigned and zero-padded.
	assert.Equal(t, "node_000000", nodes[0].NodeID)
	assert.Equal(t, "node_000199", nodes[199].NodeID)
}

func TestGenerateNodes_CommercialClustersNearCenter(t *testing.T) {
	g := New(7)
	g.Now = fixedClock

	dist, err := SinglePattern(model.PatternCommercial)
	require.NoError(t, err)

	nodes := g.GenerateNodes(500, model.DensityUrban, dist)
	areas := catalog.AreasFor(model.DensityUrban)

	// The 70/30 blend toward the center confines every commercial node
	// to the shrunken box of some area.
	for _, n := range nodes {
		assert.Equal(t, model.PatternCommercial, n.PatternType)
		inBlendBox := false
		for _, a := range areas {
			latMin := a.LatMin*0.7 + a.CenterLat*0.3
			latMax := a.LatMax*0.7 + a.CenterLat*0.3
			lonMin := a.LonMin*0.7 + a.CenterLon*0.3
			lonMax := a.LonMax*0.7 + a.CenterLon*0.3
			if n.Latitude >= latMin-1e-9 && n.Latitude <= latMax+1e-9 &&
				n.Longitude >= lonMin-1e-9 && n.Longitude <= lonMax+1e-9 {
				inBlendBox = true
				break
			}
		}
		assert.True(t, inBlendBox, "node %s not clustered toward any urban center", n.NodeID)
	}
}

func TestGenerateNodes_PatternMixMatchesWeights(t *testing.T) {
	g := New(1)
	g.Now = fixedClock

	nodes := g.GenerateNodes(10000, model.DensityUrban, nil)
	counts := map[model.PatternType]int{}
	for _, n := range nodes {
		counts[n.PatternType]++
	}

	want := map[model.PatternType]float64{
		model.PatternResidential: 0.60,
		model.PatternCommercial:  0.25,
		model.PatternIndustrial:  0.10,
		model.PatternDatacenter:  0.05,
	}
	for pt, frac := range want {
		got := float64(counts[pt]) / 10000
		assert.InDelta(t, frac, got, 0.02, "pattern %s", pt)
	}
}

func TestNewPatternDistribution_Validation(t *testing.T) {
	_, err := NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: -0.5,
		model.PatternCommercial:  1.5,
	})
	assert.Error(t, err)

	_, err = NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: 0,
	})
	assert.Error(t, err)

	_, err = NewPatternDistribution(map[model.PatternType]float64{
		model.PatternType("hydroponic"): 1,
	})
	assert.Error(t, err)

	_, err = NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: math.NaN(),
		model.PatternCommercial:  1,
	})
	assert.Error(t, err)

	_, err = NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: math.Inf(1),
	})
	assert.Error(t, err)

	// Unnormalized weights are accepted and normalized.
	d, err := NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: 3,
		model.PatternCommercial:  1,
	})
	require.NoError(t, err)
	g := New(3)
	res := 0
	for i := 0; i < 4000; i++ {
		if d.Pick(g.rng) == model.PatternResidential {
			res++
		}
	}
	assert.InDelta(t, 0.75, float64(res)/4000, 0.02)
}

func TestGenerateTimeSeries_DeterministicFormula(t *testing.T) {
	g := New(99)
	g.Now = fixedClock

	pattern := catalog.Patterns[model.PatternResidential]
	// Wednesday 2026-03-04 local midnight.
	start := time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)
	node := model.EnergyNode{
		NodeID:      "node_000000",
		Location:    model.FormatLocation(40.7, -74.0),
		Latitude:    40.7,
		Longitude:   -74.0,
		PatternType: model.PatternResidential,
		Active:      true,
		Multiplier:  1.1,
	}

	points := g.GenerateTimeSeries([]model.EnergyNode{node}, start, 24, 0)
	require.Len(t, points, 24)

	seasonal := 1 + pattern.SeasonalVariation*math.Sin(float64(3-2)*math.Pi/6)

	check := New(99) // same seed: replay the noise draws
	for h, p := range points {
		assert.False(t, p.Anomaly)
		assert.Equal(t, h, p.Hour)
		assert.Equal(t, 2, p.DayOfWeek) // Wednesday
		assert.Equal(t, 3, p.Month)

		base := pattern.BaselineKWh
		if h >= 18 && h <= 21 {
			base = pattern.PeakKWh
		}
		noise := check.rng.NormFloat64() * pattern.NoiseLevel
		check.rng.Float64() // anomaly roll, probability 0
		want := base * pattern.WeekdayMultiplier * seasonal * node.Multiplier * (1 + noise)
		if want < 0.1 {
			want = 0.1
		}
		assert.InDelta(t, round3(want), p.KWh, 1e-9, "hour %d", h)
	}
}

func TestGenerateTimeSeries_SkipsInactiveNodes(t *testing.T) {
	g := New(5)
	g.Now = fixedClock

	nodes := []model.EnergyNode{
		{NodeID: "node_000000", PatternType: model.PatternResidential, Active: false, Multiplier: 1},
		{NodeID: "node_000001", PatternType: model.PatternResidential, Active: true, Multiplier: 1},
	}
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	points := g.GenerateTimeSeries(nodes, start, 12, 0)
	require.Len(t, points, 12)
	for _, p := range points {
		assert.Equal(t, "node_000001", p.NodeID)
	}
}

func TestGenerateTimeSeries_OrderingAndInvariants(t *testing.T) {
	g := New(11)
	g.Now = fixedClock

	nodes := g.GenerateNodes(20, model.DensityRural, nil)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local)
	points := g.GenerateTimeSeries(nodes, start, 48, 0.05)

	var prev model.EnergyDataPoint
	for i, p := range points {
		assert.GreaterOrEqual(t, p.KWh, 0.1)

		lt := time.Unix(p.Timestamp, 0)
		assert.Equal(t, lt.Hour(), p.Hour)
		assert.Equal(t, model.DayOfWeek(lt), p.DayOfWeek)
		assert.Equal(t, int(lt.Month()), p.Month)

		if i > 0 && p.NodeID == prev.NodeID {
			assert.Greater(t, p.Timestamp, prev.Timestamp)
		}
		prev = p
	}
}

func TestGenerateTimeSeries_SeededRunsAreIdentical(t *testing.T) {
	run := func() []model.EnergyDataPoint {
		g := New(1234)
		g.Now = fixedClock
		nodes := g.GenerateNodes(10, model.DensitySuburban, nil)
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
		return g.GenerateTimeSeries(nodes, start, 24, 0.1)
	}
	assert.Equal(t, run(), run())
}

func TestTwoRangeInjector_Ranges(t *testing.T) {
	g := New(8)
	low, high := 0, 0
	for i := 0; i < 2000; i++ {
		adjusted, flagged := TwoRangeInjector(g.rng, 10)
		assert.True(t, flagged)
		factor := adjusted / 10
		switch {
		case factor >= 0.1 && factor <= 0.3:
			low++
		case factor >= 2.0 && factor <= 5.0:
			high++
		default:
			t.Fatalf("factor %v outside both anomaly ranges", factor)
		}
	}
	// Both modes occur, roughly equally.
	assert.InDelta(t, 1000, low, 150)
	assert.InDelta(t, 1000, high, 150)
}

func TestCounter_StrictlyIncreasing(t *testing.T) {
	var c Counter
	assert.Equal(t, int64(0), c.Next())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Value())
}
