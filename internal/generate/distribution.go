package generate

import (
	"fmt"
	"math"
	"math/rand"

	"gridsynth/internal/catalog"
	"gridsynth/internal/model"
)

// PatternDistribution is a validated set of pattern weights. Weights are
// normalized at construction and drawn in the catalog's fixed pattern
// order, so a seeded run always picks the same sequence.
type PatternDistribution struct {
	types []model.PatternType
	cum   []float64
}

// NewPatternDistribution builds a distribution from pattern weights.
// Negative, NaN, and infinite weights and all-zero totals are rejected;
// the remaining weights are normalized to sum to 1.
func NewPatternDistribution(weights map[model.PatternType]float64) (*PatternDistribution, error) {
	var total float64
	for pt, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("pattern %s: invalid weight %v", pt, w)
		}
		if _, ok := catalog.Pattern(pt); !ok {
			return nil, fmt.Errorf("unknown pattern type %q", pt)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("pattern weights sum to %v, need a positive total", total)
	}

	d := &PatternDistribution{}
	var cum float64
	for _, pt := range catalog.PatternOrder {
		w, ok := weights[pt]
		if !ok || w == 0 {
			continue
		}
		cum += w / total
		d.types = append(d.types, pt)
		d.cum = append(d.cum, cum)
	}
	// Guard against float accumulation leaving the last boundary below 1.
	d.cum[len(d.cum)-1] = 1
	return d, nil
}

// DefaultDistribution is the node-population mix used when the caller
// does not supply one.
func DefaultDistribution() *PatternDistribution {
	d, err := NewPatternDistribution(map[model.PatternType]float64{
		model.PatternResidential: 0.60,
		model.PatternCommercial:  0.25,
		model.PatternIndustrial:  0.10,
		model.PatternDatacenter:  0.05,
	})
	if err != nil {
		panic(err) // static weights, cannot fail
	}
	return d
}

// SinglePattern returns a distribution that always picks the given type.
func SinglePattern(pt model.PatternType) (*PatternDistribution, error) {
	return NewPatternDistribution(map[model.PatternType]float64{pt: 1})
}

// Pick draws a pattern type.
func (d *PatternDistribution) Pick(rng *rand.Rand) model.PatternType {
	r := rng.Float64()
	for i, c := range d.cum {
		if r < c {
			return d.types[i]
		}
	}
	return d.types[len(d.types)-1]
}
