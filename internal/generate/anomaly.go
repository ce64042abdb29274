package generate

import "math/rand"

// Injector turns a base measurement into an anomalous one. It returns
// the adjusted value and whether the value should be flagged.
type Injector func(rng *rand.Rand, kwh float64) (float64, bool)

// TwoRangeInjector models the two observed failure modes: a dropout
// (factor in [0.1, 0.3]) or a surge (factor in [2.0, 5.0]), equally
// likely.
func TwoRangeInjector(rng *rand.Rand, kwh float64) (float64, bool) {
	var factor float64
	if rng.Float64() < 0.5 {
		factor = 0.1 + rng.Float64()*0.2
	} else {
		factor = 2.0 + rng.Float64()*3.0
	}
	return kwh * factor, true
}
