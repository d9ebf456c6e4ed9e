package smc

// GainSpec describes the shape of a variant's tunable gain vector: its
// ordered names, per-gain bounds, and a validator predicate beyond plain
// box bounds (e.g. algorithmic gain conditions). Owned by the factory
// registry; treated as immutable once built.
type GainSpec struct {
	Names    []string
	Lower    []float64
	Upper    []float64
	Validate func(gains []float64) (bool, string)
}

// NumGains returns the dimensionality of the gain vector.
func (g GainSpec) NumGains() int { return len(g.Names) }

// Bounds returns the per-gain lower/upper bound slices, suitable for PSO
// setup.
func (g GainSpec) Bounds() (lo, hi []float64) {
	return g.Lower, g.Upper
}

// Mid returns the midpoint of the box bounds, used by PSO swarm
// initialization as the fallback position when resampling keeps failing
// the validator.
func (g GainSpec) Mid() []float64 {
	mid := make([]float64, len(g.Names))
	for i := range mid {
		mid[i] = (g.Lower[i] + g.Upper[i]) / 2
	}
	return mid
}

// CheckBounds reports whether gains respects the box bounds, independent
// of the variant-specific Validate predicate.
func (g GainSpec) CheckBounds(gains []float64) (bool, string) {
	if len(gains) != len(g.Names) {
		return false, "wrong number of gains"
	}
	for i, v := range gains {
		if v < g.Lower[i] || v > g.Upper[i] {
			return false, "gain " + g.Names[i] + " out of bounds"
		}
	}
	return true, ""
}

// CheckAll runs both the box-bound check and the variant's Validate
// predicate, used by the factory and by PSO's cheap pre-screening.
func (g GainSpec) CheckAll(gains []float64) (bool, string) {
	if ok, reason := g.CheckBounds(gains); !ok {
		return false, reason
	}
	if g.Validate != nil {
		return g.Validate(gains)
	}
	return true, ""
}

func allPositive(gains []float64, names ...string) (bool, string) {
	for i, name := range names {
		if gains[i] <= 0 {
			return false, name + " must be > 0"
		}
	}
	return true, ""
}
