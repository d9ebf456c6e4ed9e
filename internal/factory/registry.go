package factory

import (
	"log"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// Kind names a registered controller variant.
type Kind string

const (
	KindClassical Kind = "classical"
	KindSTA       Kind = "sta"
	KindAdaptive  Kind = "adaptive"
	KindHybrid    Kind = "hybrid"
)

// constructor builds a controller from validated gains and a raw
// overrides map; each kind interprets its own override keys.
type constructor func(model dynamics.Model, gains []float64, overrides map[string]float64) (smc.Controller, error)

type entry struct {
	gainSpec    smc.GainSpec
	build       constructor
	defaultGains []float64
}

// Registry maps a Kind to its GainSpec and constructor.
type Registry struct {
	entries map[Kind]entry
}

// NewRegistry builds a Registry preloaded with the four SMC variants.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Kind]entry)}
	r.mustRegister(KindClassical, smc.ClassicalGainSpec, buildClassical, []float64{10, 8, 5, 4, 40, 2})
	r.mustRegister(KindSTA, smc.STAGainSpec, buildSTA, []float64{20, 10, 10, 8, 5, 4})
	r.mustRegister(KindAdaptive, smc.AdaptiveGainSpec, buildAdaptive, []float64{10, 8, 5, 4, 1})
	r.mustRegister(KindHybrid, smc.HybridGainSpec, buildHybrid, []float64{10, 8, 2, 1, 5, 3, 1})
	return r
}

// Register adds a new kind. It fails if kind is already present.
func (r *Registry) Register(kind Kind, gainSpec smc.GainSpec, build constructor, defaultGains []float64) error {
	if _, exists := r.entries[kind]; exists {
		return &DuplicateKindError{Kind: string(kind)}
	}
	r.entries[kind] = entry{gainSpec: gainSpec, build: build, defaultGains: defaultGains}
	return nil
}

func (r *Registry) mustRegister(kind Kind, gainSpec smc.GainSpec, build constructor, defaultGains []float64) {
	if err := r.Register(kind, gainSpec, build, defaultGains); err != nil {
		panic(err)
	}
}

// CreateOptions controls Create's gain-validation fallback behavior.
type CreateOptions struct {
	Overrides            map[string]float64
	AllowDefaultFallback bool
}

// Create validates gains against kind's GainSpec and builds a
// controller. An empty gains slice is only accepted when
// opts.AllowDefaultFallback is set, in which case the registered
// default gains are used and a warning is logged; otherwise an empty
// gains slice is just another invalid-gains case.
func (r *Registry) Create(kind Kind, gains []float64, opts CreateOptions, model dynamics.Model) (smc.Controller, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, NewUnknownControllerError(string(kind))
	}

	if len(gains) == 0 {
		if !opts.AllowDefaultFallback {
			return nil, smc.NewInvalidGainsError(string(kind), "no gains supplied and default fallback not enabled")
		}
		log.Printf("factory: falling back to default gains for kind %s (caller opted in)", kind)
		gains = e.defaultGains
	}

	if ok, reason := e.gainSpec.CheckAll(gains); !ok {
		return nil, smc.NewInvalidGainsError(string(kind), reason)
	}

	return e.build(model, gains, opts.Overrides)
}

// GainBounds returns kind's box bounds for PSO setup.
func (r *Registry) GainBounds(kind Kind) (lo, hi []float64, err error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, nil, NewUnknownControllerError(string(kind))
	}
	lo, hi = e.gainSpec.Bounds()
	return lo, hi, nil
}

// GainSpec returns kind's full GainSpec, e.g. for PSO's cheap
// pre-screening validator.
func (r *Registry) GainSpec(kind Kind) (smc.GainSpec, error) {
	e, ok := r.entries[kind]
	if !ok {
		return smc.GainSpec{}, NewUnknownControllerError(string(kind))
	}
	return e.gainSpec, nil
}

// ValidateGains reports whether gains passes kind's GainSpec, for cheap
// PSO pre-screening.
func (r *Registry) ValidateGains(kind Kind, gains []float64) (bool, string) {
	e, ok := r.entries[kind]
	if !ok {
		return false, "unknown controller kind " + string(kind)
	}
	return e.gainSpec.CheckAll(gains)
}

// Kinds lists every registered kind.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	return kinds
}
