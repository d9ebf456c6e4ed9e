package pso

// Config is the PSO engine's tuning knobs (spec §4.7/§6 PSOConfig).
type Config struct {
	SwarmSize int
	MaxIter   int

	W, C1, C2 float64 // inertia, cognitive, social weights
	Eta       float64 // velocity-clamp factor: v_max = Eta*(hi-lo)

	KConv   int     // consecutive iterations for the convergence check
	EpsConv float64 // convergence threshold on |J_gbest(i) - J_gbest(i-KConv)|
	KStag   int     // iterations without g_best improvement before stagnation

	Seed      int64
	RejectMax int // K_reject: resampling attempts for an invalid init position
}

// DefaultConfig returns the scenario-4 defaults from the spec.
func DefaultConfig() Config {
	return Config{
		SwarmSize: 20, MaxIter: 50,
		W: 0.7, C1: 2.0, C2: 2.0, Eta: 0.5,
		KConv: 10, EpsConv: 1e-6, KStag: 15,
		Seed: 42, RejectMax: 20,
	}
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "pso: invalid config field " + e.Field + ": " + e.Reason
}

// Validate enforces the invariants Run relies on.
func (c Config) Validate() error {
	if c.SwarmSize <= 0 {
		return &ConfigError{Field: "SwarmSize", Reason: "must be > 0"}
	}
	if c.MaxIter <= 0 {
		return &ConfigError{Field: "MaxIter", Reason: "must be > 0"}
	}
	if c.Eta <= 0 {
		return &ConfigError{Field: "Eta", Reason: "must be > 0"}
	}
	if c.KConv <= 0 {
		return &ConfigError{Field: "KConv", Reason: "must be > 0"}
	}
	if c.KStag <= 0 {
		return &ConfigError{Field: "KStag", Reason: "must be > 0"}
	}
	if c.RejectMax < 0 {
		return &ConfigError{Field: "RejectMax", Reason: "must be >= 0"}
	}
	return nil
}
