package factory

import (
	"encoding/json"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
	"github.com/san-kum/dipsmc-pso/internal/smc"
)

// GainsRecord is the persisted-artifact shape from spec §6: a tuning
// run's result plus enough context to reconstruct the controller it was
// tuned for. All fields are required on write; readers ignore unknown
// extra fields per the JSON-compatibility contract (encoding/json does
// this by default).
type GainsRecord struct {
	Kind        Kind                    `json:"kind"`
	Gains       []float64               `json:"gains"`
	Seed        int64                   `json:"seed"`
	Cost        float64                 `json:"cost"`
	Iterations  int                     `json:"iterations"`
	Termination string                  `json:"termination"`
	Physics     dynamics.PhysicsParams  `json:"physics"`
}

// Marshal encodes the record as JSON.
func (r GainsRecord) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalGainsRecord decodes a previously-persisted record.
func UnmarshalGainsRecord(data []byte) (GainsRecord, error) {
	var r GainsRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return GainsRecord{}, err
	}
	return r, nil
}

// Reconstruct rebuilds the controller a GainsRecord was tuned for, over
// model (typically dynamics.NewSimplified(record.Physics) or
// dynamics.NewFull(record.Physics)), for the
// "persist -> parse -> construct -> re-simulate" round trip in the
// spec's acceptance scenarios.
func (r GainsRecord) Reconstruct(registry *Registry, model dynamics.Model) (smc.Controller, error) {
	return registry.Create(r.Kind, r.Gains, CreateOptions{}, model)
}
