package smc

import (
	"math"
	"testing"

	"github.com/san-kum/dipsmc-pso/internal/dynamics"
)

func testModel() dynamics.Model {
	return dynamics.NewSimplified(dynamics.DefaultPhysicsParams())
}

func nearUpright() dynamics.State {
	return dynamics.NewState(0, 0.05, -0.03, 0, 0.1, -0.05)
}

func TestSlidingSurface_RelativeVsAbsolute(t *testing.T) {
	x := dynamics.NewState(0, 0.1, 0.1, 0, 0.2, 0.2)
	abs := SlidingSurface{Lambda1: 1, Lambda2: 1, K1: 1, K2: 1}
	rel := SlidingSurface{Lambda1: 1, Lambda2: 1, K1: 1, K2: 1, Relative: true}
	if got := abs.Compute(x); got == 0 {
		t.Fatalf("absolute surface unexpectedly zero")
	}
	if got := rel.Compute(x); got != 0 {
		t.Fatalf("relative surface with theta1==theta2 should cancel to 0, got %v", got)
	}
}

func TestSlidingSurface_Attractive(t *testing.T) {
	if !(SlidingSurface{Lambda1: 1, Lambda2: 1, K1: 1, K2: 1}).Attractive() {
		t.Fatal("expected attractive surface")
	}
	if (SlidingSurface{Lambda1: 0, Lambda2: 1, K1: 1, K2: 1}).Attractive() {
		t.Fatal("expected non-attractive surface with zero lambda1")
	}
}

func TestSwitch_TanhBoundedAndOddSymmetric(t *testing.T) {
	for _, sigma := range []float64{-5, -0.1, 0, 0.1, 5} {
		v := Switch(SwitchTanh, sigma, 0.02)
		if v < -1 || v > 1 {
			t.Fatalf("tanh switch out of [-1,1]: %v", v)
		}
	}
	if Switch(SwitchTanh, 1, 0.02) != -Switch(SwitchTanh, -1, 0.02) {
		t.Fatal("tanh switch should be odd-symmetric")
	}
}

func TestSwitch_LinearClips(t *testing.T) {
	if v := Switch(SwitchLinear, 10, 0.02); v != 1 {
		t.Fatalf("expected clip to 1, got %v", v)
	}
	if v := Switch(SwitchLinear, -10, 0.02); v != -1 {
		t.Fatalf("expected clip to -1, got %v", v)
	}
}

func TestSwitch_Sign(t *testing.T) {
	if Switch(SwitchSign, 3, 0.02) != 1 || Switch(SwitchSign, -3, 0.02) != -1 || Switch(SwitchSign, 0, 0.02) != 0 {
		t.Fatal("sign switch mismatch")
	}
}

func TestGainSpec_CheckAllRejectsOutOfBounds(t *testing.T) {
	spec := ClassicalGainSpec
	bad := append([]float64(nil), spec.Mid()...)
	bad[0] = spec.Lower[0] - 1
	if ok, _ := spec.CheckAll(bad); ok {
		t.Fatal("expected out-of-bounds gain vector to be rejected")
	}
}

func TestClassicalSMC_ProducesFiniteBoundedControl(t *testing.T) {
	model := testModel()
	gains := []float64{10, 8, 5, 4, 40, 2}
	c, err := NewClassicalSMC(model, gains, DefaultClassicalOptions())
	if err != nil {
		t.Fatalf("NewClassicalSMC: %v", err)
	}
	u, tel := c.ComputeControl(nearUpright(), 0.001)
	if !tel.Valid {
		t.Fatal("expected valid telemetry near upright")
	}
	if math.IsNaN(float64(u)) || math.Abs(float64(u)) > DefaultClassicalOptions().UMax+1e-9 {
		t.Fatalf("control out of bounds: %v", u)
	}
}

func TestClassicalSMC_RejectsNonPositiveGains(t *testing.T) {
	model := testModel()
	_, err := NewClassicalSMC(model, []float64{0, 8, 5, 4, 40, 2}, DefaultClassicalOptions())
	if err == nil {
		t.Fatal("expected error for non-positive lambda1")
	}
}

func TestClassicalSMC_ResetClearsSaturationTracker(t *testing.T) {
	model := testModel()
	opts := DefaultClassicalOptions()
	opts.NSat = 1
	opts.UMax = 0.001 // force saturation immediately
	c, err := NewClassicalSMC(model, []float64{10, 8, 5, 4, 40, 2}, opts)
	if err != nil {
		t.Fatalf("NewClassicalSMC: %v", err)
	}
	_, tel := c.ComputeControl(nearUpright(), 0.001)
	if tel.State != StateSaturated {
		t.Fatalf("expected SATURATED, got %v", tel.State)
	}
	c.Reset()
	if c.sat.consecutive != 0 {
		t.Fatal("expected saturation tracker cleared after Reset")
	}
}

func TestSTASMC_RejectsInsufficientGains(t *testing.T) {
	model := testModel()
	opts := DefaultSTAOptions()
	opts.DisturbanceBound = 100
	opts.BetaNominal = 1
	_, err := NewSTASMC(model, []float64{1, 1, 10, 8, 5, 4}, opts)
	if err == nil {
		t.Fatal("expected InvalidGainsError for K1/K2 below the algorithmic floor")
	}
}

func TestSTASMC_IntegratorAccumulatesAndClamps(t *testing.T) {
	model := testModel()
	opts := DefaultSTAOptions()
	opts.ZMax = 0.05
	s, err := NewSTASMC(model, []float64{20, 10, 10, 8, 5, 4}, opts)
	if err != nil {
		t.Fatalf("NewSTASMC: %v", err)
	}
	x := nearUpright()
	for i := 0; i < 50; i++ {
		_, tel := s.ComputeControl(x, 0.01)
		if !tel.Valid {
			t.Fatalf("step %d: invalid telemetry", i)
		}
	}
	if math.Abs(s.z) > opts.ZMax+1e-9 {
		t.Fatalf("integrator exceeded ZMax: %v", s.z)
	}
	// sigma is constant and positive here, so z accumulates downward
	// until it is pinned at the clamp.
	if math.Abs(s.z+opts.ZMax) > 1e-9 {
		t.Fatalf("expected integrator to accumulate to -ZMax, got %v", s.z)
	}
}

func TestAdaptiveSMC_GainGrowsOutsideDeadZoneAndLeaksInside(t *testing.T) {
	model := testModel()
	opts := DefaultAdaptiveOptions()
	opts.DeadZone = 0.01
	opts.K0 = 1
	a, err := NewAdaptiveSMC(model, []float64{10, 8, 5, 4, 1}, opts)
	if err != nil {
		t.Fatalf("NewAdaptiveSMC: %v", err)
	}
	x := dynamics.NewState(0, 0.3, 0.3, 0, 0.3, 0.3) // large sigma, outside dead zone
	_, _ = a.ComputeControl(x, 0.01)
	if a.k <= opts.K0 {
		t.Fatalf("expected gain to grow outside dead zone, got %v", a.k)
	}

	zero := dynamics.NewState(0, 0, 0, 0, 0, 0)
	for i := 0; i < 5000; i++ {
		a.ComputeControl(zero, 0.01)
	}
	if math.Abs(a.k-opts.K0) > 1e-2 {
		t.Fatalf("expected gain to leak back toward K0 inside dead zone, got %v", a.k)
	}
}

func TestAdaptiveSMC_RejectsK0OutsideBounds(t *testing.T) {
	model := testModel()
	opts := DefaultAdaptiveOptions()
	opts.K0 = opts.KMax + 1
	_, err := NewAdaptiveSMC(model, []float64{10, 8, 5, 4, 1}, opts)
	if err == nil {
		t.Fatal("expected error for K0 outside [KMin, KMax]")
	}
}

func TestHybridSMC_ProducesFiniteBoundedControl(t *testing.T) {
	model := testModel()
	gains := []float64{10, 8, 2, 1, 5, 3, 1}
	h, err := NewHybridSMC(model, gains, DefaultHybridOptions())
	if err != nil {
		t.Fatalf("NewHybridSMC: %v", err)
	}
	u, tel := h.ComputeControl(nearUpright(), 0.001)
	if !tel.Valid {
		t.Fatal("expected valid telemetry near upright")
	}
	if math.IsNaN(float64(u)) || math.Abs(float64(u)) > DefaultHybridOptions().UMax+1e-9 {
		t.Fatalf("control out of bounds: %v", u)
	}
}

func TestHybridSMC_EmergencyResetFiresAfterHysteresisAndRelaxesGains(t *testing.T) {
	model := testModel()
	opts := DefaultHybridOptions()
	opts.NSat = 1
	opts.NHyst = 3
	opts.TReset = 0
	opts.UMax = 0.001 // force saturation immediately
	h, err := NewHybridSMC(model, []float64{10, 8, 2, 1, 5, 3, 1}, opts)
	if err != nil {
		t.Fatalf("NewHybridSMC: %v", err)
	}
	x := dynamics.NewState(0, 0.3, -0.3, 0, 0.4, -0.4)
	var lastState ControllerState
	for i := 0; i < opts.NHyst+1; i++ {
		_, tel := h.ComputeControl(x, 0.01)
		lastState = tel.State
	}
	if lastState != StateResetFired {
		t.Fatalf("expected RESET_FIRED after %d violations, got %v", opts.NHyst, lastState)
	}
	if h.k1 != opts.K1Min || h.k2 != opts.K2Min {
		t.Fatalf("expected gains relaxed to floor after reset, got k1=%v k2=%v", h.k1, h.k2)
	}
}

func TestHybridSMC_ResetThrottledByTReset(t *testing.T) {
	model := testModel()
	opts := DefaultHybridOptions()
	opts.NSat = 1
	opts.NHyst = 2
	opts.TReset = 1000 // effectively never allow a second reset in this test
	opts.UMax = 0.001
	h, err := NewHybridSMC(model, []float64{10, 8, 2, 1, 5, 3, 1}, opts)
	if err != nil {
		t.Fatalf("NewHybridSMC: %v", err)
	}
	x := dynamics.NewState(0, 0.3, -0.3, 0, 0.4, -0.4)
	fired := 0
	for i := 0; i < 20; i++ {
		_, tel := h.ComputeControl(x, 0.01)
		if tel.State == StateResetFired {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly one reset within the TReset window, got %d", fired)
	}
}

func TestHybridSMC_GetSetParamRoundTrip(t *testing.T) {
	model := testModel()
	h, err := NewHybridSMC(model, []float64{10, 8, 2, 1, 5, 3, 1}, DefaultHybridOptions())
	if err != nil {
		t.Fatalf("NewHybridSMC: %v", err)
	}
	if err := h.SetParam("kd", 3.5); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if got := h.GetParams()["kd"]; got != 3.5 {
		t.Fatalf("expected kd=3.5, got %v", got)
	}
	if err := h.SetParam("not-a-param", 1); err == nil {
		t.Fatal("expected UnknownParamError")
	}
}

func TestEquivalentControl_SuppressedBelowBetaMin(t *testing.T) {
	model := testModel()
	eq := NewEquivalentControl(model, 1e6) // unreasonably high floor forces suppression
	_, _, ok := eq.Compute(nearUpright(), [3]float64{0, 1, 1})
	if ok {
		t.Fatal("expected equivalent control suppressed below betaMin")
	}
}
