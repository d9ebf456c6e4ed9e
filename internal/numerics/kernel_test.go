package numerics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInvert_WellConditioned(t *testing.T) {
	k := NewKernel()
	m := mat.NewDense(3, 3, []float64{
		4, 0, 0,
		0, 3, 0,
		0, 0, 2,
	})

	inv, err := k.Invert(m)
	if err != nil {
		t.Fatalf("Invert returned error: %v", err)
	}

	var id mat.Dense
	id.Mul(m, inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := id.At(i, j); math.Abs(got-want) > 1e-8 {
				t.Errorf("M*Minv[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestInvert_IllConditionedStillFinite(t *testing.T) {
	k := NewKernel()
	m := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1e-9,
	})

	inv, err := k.Invert(m)
	if err != nil {
		t.Fatalf("Invert returned error for kappa below KappaMax: %v", err)
	}
	r, c := inv.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := inv.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("inverse has non-finite entry at (%d,%d): %v", i, j, v)
			}
		}
	}
}

func TestInvert_BeyondKappaMaxReturnsSingularPlantError(t *testing.T) {
	k := NewKernel()
	m := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1e-16,
	})

	_, err := k.Invert(m)
	var spe *SingularPlantError
	if !errors.As(err, &spe) {
		t.Fatalf("expected *SingularPlantError, got %v", err)
	}
}

func TestAlpha_MonotonicAcrossSoftThreshold(t *testing.T) {
	k := NewKernel()
	below := k.alpha(k.KappaSoft*0.5, 1, 1/(k.KappaSoft*0.5))
	atSoft := k.alpha(k.KappaSoft, 1, 1/k.KappaSoft)
	above := k.alpha(k.KappaSoft*10, 1, 1/(k.KappaSoft*10))

	if below != k.AlphaMin {
		t.Errorf("alpha below soft threshold = %v, want AlphaMin", below)
	}
	if atSoft < below {
		t.Errorf("alpha should not decrease across the soft threshold")
	}
	if above < atSoft {
		t.Errorf("alpha should grow as kappa grows past the soft threshold")
	}
}

func TestCondition_IdentityIsOne(t *testing.T) {
	k := NewKernel()
	m := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	if got := k.Condition(m); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Condition(I) = %v, want 1", got)
	}
}
