package numerics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default thresholds from spec; see NewKernel.
const (
	DefaultKappaSoft  = 1e8
	DefaultKappaMax   = 1e14
	DefaultAlphaMin   = 1e-10
	DefaultRegCondCap = 1e10
)

// Kernel inverts dense symmetric inertia matrices that may approach a
// kinematic singularity, trading a small, condition-number-scaled bias
// for guaranteed invertibility. See package doc for the algorithm.
type Kernel struct {
	KappaSoft  float64 // below this, no regularization bias beyond AlphaMin
	KappaMax   float64 // above this, Invert refuses and returns SingularPlantError
	AlphaMin   float64 // regularizer floor
	RegCondCap float64 // the regularized matrix's condition number is kept at or below this
}

// NewKernel returns a Kernel configured with the spec's default thresholds.
func NewKernel() *Kernel {
	return &Kernel{
		KappaSoft:  DefaultKappaSoft,
		KappaMax:   DefaultKappaMax,
		AlphaMin:   DefaultAlphaMin,
		RegCondCap: DefaultRegCondCap,
	}
}

// Condition returns cond(m) = sigma_max / sigma_min via SVD. A matrix with
// a zero singular value reports +Inf.
func (k *Kernel) Condition(m *mat.Dense) float64 {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return math.Inf(1)
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return math.Inf(1)
	}
	sMax := values[0]
	sMin := values[len(values)-1]
	if sMin <= 0 {
		return math.Inf(1)
	}
	return sMax / sMin
}

// alpha computes the adaptive Tikhonov regularizer for a matrix whose raw
// condition number is kappa, given its extremal singular values.
func (k *Kernel) alpha(kappa, sMax, sMin float64) float64 {
	if kappa <= k.KappaSoft {
		return k.AlphaMin
	}
	a := k.AlphaMin * (kappa / k.KappaSoft)
	// Ensure the regularized matrix's condition number, approximately
	// (sMax+a)/(sMin+a), does not exceed RegCondCap. Since that ratio is
	// monotonically decreasing in a, the cap is enforced by raising a to
	// at least the value that achieves equality, never by lowering it.
	if k.RegCondCap > 1 {
		denom := k.RegCondCap - 1
		needed := (sMax - k.RegCondCap*sMin) / denom
		if needed > a {
			a = needed
		}
	}
	if a < k.AlphaMin {
		a = k.AlphaMin
	}
	return a
}

// Invert returns the regularized inverse of m. For well-conditioned
// matrices (kappa <= KappaSoft) it solves directly; for ill-conditioned
// ones it adds an adaptive Tikhonov term and falls back to an SVD-based
// pseudoinverse. It returns a *SingularPlantError if kappa exceeds
// KappaMax, or if the result contains a non-finite entry.
func (k *Kernel) Invert(m *mat.Dense) (*mat.Dense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, NewSingularPlantError(math.Inf(1), k.KappaMax)
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDFull) {
		return nil, NewSingularPlantError(math.Inf(1), k.KappaMax)
	}
	values := svd.Values(nil)
	sMax, sMin := values[0], values[len(values)-1]

	var kappa float64
	if sMin <= 0 {
		kappa = math.Inf(1)
	} else {
		kappa = sMax / sMin
	}
	if kappa > k.KappaMax {
		return nil, NewSingularPlantError(kappa, k.KappaMax)
	}

	a := k.alpha(kappa, sMax, sMin)

	reg := mat.NewDense(r, r, nil)
	reg.Copy(m)
	for i := 0; i < r; i++ {
		reg.Set(i, i, reg.At(i, i)+a)
	}

	var inv *mat.Dense
	if kappa <= k.KappaSoft {
		inv = mat.NewDense(r, r, nil)
		ident := identity(r)
		if err := inv.Solve(reg, ident); err != nil {
			inv = pseudoInverse(reg, r)
		}
	} else {
		inv = pseudoInverse(reg, r)
	}
	if inv == nil || !isFinite(inv) {
		return nil, NewSingularPlantError(kappa, k.KappaMax)
	}
	return inv, nil
}

// pseudoInverse computes V * diag(1/s_i) * U^T from a fresh SVD of m.
func pseudoInverse(m *mat.Dense, n int) *mat.Dense {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDFull) {
		return nil
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sInv := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		if values[i] > 0 {
			sInv.Set(i, i, 1/values[i])
		}
	}

	var tmp mat.Dense
	tmp.Mul(&v, sInv)
	var out mat.Dense
	out.Mul(&tmp, u.T())
	result := mat.NewDense(n, n, nil)
	result.Copy(&out)
	return result
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

func isFinite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
