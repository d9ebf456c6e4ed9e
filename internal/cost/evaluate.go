package cost

import (
	"math"

	"github.com/san-kum/dipsmc-pso/internal/batch"
)

// trackedIndices are the cart-position, theta1, theta2 components of a
// dynamics.State, the "tracked sub-state" the tracking term integrates.
var trackedIndices = [3]int{0, 1, 2}

// EvaluateTrajectory computes the single-trajectory cost J from §4.6:
//
//	J = we*Etilde + wu*Utilde + wudot*Atilde + wsigma*Sigmatilde + wstab*stab
//
// using rectangle integration at the trajectory's fixed step dt. If the
// trajectory never failed, the stability term is exactly 0.
func EvaluateTrajectory(traj batch.Trajectory, dt float64, w Weights, n NormConstants) float64 {
	steps := len(traj.Controls)
	if steps == 0 {
		return w.Stability * n.Pinst
	}

	trackSq := 0.0
	for i := 0; i < steps; i++ {
		x := traj.States[i]
		for _, idx := range trackedIndices {
			trackSq += x[idx] * x[idx]
		}
	}
	eTilde := (dt / n.Ne) * trackSq

	uSq := 0.0
	for _, u := range traj.Controls {
		uSq += float64(u) * float64(u)
	}
	uTilde := (dt / n.Nu) * uSq

	aSq := 0.0
	for i := 1; i < steps; i++ {
		du := (float64(traj.Controls[i]) - float64(traj.Controls[i-1])) / dt
		aSq += du * du
	}
	aTilde := (dt / n.NuDot) * aSq

	sigmaSq := 0.0
	for _, s := range traj.Sigma {
		if !math.IsNaN(s) {
			sigmaSq += s * s
		}
	}
	sigmaTilde := (dt / n.NSigma) * sigmaSq

	stab := 0.0
	if traj.Failed {
		T := float64(steps) * dt
		if T > 0 {
			stab = ((T - traj.TFail) / T) * n.Pinst
		} else {
			stab = n.Pinst
		}
	}

	return w.Tracking*eTilde + w.Control*uTilde + w.ControlRate*aTilde + w.Sigma*sigmaTilde + w.Stability*stab
}
