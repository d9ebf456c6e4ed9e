package smc

import "math"

// adaptiveLawStep advances a single adaptive switching gain by one step
// under the shared dead-zone leaky law used by [AdaptiveSMC] and the
// hybrid variant's two adaptive gains: growth proportional to |sigma|
// outside the dead zone, pure leak toward target inside it, both
// rate-limited and box-clipped.
func adaptiveLawStep(current, target, gamma, leak, rateLimit, kMin, kMax, sigma, deadZone, dt float64) float64 {
	var kdot float64
	if math.Abs(sigma) > deadZone {
		kdot = gamma*math.Abs(sigma) - leak*(current-target)
	} else {
		kdot = -leak * (current - target)
	}
	if rateLimit > 0 {
		kdot = clip(kdot, -rateLimit, rateLimit)
	}
	return clip(current+kdot*dt, kMin, kMax)
}
