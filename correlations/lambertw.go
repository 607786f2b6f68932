package correlations

import "math"

// LambertW0 is the principal branch of the Lambert W function, w exp(w) = z,
// defined for z >= -1/e.
func LambertW0(z float64) float64 {
	const branch = -1 / math.E
	switch {
	case math.IsNaN(z) || z < branch:
		return math.NaN()
	case z == branch:
		return -1
	case z == 0:
		return 0
	case math.IsInf(z, 1):
		return z
	case z > 1.e2:
		return lambertW0Exp(math.Log(z))
	}
	var w float64
	switch {
	case z < -0.25:
		p := math.Sqrt(2 * (math.E*z + 1))
		w = -1 + p - p*p/3 + 11./72.*p*p*p
	default:
		l := math.Log1p(z)
		w = l * (1 - math.Log1p(l)/(2+l))
	}
	// Halley iteration
	for i := 0; i < 50; i++ {
		ew := math.Exp(w)
		f := w*ew - z
		if f == 0 {
			break
		}
		wp1 := w + 1
		wn := w - f/(ew*wp1-(w+2)*f/(2*wp1))
		if math.Abs(wn-w) <= 1.e-15*(1+math.Abs(wn)) {
			return wn
		}
		w = wn
	}
	return w
}

// lambertW0Exp returns W0(exp(L)) without forming exp(L), solving w + ln(w) = L.
func lambertW0Exp(L float64) float64 {
	if L < 1 {
		return LambertW0(math.Exp(L))
	}
	w := L - math.Log(L)
	for i := 0; i < 50; i++ {
		wn := w * (1 + L - math.Log(w)) / (1 + w)
		if math.Abs(wn-w) <= 1.e-15*wn {
			return wn
		}
		w = wn
	}
	return w
}
