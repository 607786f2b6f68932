package correlations

import "math"

// HydraulicDiameter of a rectangular channel of width a and height b.
func HydraulicDiameter(a, b float64) float64 {
	return 2 * a * b / (a + b)
}

// DittusBoelter is the heated-fluid Nusselt number 0.023 Re^0.8 Pr^0.4.
func DittusBoelter(re, pr float64) float64 {
	return 0.023 * math.Pow(re, 0.8) * math.Pow(pr, 0.4)
}

// FinEfficiency treats the ribs between channels of width a, height b and rib
// width delta as straight fins with adiabatic tips. It returns the overall surface
// efficiency eta in (0, 1] and the enhancement applied to the coolant side film
// coefficient, a/(a+delta) + 2b/(a+delta)*tanh(xi)/xi, which refers the wetted
// channel surface to the pitch a+delta. tuning scales the fin parameter xi.
func FinEfficiency(a, b, delta, h, lambda, tuning float64) (eta, enhancement float64) {
	var (
		xi = tuning * b * math.Sqrt(2*h/(delta*lambda))
		th = 1.
	)
	if xi > 1.e-8 {
		th = math.Tanh(xi) / xi
	}
	eta = (a + 2*b*th) / (a + 2*b)
	enhancement = (a + 2*b*th) / (a + delta)
	return
}
