// Package correlations holds the closed-form heat transfer and friction
// correlations used by the regenerative cooling solver. Units are SI throughout.
package correlations

import (
	"math"

	"github.com/notargets/regencool/utils"
)

const StefanBoltzmann = 5.670374419e-8 // W/(m^2 K^4)

// BartzInput collects the chamber reference properties and the local state at
// one station.
type BartzInput struct {
	ThroatRadius    float64
	ThroatCurvature float64 // throat wall radius of curvature, 0 drops the curvature term
	Viscosity       float64 // chamber gas dynamic viscosity
	Cp              float64 // chamber gas specific heat
	Prandtl         float64 // chamber gas Prandtl number
	ChamberPressure float64
	CStar           float64
	ChamberTemp     float64
	WallTemp        float64 // gas side wall temperature
	Mach, Gamma     float64 // local
	AreaRatio       float64 // At/A, local
	Tuning          float64 // divisor applied to the result, 1 when zero
}

// Bartz returns the gas side heat transfer coefficient.
func Bartz(in BartzInput) (h float64) {
	var (
		dt     = 2 * in.ThroatRadius
		mFac   = 1 + 0.5*(in.Gamma-1)*in.Mach*in.Mach
		sigma  = math.Pow(0.5*in.WallTemp/in.ChamberTemp*mFac+0.5, -0.68) * math.Pow(mFac, -0.12)
		curv   = 1.
		tuning = in.Tuning
	)
	if in.ThroatCurvature > 0 {
		curv = math.Pow(dt/in.ThroatCurvature, 0.1)
	}
	if tuning == 0 {
		tuning = 1
	}
	h = 0.026 / math.Pow(dt, 0.2) *
		math.Pow(in.Viscosity, 0.2) * in.Cp / math.Pow(in.Prandtl, 0.6) *
		math.Pow(in.ChamberPressure/in.CStar, 0.8) * curv *
		math.Pow(in.AreaRatio, 0.9) * sigma
	return h / tuning
}

// RecoveryTemperature is the adiabatic wall temperature for a turbulent boundary
// layer, recovery factor Pr^(1/3).
func RecoveryTemperature(t0, pr, gamma, mach float64) float64 {
	var (
		r  = math.Cbrt(pr)
		m2 = 0.5 * (gamma - 1) * mach * mach
	)
	return t0 * (1 + r*m2) / (1 + m2)
}

func RadiativeFlux(emissivity, t float64) float64 {
	return emissivity * StefanBoltzmann * utils.POW(t, 4)
}
