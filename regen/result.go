package regen

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
)

type Status uint8

const (
	Initializing Status = iota
	OuterIterating
	Converged
	MaxIterReached
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case OuterIterating:
		return "OuterIterating"
	case Converged:
		return "Converged"
	case MaxIterReached:
		return "MaxIterReached"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Stations holds the per-station geometry and gas references, fixed for a run.
type Stations struct {
	X, R      []float64
	AreaRatio []float64 // At/A
	WallArea  []float64 // wall frustum between i and i+1, last is zero
	Mach      []float64
	Prandtl   []float64
	Gamma     []float64
	Channel   *channel.Geometry
}

func (st *Stations) Len() int { return len(st.X) }

// ThermalField is the solution at every station. Index 0 is the injector end;
// the coolant enters at the last index and flows toward index 0.
type ThermalField struct {
	Twg, Twc []float64 // gas and coolant side wall temperatures, K
	Tc       []float64 // coolant bulk temperature, K
	Taw      []float64 // adiabatic wall temperature, K
	Q        []float64 // wall heat flux, W/m^2
	Hg, Hc   []float64 // film coefficients, W/(m^2 K); Hc includes fin enhancement
	Eta      []float64 // rib surface efficiency
	Reynolds []float64
	Velocity []float64 // coolant, m/s

	// Coolant properties at (Tc, P)
	Cp, Mu, K, Rho []float64

	// P is the coolant pressure. Without pressure drop coupling it is the assumed
	// profile and the loss components are nil.
	P                            []float64
	DpFriction, DpLocal, DpAccel []float64
	FrictionFactor               []float64
}

func newThermalField(n int, pressureDrop bool) (f *ThermalField) {
	f = &ThermalField{}
	for _, p := range []*[]float64{&f.Twg, &f.Twc, &f.Tc, &f.Taw, &f.Q, &f.Hg, &f.Hc, &f.Eta,
		&f.Reynolds, &f.Velocity, &f.Cp, &f.Mu, &f.K, &f.Rho, &f.P} {
		*p = make([]float64, n)
	}
	if pressureDrop {
		for _, p := range []*[]float64{&f.DpFriction, &f.DpLocal, &f.DpAccel, &f.FrictionFactor} {
			*p = make([]float64, n)
		}
	}
	return
}

type Result struct {
	Contour    *contour.Contour
	Stations   *Stations
	Field      *ThermalField
	Status     Status
	Converged  bool
	Iterations int
	Residual   float64   // last maximum relative change of Twg
	History    []float64 // residual per outer iteration
	// PressureMargin is the coolant pressure at the injector end less the required
	// injector pressure. Only set with pressure drop coupling.
	PressureMargin float64
}

func (r *Result) MaxWallTemperature() (t float64, station int) {
	station = floats.MaxIdx(r.Field.Twg)
	return r.Field.Twg[station], station
}

func (r *Result) MaxHeatFlux() (q float64, station int) {
	station = floats.MaxIdx(r.Field.Q)
	return r.Field.Q[station], station
}

// HeatLoad is the total heat passed into the coolant, W.
func (r *Result) HeatLoad() float64 {
	return floats.Dot(r.Field.Q, r.Stations.WallArea)
}

func (r *Result) CoolantTemperatureRise() float64 {
	return r.Field.Tc[0] - r.Field.Tc[len(r.Field.Tc)-1]
}

func (r *Result) PressureDrop() float64 {
	return r.Field.P[len(r.Field.P)-1] - r.Field.P[0]
}
