package regen

import (
	"fmt"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/correlations"
)

const (
	DefaultStability      = 0.5
	DefaultMaxIter        = 200
	DefaultStations       = 200
	DefaultTuningFactor   = 1.0
	DefaultFinTuning      = 1.0
	DefaultParallelDegree = 1

	// Outer loop stops when every station's gas side wall temperature changes by
	// less than this fraction.
	WallTemperatureTolerance = 0.05
	// Fin efficiency loop stops when every station's coolant film coefficient
	// changes by less than this fraction.
	FilmCoefficientTolerance = 0.01
)

// Reference holds the gas state at one of the chamber, throat and exit stations.
type Reference struct {
	Mach, Prandtl, Gamma float64
}

type GasConditions struct {
	ChamberTemperature float64 // K
	ChamberPressure    float64 // Pa
	CStar              float64 // m/s
	// Chamber transport properties used by the Bartz correlation
	Viscosity, Cp, Prandtl float64
	Chamber, Throat, Exit  Reference
}

type WallConditions struct {
	Thickness    float64 // m
	Conductivity float64 // W/(m K)
	Emissivity   float64 // used when radiation is enabled
}

type CoolantConditions struct {
	InletTemperature float64 // K, at the nozzle exit end
	InletPressure    float64 // Pa, at the nozzle exit end
	MassFlow         float64 // kg/s, all channels
	Roughness        float64 // m, absolute
	// Coolant pressure required at the injector end as a fraction of chamber
	// pressure. Used for the initial pressure guess and the pressure margin.
	InjectorPressureRatio float64
}

type ChannelConditions struct {
	Heights [3]float64 // chamber, throat, exit
	Sizing  channel.Sizing
}

// Config is every scalar input of one solver run. It is passed by value and
// never modified by the solver.
type Config struct {
	Gas     GasConditions
	Wall    WallConditions
	Coolant CoolantConditions
	Channel ChannelConditions

	Stations     int
	MaxIter      int
	Stability    float64 // under-relaxation weight of the new iterate, (0, 1]
	TuningFactor float64 // divisor on the Bartz coefficient
	FinTuning    float64 // multiplier on the fin parameter
	Radiation    bool
	// CurvatureCorrection applies the Bartz (Dt/Rc)^0.1 factor from the
	// contour's throat curvature. Off by default.
	CurvatureCorrection bool
	PressureDrop        bool
	Friction            correlations.Correlation // required when PressureDrop is set
	ParallelDegree      int
}

// WithDefaults returns a copy of cfg with unset solver controls defaulted.
func (cfg Config) WithDefaults() Config {
	if cfg.Stations == 0 {
		cfg.Stations = DefaultStations
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = DefaultMaxIter
	}
	if cfg.Stability == 0 {
		cfg.Stability = DefaultStability
	}
	if cfg.TuningFactor == 0 {
		cfg.TuningFactor = DefaultTuningFactor
	}
	if cfg.FinTuning == 0 {
		cfg.FinTuning = DefaultFinTuning
	}
	if cfg.ParallelDegree == 0 {
		cfg.ParallelDegree = DefaultParallelDegree
	}
	return cfg
}

func positive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%s must be positive, have %g", name, v)
	}
	return nil
}

// Validate checks cfg after defaulting. It does not look at the channel sizing,
// which is resolved against the contour by channel.Build.
func (cfg Config) Validate() error {
	var (
		g = cfg.Gas
		c = cfg.Coolant
	)
	checks := []error{
		positive("chamber temperature", g.ChamberTemperature),
		positive("chamber pressure", g.ChamberPressure),
		positive("characteristic velocity", g.CStar),
		positive("chamber gas viscosity", g.Viscosity),
		positive("chamber gas specific heat", g.Cp),
		positive("chamber gas Prandtl number", g.Prandtl),
		positive("wall thickness", cfg.Wall.Thickness),
		positive("wall conductivity", cfg.Wall.Conductivity),
		positive("coolant inlet temperature", c.InletTemperature),
		positive("coolant inlet pressure", c.InletPressure),
		positive("coolant mass flow", c.MassFlow),
		positive("injector pressure ratio", c.InjectorPressureRatio),
		positive("tuning factor", cfg.TuningFactor),
		positive("fin tuning factor", cfg.FinTuning),
	}
	for _, err := range checks {
		if err != nil {
			return configError("%v", err)
		}
	}
	for _, ref := range []struct {
		name string
		r    Reference
	}{{"chamber", g.Chamber}, {"throat", g.Throat}, {"exit", g.Exit}} {
		if !(ref.r.Mach >= 0) || !(ref.r.Prandtl > 0) || !(ref.r.Gamma > 1) {
			return configError("%s reference needs Mach >= 0, Prandtl > 0 and gamma > 1, have %+v",
				ref.name, ref.r)
		}
	}
	switch {
	case c.Roughness < 0:
		return configError("roughness must not be negative, have %g", c.Roughness)
	case cfg.Wall.Emissivity < 0 || cfg.Wall.Emissivity > 1:
		return configError("wall emissivity must lie in [0, 1], have %g", cfg.Wall.Emissivity)
	case cfg.Stations < 3:
		return configError("need at least 3 stations, have %d", cfg.Stations)
	case cfg.MaxIter < 1:
		return configError("maximum iteration count must be at least 1, have %d", cfg.MaxIter)
	case !(cfg.Stability > 0 && cfg.Stability <= 1):
		return configError("stability must lie in (0, 1], have %g", cfg.Stability)
	case cfg.ParallelDegree < 1:
		return configError("parallel degree must be at least 1, have %d", cfg.ParallelDegree)
	case cfg.PressureDrop && cfg.Friction == correlations.NoCorrelation:
		return configError("pressure drop coupling needs a friction correlation")
	}
	return nil
}
