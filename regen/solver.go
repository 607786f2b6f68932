// Package regen solves the coupled gas side, wall and coolant heat transfer
// of a regeneratively cooled thrust chamber.
//
// The coolant enters at the nozzle exit end (last station) and flows toward the
// injector (station 0). Each outer iteration evaluates the gas side flux from the
// current wall temperature, marches the coolant energy balance, evaluates the
// coolant side film coefficient with rib fin efficiency, updates the wall
// temperatures and, when enabled, marches the coolant pressure. The gas side
// wall temperature is under-relaxed between iterations.
package regen

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/coolant"
	"github.com/notargets/regencool/correlations"
	"github.com/notargets/regencool/profile"
	"github.com/notargets/regencool/utils"
)

type Option func(*solver)

// WithLogger routes iteration progress to l instead of the standard logrus logger.
func WithLogger(l log.FieldLogger) Option {
	return func(s *solver) {
		if l != nil {
			s.log = l
		}
	}
}

type solver struct {
	cfg    Config
	ctr    *contour.Contour
	st     *Stations
	f      *ThermalField
	prov   coolant.Provider
	pm     *utils.PartitionMap
	log    log.FieldLogger
	status Status
	iter   int
	twgNew []float64
	mDot   float64 // per channel
}

// Solve generates the contour from the two nozzle sections at cfg.Stations
// stations and solves it.
func Solve(conv contour.ConvergentSection, div contour.DivergentSection, cfg Config,
	prov coolant.Provider, opts ...Option) (r *Result, err error) {
	cfg = cfg.WithDefaults()
	if err = cfg.Validate(); err != nil {
		return
	}
	var ctr *contour.Contour
	if ctr, err = contour.Generate(conv, div, cfg.Stations); err != nil {
		return nil, &Error{Kind: InvalidConfig, Station: -1, Err: err}
	}
	return SolveContour(ctr, cfg, prov, opts...)
}

// SolveContour solves an existing contour. cfg.Stations is replaced by the
// contour's station count. The contour is not modified.
func SolveContour(ctr *contour.Contour, cfg Config, prov coolant.Provider, opts ...Option) (r *Result, err error) {
	var s *solver
	if ctr == nil || ctr.Len() < 3 {
		return nil, configError("contour needs at least 3 stations")
	}
	if prov == nil {
		return nil, configError("no coolant property provider")
	}
	cfg = cfg.WithDefaults()
	cfg.Stations = ctr.Len()
	if err = cfg.Validate(); err != nil {
		return
	}
	if s, err = newSolver(ctr, cfg, prov, opts...); err != nil {
		return
	}
	if err = s.initialize(); err != nil {
		return
	}
	return s.run()
}

func newSolver(ctr *contour.Contour, cfg Config, prov coolant.Provider, opts ...Option) (s *solver, err error) {
	var (
		n = ctr.Len()
		g = cfg.Gas
	)
	s = &solver{
		cfg:    cfg,
		ctr:    ctr,
		prov:   prov,
		log:    log.StandardLogger(),
		pm:     utils.NewPartitionMap(cfg.ParallelDegree, n),
		f:      newThermalField(n, cfg.PressureDrop),
		twgNew: make([]float64, n),
		st: &Stations{
			X:         ctr.X,
			R:         ctr.R,
			AreaRatio: make([]float64, n),
			WallArea:  ctr.WallAreas(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.st.AreaRatio {
		s.st.AreaRatio[i] = ctr.AreaRatio(i)
	}
	for _, p := range []struct {
		name string
		dst  *[]float64
		ref  [3]float64
	}{
		{"Mach", &s.st.Mach, [3]float64{g.Chamber.Mach, g.Throat.Mach, g.Exit.Mach}},
		{"Prandtl", &s.st.Prandtl, [3]float64{g.Chamber.Prandtl, g.Throat.Prandtl, g.Exit.Prandtl}},
		{"gamma", &s.st.Gamma, [3]float64{g.Chamber.Gamma, g.Throat.Gamma, g.Exit.Gamma}},
	} {
		if *p.dst, err = profile.Generate(ctr, p.ref[0], p.ref[1], p.ref[2]); err != nil {
			return nil, &Error{Kind: InvalidConfig, Station: -1, Err: fmt.Errorf("%s profile: %w", p.name, err)}
		}
	}
	if s.st.Channel, err = channel.Build(ctr, cfg.Wall.Thickness, cfg.Channel.Heights, cfg.Channel.Sizing); err != nil {
		return nil, &Error{Kind: InvalidConfig, Station: -1, Err: err}
	}
	s.mDot = cfg.Coolant.MassFlow / float64(s.st.Channel.NC)
	return
}

func (s *solver) initialize() (err error) {
	var (
		c      = s.cfg.Coolant
		f      = s.f
		pInj   = c.InjectorPressureRatio * s.cfg.Gas.ChamberPressure
		x0, xL = s.st.X[0], s.st.X[s.st.Len()-1]
	)
	s.status = Initializing
	for i := range f.Twg {
		f.Twg[i], f.Twc[i], f.Tc[i] = c.InletTemperature, c.InletTemperature, c.InletTemperature
		if s.cfg.PressureDrop {
			f.P[i] = pInj
		} else {
			f.P[i] = pInj + (c.InletPressure-pInj)*(s.st.X[i]-x0)/(xL-x0)
		}
	}
	s.log.WithFields(log.Fields{
		"stations": s.st.Len(),
		"channels": s.st.Channel.NC,
		"sizing":   s.cfg.Channel.Sizing,
		"throatA":  s.st.Channel.RefA[channel.Throat],
		"length":   xL - x0,
		"parallel": s.pm.ParallelDegree,
	}).Info("regenerative cooling solve")
	return s.updateProperties()
}

func (s *solver) run() (r *Result, err error) {
	var (
		cfg      = s.cfg
		f        = s.f
		history  []float64
		residual float64
		imax     int
	)
	for s.iter = 1; s.iter <= cfg.MaxIter; s.iter++ {
		s.status = OuterIterating
		for _, step := range []func() error{
			s.gasSide,
			s.marchCoolantTemperature,
			s.updateProperties,
			s.coolantSide,
			s.wallTemperatures,
			s.marchPressure,
			s.checkFinite,
		} {
			if err = step(); err != nil {
				s.log.WithError(err).Error("solve failed")
				return nil, err
			}
		}
		residual, imax = utils.MaxRelativeChange(s.twgNew, f.Twg)
		history = append(history, residual)
		s.log.WithFields(log.Fields{
			"iteration": s.iter,
			"residual":  residual,
			"station":   imax,
			"Twg":       s.twgNew[imax],
		}).Debug("outer iteration")
		if residual < WallTemperatureTolerance {
			copy(f.Twg, s.twgNew)
			s.status = Converged
			break
		}
		for i := range f.Twg {
			f.Twg[i] = (1-cfg.Stability)*f.Twg[i] + cfg.Stability*s.twgNew[i]
		}
	}
	if s.status != Converged {
		s.status = MaxIterReached
		s.iter = cfg.MaxIter
	}
	r = &Result{
		Contour:    s.ctr,
		Stations:   s.st,
		Field:      f,
		Status:     s.status,
		Converged:  s.status == Converged,
		Iterations: s.iter,
		Residual:   residual,
		History:    history,
	}
	twMax, iMax := r.MaxWallTemperature()
	fields := log.Fields{
		"status":     s.status,
		"iterations": s.iter,
		"residual":   residual,
		"maxTwg":     twMax,
		"maxTwgAt":   iMax,
		"heatLoad":   r.HeatLoad(),
	}
	if cfg.PressureDrop {
		r.PressureMargin = f.P[0] - cfg.Coolant.InjectorPressureRatio*cfg.Gas.ChamberPressure
		fields["pressureMargin"] = r.PressureMargin
		if r.PressureMargin < 0 {
			s.log.WithFields(fields).Warn("coolant pressure at the injector is below the required feed pressure")
		}
	}
	if r.Converged {
		s.log.WithFields(fields).Info("converged")
	} else {
		s.log.WithFields(fields).Warn("maximum iterations reached before convergence")
	}
	return
}

func (s *solver) numeric(station int, format string, args ...any) *Error {
	return &Error{Kind: NumericDomain, Station: station, Iteration: s.iter, Err: fmt.Errorf(format, args...)}
}

func (s *solver) gasSide() error {
	var (
		g   = s.cfg.Gas
		f   = s.f
		st  = s.st
		eps = s.cfg.Wall.Emissivity
		rc  float64
	)
	if s.cfg.CurvatureCorrection {
		rc = s.ctr.ThroatCurvature
	}
	return s.pm.Execute(func(kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			f.Taw[i] = correlations.RecoveryTemperature(g.ChamberTemperature, st.Prandtl[i], st.Gamma[i], st.Mach[i])
			f.Hg[i] = correlations.Bartz(correlations.BartzInput{
				ThroatRadius:    s.ctr.ThroatRadius,
				ThroatCurvature: rc,
				Viscosity:       g.Viscosity,
				Cp:              g.Cp,
				Prandtl:         g.Prandtl,
				ChamberPressure: g.ChamberPressure,
				CStar:           g.CStar,
				ChamberTemp:     g.ChamberTemperature,
				WallTemp:        f.Twg[i],
				Mach:            st.Mach[i],
				Gamma:           st.Gamma[i],
				AreaRatio:       st.AreaRatio[i],
				Tuning:          s.cfg.TuningFactor,
			})
			f.Q[i] = f.Hg[i] * (f.Taw[i] - f.Twg[i])
			if s.cfg.Radiation {
				f.Q[i] += correlations.RadiativeFlux(eps, f.Taw[i]) - correlations.RadiativeFlux(eps, f.Twc[i])
			}
			if math.IsNaN(f.Q[i]) || math.IsInf(f.Q[i], 0) {
				return s.numeric(i, "gas side heat flux is %g", f.Q[i])
			}
		}
		return nil
	})
}

// marchCoolantTemperature integrates the coolant energy balance from the inlet
// at the last station toward the injector.
func (s *solver) marchCoolantTemperature() error {
	var (
		f    = s.f
		n    = s.st.Len()
		mDot = s.cfg.Coolant.MassFlow
	)
	f.Tc[n-1] = s.cfg.Coolant.InletTemperature
	for i := n - 2; i >= 0; i-- {
		f.Tc[i] = f.Tc[i+1] + f.Q[i]*s.st.WallArea[i]/(mDot*f.Cp[i])
		if !(f.Tc[i] > 0) || math.IsInf(f.Tc[i], 0) {
			return s.numeric(i, "coolant temperature is %g", f.Tc[i])
		}
	}
	return nil
}

func (s *solver) updateProperties() error {
	f := s.f
	return s.pm.Execute(func(kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			state, err := s.prov.Properties(f.Tc[i], f.P[i])
			if err != nil {
				return &Error{Kind: ProviderFailure, Station: i, Iteration: s.iter, Err: err}
			}
			f.Cp[i], f.Mu[i], f.K[i], f.Rho[i] = state.Cp, state.Mu, state.K, state.Rho
		}
		return nil
	})
}

// coolantSide evaluates the Dittus-Boelter film coefficient and iterates the rib
// fin enhancement on it until it settles.
func (s *solver) coolantSide() error {
	var (
		f  = s.f
		ch = s.st.Channel
	)
	return s.pm.Execute(func(kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			var (
				a, b, delta = ch.A[i], ch.B[i], ch.Delta[i]
				G           = s.mDot / (a * b)
				dh          = correlations.HydraulicDiameter(a, b)
				re          = G * dh / f.Mu[i]
				pr          = f.Cp[i] * f.Mu[i] / f.K[i]
				h0          = correlations.DittusBoelter(re, pr) * f.K[i] / dh
				hc          = h0
				eta, enh    float64
			)
			f.Reynolds[i], f.Velocity[i] = re, G/f.Rho[i]
			for j := 0; j < s.cfg.MaxIter; j++ {
				eta, enh = correlations.FinEfficiency(a, b, delta, hc, s.cfg.Wall.Conductivity, s.cfg.FinTuning)
				hNew := h0 * enh
				change := utils.RelativeChange(hNew, hc)
				hc = hNew
				if change < FilmCoefficientTolerance {
					break
				}
			}
			f.Hc[i], f.Eta[i] = hc, eta
			if !(hc > 0) || math.IsInf(hc, 0) {
				return s.numeric(i, "coolant film coefficient is %g (Re=%g, Pr=%g)", hc, re, pr)
			}
		}
		return nil
	})
}

func (s *solver) wallTemperatures() error {
	var (
		f  = s.f
		tk = s.cfg.Wall.Thickness / s.cfg.Wall.Conductivity
	)
	return s.pm.Execute(func(kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			f.Twc[i] = f.Tc[i] + f.Q[i]/f.Hc[i]
			s.twgNew[i] = f.Twc[i] + f.Q[i]*tk
			if !(s.twgNew[i] > 0) {
				return s.numeric(i, "gas side wall temperature is %g", s.twgNew[i])
			}
		}
		return nil
	})
}

// marchPressure integrates the coolant pressure from the inlet toward the
// injector. Each segment loses friction, a sudden expansion or contraction loss
// and the momentum change of the mass flux.
func (s *solver) marchPressure() (err error) {
	if !s.cfg.PressureDrop {
		return
	}
	var (
		f  = s.f
		ch = s.st.Channel
		n  = s.st.Len()
		rr = s.cfg.Coolant.Roughness
	)
	if err = s.pm.Execute(func(kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			dh := correlations.HydraulicDiameter(ch.A[i], ch.B[i])
			ff, err := correlations.Friction(s.cfg.Friction, f.Reynolds[i], rr/dh)
			if err != nil {
				return s.numeric(i, "%w", err)
			}
			f.FrictionFactor[i] = ff
		}
		return nil
	}); err != nil {
		return
	}
	dynamic := func(i int) float64 {
		return 0.5 * f.Rho[i] * f.Velocity[i] * f.Velocity[i]
	}
	f.P[n-1] = s.cfg.Coolant.InletPressure
	f.DpFriction[n-1], f.DpLocal[n-1], f.DpAccel[n-1] = 0, 0, 0
	for i := n - 2; i >= 0; i-- {
		var (
			up     = i + 1
			ds     = math.Hypot(s.st.X[up]-s.st.X[i], s.st.R[up]-s.st.R[i])
			a1, a2 = ch.FlowArea(up), ch.FlowArea(i)
			g1, g2 = s.mDot / a1, s.mDot / a2
			perLen = func(k int) float64 {
				return f.FrictionFactor[k] / correlations.HydraulicDiameter(ch.A[k], ch.B[k]) * dynamic(k)
			}
		)
		f.DpFriction[i] = 0.5 * (perLen(up) + perLen(i)) * ds
		switch {
		case a2 > a1:
			f.DpLocal[i] = correlations.SuddenExpansion(a1, a2) * dynamic(up)
		case a2 < a1:
			f.DpLocal[i] = correlations.SuddenContraction(a1, a2) * dynamic(i)
		default:
			f.DpLocal[i] = 0
		}
		f.DpAccel[i] = g2*g2/f.Rho[i] - g1*g1/f.Rho[up]
		f.P[i] = f.P[up] - f.DpFriction[i] - f.DpLocal[i] - f.DpAccel[i]
		if !(f.P[i] > 0) {
			return s.numeric(i, "coolant pressure fell to %g Pa", f.P[i])
		}
	}
	return
}

func (s *solver) checkFinite() error {
	f := s.f
	for _, v := range []struct {
		name string
		a    []float64
	}{
		{"Twg", s.twgNew}, {"Twc", f.Twc}, {"Tc", f.Tc}, {"q", f.Q},
		{"hg", f.Hg}, {"hc", f.Hc}, {"p", f.P},
	} {
		if i := utils.FirstNonFinite(v.a); i >= 0 {
			return s.numeric(i, "%s is %g", v.name, v.a[i])
		}
	}
	return nil
}
