package regen

import (
	"errors"
	"io"
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/coolant"
	"github.com/notargets/regencool/correlations"
)

func quiet() Option {
	l := log.New()
	l.SetOutput(io.Discard)
	return WithLogger(l)
}

func nozzleSections() (contour.ConvergentSection, contour.DivergentSection) {
	return contour.ConvergentSection{
			ThroatArea:         math.Pi * 0.02 * 0.02,
			ContractionRatio:   6,
			ChamberLength:      0.15,
			ContractionAngle:   30,
			ConvergentArcRatio: 1.5,
			ConcaveArcRatio:    0.5,
		}, contour.DivergentSection{
			ExpansionRatio:    6,
			DivergentArcRatio: 0.382,
			InitialAngle:      15,
			Shape:             contour.Conical,
		}
}

func ductSections() (contour.ConvergentSection, contour.DivergentSection) {
	return contour.ConvergentSection{
			ThroatArea:       math.Pi * 0.02 * 0.02,
			ContractionRatio: 1,
			ChamberLength:    0.2,
		}, contour.DivergentSection{
			ExpansionRatio: 1,
			Length:         0.2,
		}
}

func testConfig() Config {
	return Config{
		Gas: GasConditions{
			ChamberTemperature: 3000,
			ChamberPressure:    1.e6,
			CStar:              1600,
			Viscosity:          8.e-5,
			Cp:                 2000,
			Prandtl:            0.7,
			Chamber:            Reference{Mach: 0.1, Prandtl: 0.7, Gamma: 1.2},
			Throat:             Reference{Mach: 1, Prandtl: 0.7, Gamma: 1.2},
			Exit:               Reference{Mach: 2.7, Prandtl: 0.7, Gamma: 1.22},
		},
		Wall: WallConditions{Thickness: 0.001, Conductivity: 350, Emissivity: 0.8},
		Coolant: CoolantConditions{
			InletTemperature:      300,
			InletPressure:         3.e6,
			MassFlow:              2,
			Roughness:             1.e-6,
			InjectorPressureRatio: 1.2,
		},
		Channel: ChannelConditions{
			Heights: [3]float64{0.003, 0.002, 0.003},
			Sizing:  channel.ChannelCount{NC: 40, Rib: [3]float64{0.001, 0.001, 0.001}},
		},
		Stations: 100,
	}
}

func waterLike(t *testing.T) coolant.Provider {
	p, err := coolant.NewConstant("water-like", coolant.State{Cp: 4180, Mu: 8.5e-4, K: 0.61, Rho: 997})
	require.NoError(t, err)
	return p
}

func TestCylindricalDuctNoHeat(t *testing.T) {
	var (
		cfg        = testConfig()
		conv, div  = ductSections()
		stagnation = Reference{Mach: 0, Prandtl: 0.7, Gamma: 1.2}
	)
	cfg.Gas.ChamberTemperature = cfg.Coolant.InletTemperature
	cfg.Gas.Chamber, cfg.Gas.Throat, cfg.Gas.Exit = stagnation, stagnation, stagnation
	cfg.Channel.Heights = [3]float64{0.002, 0.002, 0.002}
	r, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.True(t, r.Converged)
	assert.Equal(t, Converged, r.Status)
	assert.Equal(t, 1, r.Iterations)
	for i := range r.Field.Q {
		assert.Equal(t, 0., r.Field.Q[i])
		assert.Equal(t, r.Field.Tc[i], r.Field.Twc[i])
		assert.Equal(t, cfg.Coolant.InletTemperature, r.Field.Tc[i])
		assert.Equal(t, cfg.Coolant.InletTemperature, r.Field.Twg[i])
	}
	assert.Equal(t, 0., r.HeatLoad())
}

func TestNozzle(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
	)
	r, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	require.True(t, r.Converged)
	n := r.Stations.Len()
	assert.Equal(t, cfg.Stations, n)
	assert.Less(t, r.Residual, WallTemperatureTolerance)
	assert.Len(t, r.History, r.Iterations)
	{ // Heat flows from the gas through the wall into the coolant
		for i := 0; i < n; i++ {
			f := r.Field
			assert.Greater(t, f.Q[i], 0., "station %d", i)
			assert.Greater(t, f.Taw[i], f.Twg[i], "station %d", i)
			assert.Greater(t, f.Twg[i], f.Twc[i], "station %d", i)
			assert.Greater(t, f.Twc[i], f.Tc[i], "station %d", i)
			assert.True(t, f.Eta[i] > 0 && f.Eta[i] <= 1)
		}
		_, iq := r.MaxHeatFlux()
		assert.InDelta(t, r.Contour.ThroatIndex, iq, float64(n)/10)
		assert.Nil(t, r.Field.DpFriction)
	}
	{ // Coolant enters at the exit end and warms toward the injector
		assert.Equal(t, cfg.Coolant.InletTemperature, r.Field.Tc[n-1])
		for i := 0; i < n-1; i++ {
			assert.GreaterOrEqual(t, r.Field.Tc[i], r.Field.Tc[i+1])
		}
		assert.Greater(t, r.CoolantTemperatureRise(), 0.)
	}
	{ // Energy absorbed by the coolant matches the heat through the wall
		var (
			load = r.HeatLoad()
			gain = cfg.Coolant.MassFlow * 4180 * r.CoolantTemperatureRise()
		)
		assert.InDelta(t, load, gain, 1.e-9*load)
	}
}

func TestDeterministic(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
	)
	r1, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	r2, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.Equal(t, r1.Field, r2.Field)
	cfg.ParallelDegree = 4
	r3, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.Equal(t, r1.Field, r3.Field)
	assert.Equal(t, r1.History, r3.History)
}

func TestConvergence(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
		prev      float64
		converged bool
	)
	cfg.MaxIter = 1
	r1, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.False(t, r1.Converged)
	assert.Equal(t, MaxIterReached, r1.Status)
	assert.Equal(t, 1, r1.Iterations)
	assert.Greater(t, r1.Residual, WallTemperatureTolerance)

	// The final residual never grows as the iteration cap is raised.
	for k := 1; k <= 50 && !converged; k++ {
		cfg.MaxIter = k
		r, err := Solve(conv, div, cfg, waterLike(t), quiet())
		require.NoError(t, err)
		assert.Len(t, r.History, r.Iterations)
		if k > 1 {
			assert.LessOrEqual(t, r.Residual, prev, "MaxIter=%d", k)
		}
		prev = r.Residual
		converged = r.Converged
	}
	assert.True(t, converged)
	assert.Less(t, prev, WallTemperatureTolerance)
}

func TestThroatFilmCoefficient(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
		g         = cfg.Gas
	)
	// One iteration leaves h_g evaluated at the initial wall temperature.
	cfg.MaxIter = 1
	r, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	var (
		i     = r.Contour.ThroatIndex
		st    = r.Stations
		dt    = 2 * r.Contour.ThroatRadius
		mFac  = 1 + 0.5*(st.Gamma[i]-1)*st.Mach[i]*st.Mach[i]
		twg   = cfg.Coolant.InletTemperature
		sigma = math.Pow(0.5*twg/g.ChamberTemperature*mFac+0.5, -0.68) * math.Pow(mFac, -0.12)
		hg    = 0.026 / math.Pow(dt, 0.2) * math.Pow(g.Viscosity, 0.2) * g.Cp / math.Pow(g.Prandtl, 0.6) *
			math.Pow(g.ChamberPressure/g.CStar, 0.8) * math.Pow(st.AreaRatio[i], 0.9) * sigma
	)
	{ // Default, no curvature factor
		require.Greater(t, r.Contour.ThroatCurvature, 0.)
		assert.InDelta(t, 1., st.AreaRatio[i], 1.e-9)
		assert.InDelta(t, hg, r.Field.Hg[i], 1.e-9*hg)
	}
	{ // Opt-in curvature factor scales every station by (Dt/Rc)^0.1
		cfg.CurvatureCorrection = true
		rc, err := Solve(conv, div, cfg, waterLike(t), quiet())
		require.NoError(t, err)
		fac := math.Pow(dt/r.Contour.ThroatCurvature, 0.1)
		assert.InDelta(t, hg*fac, rc.Field.Hg[i], 1.e-9*hg)
		for j := range r.Field.Hg {
			assert.InDelta(t, r.Field.Hg[j]*fac, rc.Field.Hg[j], 1.e-9*r.Field.Hg[j])
		}
	}
}

func TestRadiation(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
	)
	r1, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	cfg.Radiation = true
	r2, err := Solve(conv, div, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.True(t, r2.Converged)
	assert.Greater(t, r2.HeatLoad(), r1.HeatLoad())
}

func TestPressureDrop(t *testing.T) {
	{ // Uniform channels with constant density lose pressure monotonically
		var (
			cfg       = testConfig()
			conv, div = ductSections()
			ref       = Reference{Mach: 0.3, Prandtl: 0.7, Gamma: 1.2}
		)
		cfg.Gas.Chamber, cfg.Gas.Throat, cfg.Gas.Exit = ref, ref, ref
		cfg.Channel.Heights = [3]float64{0.002, 0.002, 0.002}
		cfg.PressureDrop = true
		cfg.Friction = correlations.Moody
		r, err := Solve(conv, div, cfg, waterLike(t), quiet())
		require.NoError(t, err)
		f := r.Field
		n := len(f.P)
		assert.Equal(t, cfg.Coolant.InletPressure, f.P[n-1])
		for i := 0; i < n-1; i++ {
			assert.Less(t, f.P[i], f.P[i+1])
			assert.Greater(t, f.DpFriction[i], 0.)
			assert.Equal(t, 0., f.DpLocal[i])
			assert.Equal(t, 0., f.DpAccel[i])
		}
		assert.InDelta(t, f.P[0]-1.2e6, r.PressureMargin, 1.e-6)
		assert.Greater(t, r.PressureDrop(), 0.)
	}
	{ // Water through the nozzle: every segment balances its loss terms
		var (
			cfg       = testConfig()
			conv, div = nozzleSections()
		)
		cfg.PressureDrop = true
		cfg.Friction = correlations.ColebrookWhite
		water, err := coolant.Lookup("water")
		require.NoError(t, err)
		r, err := Solve(conv, div, cfg, water, quiet())
		require.NoError(t, err)
		assert.True(t, r.Converged)
		f := r.Field
		n := len(f.P)
		for i := 0; i < n-1; i++ {
			loss := f.DpFriction[i] + f.DpLocal[i] + f.DpAccel[i]
			assert.InDelta(t, f.P[i+1]-loss, f.P[i], 1.e-9*f.P[i+1])
			assert.Greater(t, f.DpFriction[i], 0.)
			assert.GreaterOrEqual(t, f.DpLocal[i], 0.)
			if loss >= 0 {
				assert.LessOrEqual(t, f.P[i], f.P[i+1])
			}
			assert.True(t, f.FrictionFactor[i] > 0.01 && f.FrictionFactor[i] < 0.1)
		}
		assert.Greater(t, r.PressureMargin, 0.)
	}
}

func TestInvalidConfig(t *testing.T) {
	conv, div := nozzleSections()
	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"no channels", func(c *Config) { c.Channel.Sizing = channel.ChannelCount{NC: 0, Rib: [3]float64{0.001, 0.001, 0.001}} }},
		{"no sizing", func(c *Config) { c.Channel.Sizing = nil }},
		{"zero wall", func(c *Config) { c.Wall.Thickness = 0 }},
		{"stability", func(c *Config) { c.Stability = 1.5 }},
		{"friction", func(c *Config) { c.PressureDrop = true }},
		{"gamma", func(c *Config) { c.Gas.Throat.Gamma = 1 }},
		{"mass flow", func(c *Config) { c.Coolant.MassFlow = -1 }},
		{"emissivity", func(c *Config) { c.Wall.Emissivity = 2 }},
		{"stations", func(c *Config) { c.Stations = 2 }},
	} {
		cfg := testConfig()
		tc.modify(&cfg)
		r, err := Solve(conv, div, cfg, waterLike(t), quiet())
		assert.Nil(t, r, tc.name)
		require.ErrorIs(t, err, ErrInvalidConfig, tc.name)
		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, InvalidConfig, e.Kind)
	}
	{
		_, err := Solve(conv, div, testConfig(), nil, quiet())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
	{
		conv.ContractionRatio = 0.5
		_, err := Solve(conv, div, testConfig(), waterLike(t), quiet())
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, contour.ErrInvalidGeometry)
	}
}

type nanViscosity struct{ coolant.Constant }

func (p nanViscosity) Properties(t, pr float64) (coolant.State, error) {
	s, err := p.Constant.Properties(t, pr)
	s.Mu = math.NaN()
	return s, err
}

func TestNumericFailure(t *testing.T) {
	conv, div := nozzleSections()
	{ // Non-finite coolant properties stop the run
		base, err := coolant.NewConstant("base", coolant.State{Cp: 4180, Mu: 8.5e-4, K: 0.61, Rho: 997})
		require.NoError(t, err)
		r, err := Solve(conv, div, testConfig(), nanViscosity{base}, quiet())
		assert.Nil(t, r)
		require.ErrorIs(t, err, ErrNumericDomain)
		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, 1, e.Iteration)
		assert.Equal(t, 0, e.Station)
	}
	{ // Coolant pressure cannot go negative
		cfg := testConfig()
		cfg.PressureDrop = true
		cfg.Friction = correlations.Tkachenko
		cfg.Coolant.InletPressure = 1000
		r, err := Solve(conv, div, cfg, waterLike(t), quiet())
		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrNumericDomain)
	}
	{ // Starved coolant boils off the end of the property table
		cfg := testConfig()
		cfg.Coolant.MassFlow = 0.02
		water, err := coolant.Lookup("water")
		require.NoError(t, err)
		r, err := Solve(conv, div, cfg, water, quiet())
		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrProvider)
		assert.ErrorIs(t, err, coolant.ErrOutOfRange)
	}
}

func TestSolveContour(t *testing.T) {
	var (
		cfg       = testConfig()
		conv, div = nozzleSections()
	)
	ctr, err := contour.Generate(conv, div, 60)
	require.NoError(t, err)
	x0 := append([]float64(nil), ctr.X...)
	r, err := SolveContour(ctr, cfg, waterLike(t), quiet())
	require.NoError(t, err)
	assert.Equal(t, 60, r.Stations.Len())
	assert.Equal(t, x0, ctr.X)
	_, err = SolveContour(nil, cfg, waterLike(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
