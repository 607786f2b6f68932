package InputParameters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/coolant"
	"github.com/notargets/regencool/correlations"
)

func TestParse(t *testing.T) {
	var input InputParameters
	require.NoError(t, input.Parse([]byte(ExampleFile)))
	input.Print()
	{
		assert.Equal(t, "Water cooled test chamber", input.Title)
		assert.Equal(t, 200, input.Stations)
		assert.Equal(t, 1.e6, input.Gas.ChamberPressure)
		assert.Equal(t, 2.7, input.Gas.Exit.Mach)
		assert.Equal(t, [3]float64{0.003, 0.002, 0.003}, input.Channels.Heights)
	}
	conv, div, cfg, prov, err := input.Case()
	require.NoError(t, err)
	{
		assert.InDelta(t, math.Pi*0.02*0.02, conv.ThroatArea, 1.e-15)
		assert.Equal(t, conv.ThroatArea, div.ThroatArea)
		assert.Equal(t, contour.Conical, div.Shape)
		assert.Equal(t, correlations.ColebrookWhite, cfg.Friction)
		assert.True(t, cfg.PressureDrop)
		assert.Equal(t, channel.ChannelCount{NC: 40, Rib: [3]float64{0.001, 0.001, 0.001}}, cfg.Channel.Sizing)
		assert.Equal(t, 1.22, cfg.Gas.Exit.Gamma)
		assert.Equal(t, 0, cfg.MaxIter)
		assert.False(t, cfg.CurvatureCorrection)
		require.NoError(t, cfg.WithDefaults().Validate())
		s, err := prov.Properties(300, 1.e6)
		require.NoError(t, err)
		assert.Greater(t, s.Rho, 990.)
	}
	{ // Curvature correction is opt-in
		input.Curvature = true
		cfg, err := input.Config()
		require.NoError(t, err)
		assert.True(t, cfg.CurvatureCorrection)
	}
}

func TestProviderChoice(t *testing.T) {
	{
		input := InputParameters{Title: "kerosene"}
		input.Coolant.Properties = &coolant.State{Cp: 2010, Mu: 1.2e-3, K: 0.13, Rho: 800}
		p, err := input.Provider()
		require.NoError(t, err)
		s, err := p.Properties(350, 5.e6)
		require.NoError(t, err)
		assert.Equal(t, 800., s.Rho)
	}
	{
		var input InputParameters
		require.NoError(t, input.Parse([]byte(`
Coolant:
  Table:
    T: [300, 400]
    Cp: [2000, 2200]
    Mu: [1.e-3, 5.e-4]
    K: [0.14, 0.12]
    Rho: [800, 720]
`)))
		p, err := input.Provider()
		require.NoError(t, err)
		s, err := p.Properties(350, 1.e6)
		require.NoError(t, err)
		assert.InDelta(t, 2100, s.Cp, 1.e-9)
		_, err = p.Properties(450, 1.e6)
		assert.ErrorIs(t, err, coolant.ErrOutOfRange)
	}
	{
		input := InputParameters{}
		_, err := input.Provider()
		assert.ErrorIs(t, err, coolant.ErrInvalidProperty)
		input.Coolant.Fluid = "water"
		input.Coolant.Properties = &coolant.State{Cp: 1, Mu: 1, K: 1, Rho: 1}
		_, err = input.Provider()
		assert.ErrorIs(t, err, coolant.ErrInvalidProperty)
	}
}

func TestChannelSizing(t *testing.T) {
	{
		s, err := Channels{Ribs: [3]float64{1, 2, 3}, ThroatWidth: 0.002}.Sizing()
		require.NoError(t, err)
		assert.Equal(t, channel.RibWidth{Rib: [3]float64{1, 2, 3}, ThroatChannelWidth: 0.002}, s)
	}
	{
		_, err := Channels{Count: 10, ThroatWidth: 0.002}.Sizing()
		assert.ErrorIs(t, err, channel.ErrInvalidChannel)
		_, err = Channels{}.Sizing()
		assert.ErrorIs(t, err, channel.ErrInvalidChannel)
	}
	{
		var input InputParameters
		require.NoError(t, input.Parse([]byte(ExampleFile)))
		input.Geometry.Shape = "aerospike"
		_, _, err := input.Sections()
		assert.ErrorIs(t, err, contour.ErrInvalidGeometry)
		input.Geometry.Shape = "Conical"
		input.Friction = "blasius"
		_, err = input.Config()
		assert.Error(t, err)
	}
}
