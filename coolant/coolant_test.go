package coolant

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	{ // Built-ins hit their nodes and interpolate between them
		p, err := Lookup(" Water ")
		require.NoError(t, err)
		s, err := p.Properties(300, 5.e6)
		require.NoError(t, err)
		assert.InDelta(t, 4179, s.Cp, 1.e-9)
		assert.InDelta(t, 996.5, s.Rho, 1.e-9)
		s, err = p.Properties(310, 5.e6)
		require.NoError(t, err)
		assert.InDelta(t, 0.5*(0.853e-3+0.577e-3), s.Mu, 1.e-12)
		assert.InDelta(t, 0.621, s.K, 1.e-12)
		assert.InDelta(t, s.Cp*s.Mu/s.K, s.Prandtl(), 1.e-12)
	}
	{ // Out of range is an error, not an extrapolation
		p, err := Lookup("ethanol")
		require.NoError(t, err)
		_, err = p.Properties(600, 5.e6)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = p.Properties(300, 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	{
		_, err := Lookup("unobtainium")
		assert.ErrorIs(t, err, ErrUnknownFluid)
		assert.Equal(t, []string{"ethanol", "water"}, Names())
	}
	{ // User tables
		_, err := NewTable("bad", []float64{300}, []float64{1}, []float64{1}, []float64{1}, []float64{1})
		assert.ErrorIs(t, err, ErrInvalidProperty)
		_, err = NewTable("bad", []float64{300, 400}, []float64{1, 1}, []float64{1, -1}, []float64{1, 1}, []float64{1, 1})
		assert.ErrorIs(t, err, ErrInvalidProperty)
		tb, err := NewTable("rp1", []float64{300, 500}, []float64{2000, 2400}, []float64{1.e-3, 3.e-4},
			[]float64{0.12, 0.1}, []float64{800, 650})
		require.NoError(t, err)
		s, err := tb.Properties(400, 1.e6)
		require.NoError(t, err)
		assert.InDelta(t, 2200, s.Cp, 1.e-9)
		assert.InDelta(t, 725, s.Rho, 1.e-9)
	}
	{ // Tables are read-only and safe to share
		p, err := Lookup("water")
		require.NoError(t, err)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s, err := p.Properties(300+float64(i), 1.e6)
				assert.NoError(t, err)
				assert.Greater(t, s.Cp, 0.)
			}(i)
		}
		wg.Wait()
	}
}

func TestConstant(t *testing.T) {
	c, err := NewConstant("fixed", State{Cp: 4000, Mu: 1.e-3, K: 0.6, Rho: 1000})
	require.NoError(t, err)
	s, err := c.Properties(900, 1)
	require.NoError(t, err)
	assert.Equal(t, 4000., s.Cp)
	_, err = c.Properties(0, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewConstant("broken", State{Cp: 4000, Mu: 0, K: 0.6, Rho: 1000})
	assert.ErrorIs(t, err, ErrInvalidProperty)
}
