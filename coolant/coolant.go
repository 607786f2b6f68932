// Package coolant provides thermophysical properties of the cooling fluid.
package coolant

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
)

var (
	ErrOutOfRange      = errors.New("coolant state outside provider range")
	ErrUnknownFluid    = errors.New("unknown coolant")
	ErrInvalidProperty = errors.New("invalid coolant property data")
)

// State is the coolant state at one temperature and pressure.
type State struct {
	Cp  float64 // J/(kg K)
	Mu  float64 // Pa s
	K   float64 // W/(m K)
	Rho float64 // kg/m^3
}

func (s State) Prandtl() float64 { return s.Cp * s.Mu / s.K }

func (s State) valid() bool {
	for _, v := range []float64{s.Cp, s.Mu, s.K, s.Rho} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Provider returns coolant properties at temperature t (K) and pressure p (Pa).
// Implementations must be safe for concurrent use.
type Provider interface {
	Properties(t, p float64) (State, error)
}

// Constant is a fluid with temperature and pressure independent properties.
type Constant struct {
	Name  string
	State State
}

func NewConstant(name string, s State) (c Constant, err error) {
	if !s.valid() {
		err = fmt.Errorf("%w: %s has non-positive properties %+v", ErrInvalidProperty, name, s)
		return
	}
	return Constant{Name: name, State: s}, nil
}

func (c Constant) Properties(t, p float64) (State, error) {
	if !(t > 0) {
		return State{}, fmt.Errorf("%w: %s at T = %g K", ErrOutOfRange, c.Name, t)
	}
	return c.State, nil
}

// Table interpolates properties tabulated against temperature. Liquids are
// treated as incompressible, so pressure only needs to be positive.
type Table struct {
	Name           string
	TMin, TMax     float64
	cp, mu, k, rho interp.PiecewiseLinear
}

func NewTable(name string, t, cp, mu, k, rho []float64) (tb *Table, err error) {
	n := len(t)
	if n < 2 || len(cp) != n || len(mu) != n || len(k) != n || len(rho) != n {
		return nil, fmt.Errorf("%w: %s needs matching columns of at least 2 rows", ErrInvalidProperty, name)
	}
	for i := 0; i < n; i++ {
		if !(State{cp[i], mu[i], k[i], rho[i]}).valid() {
			return nil, fmt.Errorf("%w: %s row %d has non-positive properties", ErrInvalidProperty, name, i)
		}
	}
	tb = &Table{Name: name, TMin: t[0], TMax: t[n-1]}
	for _, col := range []struct {
		pl *interp.PiecewiseLinear
		y  []float64
	}{{&tb.cp, cp}, {&tb.mu, mu}, {&tb.k, k}, {&tb.rho, rho}} {
		if err = col.pl.Fit(t, col.y); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProperty, name, err)
		}
	}
	return
}

func (tb *Table) Properties(t, p float64) (s State, err error) {
	if !(t >= tb.TMin && t <= tb.TMax) || !(p > 0) {
		err = fmt.Errorf("%w: %s at T = %g K, p = %g Pa (table covers %g-%g K)",
			ErrOutOfRange, tb.Name, t, p, tb.TMin, tb.TMax)
		return
	}
	s = State{
		Cp:  tb.cp.Predict(t),
		Mu:  tb.mu.Predict(t),
		K:   tb.k.Predict(t),
		Rho: tb.rho.Predict(t),
	}
	return
}

// Lookup returns a built-in fluid by name.
func Lookup(name string) (Provider, error) {
	d, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q, have %s", ErrUnknownFluid, name, strings.Join(Names(), ", "))
	}
	return NewTable(d.name, d.t, d.cp, d.mu, d.k, d.rho)
}

func Names() (names []string) {
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
