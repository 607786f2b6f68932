package correlations

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrFrictionDomain = errors.New("friction factor outside its domain")

// Correlation selects a Darcy friction factor correlation.
type Correlation uint8

const (
	NoCorrelation Correlation = iota
	Moody
	Tkachenko
	ColebrookWhite
)

var correlationNames = map[string]Correlation{
	"moody":           Moody,
	"tkachenko":       Tkachenko,
	"mileikovskyi":    Tkachenko,
	"colebrook":       ColebrookWhite,
	"colebrook-white": ColebrookWhite,
	"colebrookwhite":  ColebrookWhite,
}

func NewCorrelation(label string) (c Correlation, err error) {
	var ok bool
	if c, ok = correlationNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown friction correlation %q", label)
	}
	return
}

func (c Correlation) String() string {
	switch c {
	case NoCorrelation:
		return "None"
	case Moody:
		return "Moody (1947)"
	case Tkachenko:
		return "Tkachenko-Mileikovskyi (2020)"
	case ColebrookWhite:
		return "Colebrook-White (1937)"
	}
	return fmt.Sprintf("Correlation(%d)", uint8(c))
}

// Friction returns the Darcy friction factor at Reynolds number re and relative
// roughness rr (absolute roughness / hydraulic diameter).
func Friction(c Correlation, re, rr float64) (f float64, err error) {
	if !(re > 0) || !(rr >= 0) || math.IsInf(re, 0) || math.IsInf(rr, 0) {
		return 0, fmt.Errorf("%w: Re = %g, relative roughness = %g", ErrFrictionDomain, re, rr)
	}
	switch c {
	case Moody:
		f = FrictionMoody(re, rr)
	case Tkachenko:
		f = FrictionTkachenko(re, rr)
	case ColebrookWhite:
		f = FrictionColebrook(re, rr)
	default:
		return 0, fmt.Errorf("%w: no correlation selected", ErrFrictionDomain)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%w: %v gave %g at Re = %g, relative roughness = %g",
			ErrFrictionDomain, c, f, re, rr)
	}
	return
}

func FrictionMoody(re, rr float64) float64 {
	return 0.0055 * (1 + math.Cbrt(2.e4*rr+1.e6/re))
}

// FrictionTkachenko is the explicit approximation of the Colebrook equation by
// Tkachenko and Mileikovskyi (2020).
func FrictionTkachenko(re, rr float64) float64 {
	var (
		a0 = -0.79638 * math.Log(rr/8.298+7.3357/re)
		a1 = re*rr + 9.3120665*a0
		x  = (8.128943 + a1) / (8.128943*a0 - 0.86859209*a1*math.Log(a1/(3.7099535*re)))
	)
	return x * x
}

// FrictionColebrook solves 1/sqrt(f) = -2 log10(rr/3.7 + 2.51/(Re sqrt(f))) with
// the substitution 1/sqrt(f) = c W0(z) - a/b, c = 2/ln(10), a = rr/3.7,
// b = 2.51/Re, z = exp(a/(b c))/(b c).
func FrictionColebrook(re, rr float64) float64 {
	var (
		c    = 2 / math.Ln10
		a    = rr / 3.7
		b    = 2.51 / re
		bc   = b * c
		logZ = a/bc - math.Log(bc)
		x    = c*lambertW0Exp(logZ) - a/b
	)
	return 1 / (x * x)
}
