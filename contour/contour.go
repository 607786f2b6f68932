package contour

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidGeometry = errors.New("invalid contour geometry")

type Shape uint8

const (
	Conical Shape = iota
	Parabolic
)

var shapeNames = map[string]Shape{
	"conical":   Conical,
	"cone":      Conical,
	"parabolic": Parabolic,
	"parabola":  Parabolic,
	"bell":      Parabolic,
	"rao":       Parabolic,
}

func NewShape(label string) (s Shape, err error) {
	var ok bool
	if s, ok = shapeNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: unknown nozzle shape %q", ErrInvalidGeometry, label)
	}
	return
}

func (s Shape) String() string {
	switch s {
	case Conical:
		return "Conical"
	case Parabolic:
		return "Parabolic"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ConvergentSection describes the chamber and convergent nozzle. Angles are in degrees.
type ConvergentSection struct {
	ThroatArea         float64 // m^2
	ContractionRatio   float64 // chamber area / throat area
	ChamberLength      float64 // injector face to throat, m
	ContractionAngle   float64 // cone half angle
	ConvergentArcRatio float64 // upstream throat arc radius / throat radius
	ConcaveArcRatio    float64 // chamber corner arc radius / chamber radius
}

// DivergentSection describes the nozzle downstream of the throat. Angles are in degrees.
type DivergentSection struct {
	ThroatArea        float64 // m^2, defaults to the convergent throat area
	ExpansionRatio    float64 // exit area / throat area
	DivergentArcRatio float64 // downstream throat arc radius / throat radius
	Length            float64 // throat to exit, m; only used by Parabolic
	InitialAngle      float64 // cone half angle, or parabola initial angle
	ExitAngle         float64 // parabola exit angle
	Shape             Shape
}

type Contour struct {
	X, R            []float64
	ChamberLength   float64
	ChamberRadius   float64
	ThroatRadius    float64
	ExitRadius      float64
	ThroatIndex     int
	ThroatCurvature float64 // mean throat arc radius of curvature, 0 when unknown
}

func deg2rad(a float64) float64 { return a * math.Pi / 180 }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidGeometry}, args...)...)
}

// Generate builds the wall profile of the chamber and nozzle and samples it at n
// uniformly spaced axial stations. The station nearest the throat is moved onto the
// throat so that it is always a sample point.
func Generate(conv ConvergentSection, div DivergentSection, n int) (c *Contour, err error) {
	var (
		w        wall
		rt, rc   float64
		re       float64
		r1, rn   float64
		xt       = conv.ChamberLength
		xMax, dx float64
	)
	if n < 3 {
		return nil, invalid("need at least 3 stations, have %d", n)
	}
	if div.ThroatArea == 0 {
		div.ThroatArea = conv.ThroatArea
	}
	if conv.ThroatArea <= 0 || math.Abs(div.ThroatArea-conv.ThroatArea) > 1.e-12*conv.ThroatArea {
		return nil, invalid("throat area must be positive and shared, have %g and %g",
			conv.ThroatArea, div.ThroatArea)
	}
	rt = math.Sqrt(conv.ThroatArea / math.Pi)
	if w, rc, r1, err = convergent(conv, rt); err != nil {
		return
	}
	if w, re, rn, err = divergent(w, div, rt, xt); err != nil {
		return
	}
	xMax = w.end()
	c = &Contour{
		X:               make([]float64, n),
		R:               make([]float64, n),
		ChamberLength:   xt,
		ChamberRadius:   rc,
		ThroatRadius:    rt,
		ExitRadius:      re,
		ThroatCurvature: meanPositive(r1, rn),
	}
	floats.Span(c.X, 0, xMax)
	dx = xMax / float64(n-1)
	c.ThroatIndex = int(math.Round(xt / dx))
	if c.ThroatIndex < 1 || c.ThroatIndex > n-2 {
		return nil, invalid("throat at x=%g does not fall inside the %d station sample", xt, n)
	}
	c.X[c.ThroatIndex] = xt
	for i, x := range c.X {
		c.R[i] = w.radius(x)
	}
	c.R[0], c.R[c.ThroatIndex], c.R[n-1] = rc, rt, re
	return
}

func convergent(conv ConvergentSection, rt float64) (w wall, rc, r1 float64, err error) {
	var (
		xt = conv.ChamberLength
	)
	switch {
	case conv.ContractionRatio < 1:
		err = invalid("contraction ratio %g is below 1", conv.ContractionRatio)
		return
	case xt <= 0:
		err = invalid("chamber length %g must be positive", xt)
		return
	}
	rc = rt * math.Sqrt(conv.ContractionRatio)
	if conv.ContractionRatio == 1 {
		w = w.add(line{0, rt, xt, rt})
		return
	}
	if conv.ContractionAngle <= 0 || conv.ContractionAngle >= 90 {
		err = invalid("contraction angle %g must lie in (0, 90) degrees", conv.ContractionAngle)
		return
	}
	if conv.ConvergentArcRatio < 0 || conv.ConcaveArcRatio < 0 {
		err = invalid("arc ratios must not be negative")
		return
	}
	var (
		b      = deg2rad(conv.ContractionAngle)
		r2     = conv.ConcaveArcRatio * rc
		yA     = rc - r2*(1-math.Cos(b)) // end of chamber corner arc
		yB     = rt + conv.ConvergentArcRatio*rt*(1-math.Cos(b))
		xB     = xt - conv.ConvergentArcRatio*rt*math.Sin(b)
		xA, x1 float64
	)
	r1 = conv.ConvergentArcRatio * rt
	if yA < yB {
		err = invalid("contraction ratio %g is too small for the convergent arc radii", conv.ContractionRatio)
		return
	}
	xA = xB - (yA-yB)/math.Tan(b)
	x1 = xA - r2*math.Sin(b)
	if x1 < 0 {
		err = invalid("chamber length %g is too short for the convergent section (short by %g)", xt, -x1)
		return
	}
	w = w.add(line{0, rc, x1, rc})
	w = w.add(arc{x0: x1, x1: xA, cx: x1, cy: rc - r2, r: r2, upper: true})
	w = w.add(line{xA, yA, xB, yB})
	w = w.add(arc{x0: xB, x1: xt, cx: xt, cy: rt + r1, r: r1})
	return
}

func divergent(w wall, div DivergentSection, rt, xt float64) (wOut wall, re, rn float64, err error) {
	wOut = w
	switch {
	case div.ExpansionRatio < 1:
		err = invalid("expansion ratio %g is below 1", div.ExpansionRatio)
		return
	case div.ExpansionRatio == 1:
		if div.Length <= 0 {
			err = invalid("a constant area divergent section needs a positive length")
			return
		}
		re = rt
		wOut = wOut.add(line{xt, rt, xt + div.Length, rt})
		return
	case div.InitialAngle <= 0 || div.InitialAngle >= 90:
		err = invalid("divergent angle %g must lie in (0, 90) degrees", div.InitialAngle)
		return
	case div.DivergentArcRatio < 0:
		err = invalid("divergent arc ratio must not be negative")
		return
	}
	var (
		tn = deg2rad(div.InitialAngle)
		nx = xt + div.DivergentArcRatio*rt*math.Sin(tn)
		ny = rt + div.DivergentArcRatio*rt*(1-math.Cos(tn))
	)
	re = rt * math.Sqrt(div.ExpansionRatio)
	rn = div.DivergentArcRatio * rt
	if re <= ny {
		err = invalid("expansion ratio %g is too small for the divergent arc", div.ExpansionRatio)
		return
	}
	wOut = wOut.add(arc{x0: xt, x1: nx, cx: xt, cy: rt + rn, r: rn})
	switch div.Shape {
	case Conical:
		wOut = wOut.add(line{nx, ny, nx + (re-ny)/math.Tan(tn), re})
	case Parabolic:
		var (
			te     = deg2rad(div.ExitAngle)
			length = div.Length
		)
		if div.ExitAngle < 0 || div.ExitAngle >= div.InitialAngle {
			err = invalid("parabola exit angle %g must lie in [0, %g)", div.ExitAngle, div.InitialAngle)
			return
		}
		if length == 0 {
			// 80% bell
			t15 := deg2rad(15)
			length = 0.8 * (rt*(math.Sqrt(div.ExpansionRatio)-1) + rn*(1/math.Cos(t15)-1)) / math.Tan(t15)
		}
		var (
			ex, ey = xt + length, re
			m1, m2 = math.Tan(tn), math.Tan(te)
			c1, c2 = ny - m1*nx, ey - m2*ex
			qx     = (c2 - c1) / (m1 - m2)
			qy     = (m1*c2 - m2*c1) / (m1 - m2)
		)
		if ex <= nx || qx < nx || qx > ex {
			err = invalid("divergent length %g is inconsistent with angles %g/%g",
				length, div.InitialAngle, div.ExitAngle)
			return
		}
		wOut = wOut.add(bezier{[2]float64{nx, ny}, [2]float64{qx, qy}, [2]float64{ex, ey}})
	default:
		err = invalid("unknown nozzle shape %v", div.Shape)
	}
	return
}

func meanPositive(a, b float64) float64 {
	switch {
	case a > 0 && b > 0:
		return 0.5 * (a + b)
	case a > 0:
		return a
	}
	return b
}

// New wraps an explicit wall profile. The throat is the station closest to
// chamberLength.
func New(x, r []float64, chamberLength float64) (c *Contour, err error) {
	n := len(x)
	if n < 2 || len(r) != n {
		return nil, invalid("profile needs matching x and r arrays of length >= 2")
	}
	for i := range x {
		if r[i] < 0 {
			return nil, invalid("negative radius %g at station %d", r[i], i)
		}
		if i > 0 && x[i] <= x[i-1] {
			return nil, invalid("axial positions must be strictly increasing at station %d", i)
		}
	}
	if chamberLength < x[0] || chamberLength > x[n-1] {
		return nil, invalid("chamber length %g outside profile [%g, %g]", chamberLength, x[0], x[n-1])
	}
	c = &Contour{
		X:             append([]float64(nil), x...),
		R:             append([]float64(nil), r...),
		ChamberLength: chamberLength,
	}
	for i := range x {
		if math.Abs(x[i]-chamberLength) < math.Abs(x[c.ThroatIndex]-chamberLength) {
			c.ThroatIndex = i
		}
	}
	c.ChamberRadius, c.ThroatRadius, c.ExitRadius = r[0], r[c.ThroatIndex], r[n-1]
	return
}

func (c *Contour) Len() int { return len(c.X) }

func (c *Contour) Length() float64 { return c.X[len(c.X)-1] - c.X[0] }

// AreaRatio is the throat-to-local flow area ratio At/A at station i.
func (c *Contour) AreaRatio(i int) float64 {
	return (c.ThroatRadius / c.R[i]) * (c.ThroatRadius / c.R[i])
}

// WallAreas returns the lateral area of the wall frustum between stations i and
// i+1; the last entry is zero.
func (c *Contour) WallAreas() (a []float64) {
	n := len(c.X)
	a = make([]float64, n)
	for i := 0; i < n-1; i++ {
		dx, dr := c.X[i+1]-c.X[i], c.R[i+1]-c.R[i]
		a[i] = math.Pi * (c.R[i] + c.R[i+1]) * math.Hypot(dx, dr)
	}
	return
}
