package contour

import "math"

// segment is one analytic piece of the wall profile, defined on [x0, x1].
type segment interface {
	span() (x0, x1 float64)
	radius(x float64) float64
}

type line struct {
	x0, y0, x1, y1 float64
}

func (l line) span() (float64, float64) { return l.x0, l.x1 }

func (l line) radius(x float64) float64 {
	if l.x1 == l.x0 {
		return l.y1
	}
	return l.y0 + (x-l.x0)*(l.y1-l.y0)/(l.x1-l.x0)
}

// arc is a circular arc centered at (cx, cy). Lower arcs bulge toward the axis
// (throat arcs), upper arcs away from it (chamber corner).
type arc struct {
	x0, x1, cx, cy, r float64
	upper             bool
}

func (a arc) span() (float64, float64) { return a.x0, a.x1 }

func (a arc) radius(x float64) float64 {
	dx := x - a.cx
	h := math.Sqrt(math.Max(0, a.r*a.r-dx*dx))
	if a.upper {
		return a.cy + h
	}
	return a.cy - h
}

// bezier is a quadratic Bezier curve with control points p0, p1, p2, x monotonic in t.
type bezier struct {
	p0, p1, p2 [2]float64
}

func (b bezier) span() (float64, float64) { return b.p0[0], b.p2[0] }

func (b bezier) radius(x float64) float64 {
	var (
		qa = b.p0[0] - 2*b.p1[0] + b.p2[0]
		qb = 2 * (b.p1[0] - b.p0[0])
		qc = b.p0[0] - x
		t  float64
	)
	if math.Abs(qa) < 1.e-12*math.Abs(b.p2[0]-b.p0[0]) {
		t = -qc / qb
	} else {
		disc := math.Sqrt(math.Max(0, qb*qb-4*qa*qc))
		t = (-qb + disc) / (2 * qa)
		if t < 0 || t > 1 {
			t = (-qb - disc) / (2 * qa)
		}
	}
	t = math.Min(1, math.Max(0, t))
	s := 1 - t
	return s*s*b.p0[1] + 2*s*t*b.p1[1] + t*t*b.p2[1]
}

type wall []segment

func (w wall) end() float64 {
	_, x1 := w[len(w)-1].span()
	return x1
}

func (w wall) radius(x float64) float64 {
	for _, s := range w {
		if _, x1 := s.span(); x <= x1 {
			return s.radius(x)
		}
	}
	return w[len(w)-1].radius(x)
}

// add appends s unless it has zero axial extent.
func (w wall) add(s segment) wall {
	if x0, x1 := s.span(); x1 > x0 {
		return append(w, s)
	}
	return w
}
