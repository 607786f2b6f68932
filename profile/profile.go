// Package profile blends a property known at the chamber, throat and exit
// reference stations onto every station of a contour.
package profile

import (
	"errors"
	"fmt"

	"github.com/notargets/regencool/contour"
)

var ErrDegenerateProfile = errors.New("degenerate profile blend")

// Weight returns the blend weight of station i toward its outer reference (the
// chamber upstream of the throat, the exit downstream), clamped to [0, 1].
// Stations whose outer reference radius equals the throat radius report ok=false.
func Weight(c *contour.Contour, i int) (w float64, ok bool) {
	var (
		rt    = c.ThroatRadius
		outer = c.ExitRadius
	)
	if c.X[i] <= c.ChamberLength {
		outer = c.ChamberRadius
	}
	if outer == rt {
		return 0, false
	}
	w = (c.R[i] - rt) / (outer - rt)
	switch {
	case w < 0:
		w = 0
	case w > 1:
		w = 1
	}
	return w, true
}

// Generate maps yChamber, yThroat and yExit onto every station of c. A blend
// whose reference radii coincide is only defined when its two reference values
// are equal.
func Generate(c *contour.Contour, yChamber, yThroat, yExit float64) (y []float64, err error) {
	y = make([]float64, c.Len())
	for i := range y {
		outer, section := yExit, "exit"
		if c.X[i] <= c.ChamberLength {
			outer, section = yChamber, "chamber"
		}
		w, ok := Weight(c, i)
		if !ok {
			if outer != yThroat {
				return nil, fmt.Errorf("%w: %s radius equals throat radius but values differ (%g vs %g)",
					ErrDegenerateProfile, section, outer, yThroat)
			}
			y[i] = yThroat
			continue
		}
		y[i] = w*outer + (1-w)*yThroat
	}
	return
}
