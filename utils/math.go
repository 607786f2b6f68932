package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	default:
		y = math.Pow(x, float64(p))
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// RelativeChange is |a-b|/|b|, or |a-b| when b is zero.
func RelativeChange(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a - b)
	}
	return math.Abs(a-b) / math.Abs(b)
}

// MaxRelativeChange returns the largest RelativeChange(a[i], b[i]) and its index.
func MaxRelativeChange(a, b []float64) (max float64, imax int) {
	for i := range a {
		if r := RelativeChange(a[i], b[i]); r > max {
			max, imax = r, i
		}
	}
	return
}
