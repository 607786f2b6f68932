package channel

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/profile"
)

var ErrInvalidChannel = errors.New("invalid channel geometry")

// Reference stations, in the order used by every [3]float64 in this package.
const (
	Chamber = iota
	Throat
	Exit
)

var referenceNames = [3]string{"chamber", "throat", "exit"}

// Sizing selects which channel dimension is authoritative. Exactly one of
// RibWidth or ChannelCount is used; the other quantity is derived from it.
type Sizing interface {
	isSizing()
	String() string
}

// RibWidth fixes the rib width at each reference and a minimum channel width at
// the throat. The channel count is the number of whole channel+rib pitches that
// fit the throat circumference, and the resolved throat width (Geometry.RefA)
// is then widened so those pitches close the circumference exactly.
type RibWidth struct {
	Rib                [3]float64
	ThroatChannelWidth float64 // minimum, see Geometry.RefA for the resolved width
}

// ChannelCount fixes the number of channels and the rib width at each reference.
type ChannelCount struct {
	NC  int
	Rib [3]float64
}

func (RibWidth) isSizing()     {}
func (ChannelCount) isSizing() {}

func (s RibWidth) String() string {
	return fmt.Sprintf("RibWidth(rib=%v, throat channel=%g)", s.Rib, s.ThroatChannelWidth)
}

func (s ChannelCount) String() string {
	return fmt.Sprintf("ChannelCount(NC=%d, rib=%v)", s.NC, s.Rib)
}

// Geometry holds the resolved reference dimensions and their station profiles.
type Geometry struct {
	NC                   int
	RefA, RefB, RefDelta [3]float64
	A, B, Delta          []float64 // channel width, height, rib width per station
	WallThickness        float64
}

// Circumference is the circumference at the mean channel radius r + t + b/2.
func Circumference(r, wallThickness, height float64) float64 {
	return 2 * math.Pi * (r + wallThickness + 0.5*height)
}

func Build(c *contour.Contour, wallThickness float64, heights [3]float64, s Sizing) (g *Geometry, err error) {
	var (
		rRef = [3]float64{c.ChamberRadius, c.ThroatRadius, c.ExitRadius}
		circ [3]float64
		rib  [3]float64
	)
	if wallThickness <= 0 {
		return nil, fmt.Errorf("%w: wall thickness %g must be positive", ErrInvalidChannel, wallThickness)
	}
	for k := range heights {
		if heights[k] <= 0 {
			return nil, fmt.Errorf("%w: %s channel height %g must be positive",
				ErrInvalidChannel, referenceNames[k], heights[k])
		}
		circ[k] = Circumference(rRef[k], wallThickness, heights[k])
	}
	g = &Geometry{RefB: heights, WallThickness: wallThickness}
	switch s := s.(type) {
	case RibWidth:
		rib = s.Rib
		if s.ThroatChannelWidth <= 0 {
			return nil, fmt.Errorf("%w: throat channel width %g must be positive",
				ErrInvalidChannel, s.ThroatChannelWidth)
		}
		if rib[Throat] <= 0 {
			return nil, fmt.Errorf("%w: throat rib width %g must be positive", ErrInvalidChannel, rib[Throat])
		}
		g.NC = int(math.Floor(circ[Throat] / (s.ThroatChannelWidth + rib[Throat])))
	case ChannelCount:
		rib = s.Rib
		g.NC = s.NC
	case nil:
		return nil, fmt.Errorf("%w: no channel sizing selected", ErrInvalidChannel)
	default:
		return nil, fmt.Errorf("%w: unknown channel sizing %T", ErrInvalidChannel, s)
	}
	if g.NC < 1 {
		return nil, fmt.Errorf("%w: channel count %d must be at least 1", ErrInvalidChannel, g.NC)
	}
	for k := range rib {
		if rib[k] <= 0 {
			return nil, fmt.Errorf("%w: %s rib width %g must be positive",
				ErrInvalidChannel, referenceNames[k], rib[k])
		}
		g.RefDelta[k] = rib[k]
		g.RefA[k] = circ[k]/float64(g.NC) - rib[k]
		if g.RefA[k] <= 0 {
			return nil, fmt.Errorf("%w: %d channels with %g rib leave no %s channel width",
				ErrInvalidChannel, g.NC, rib[k], referenceNames[k])
		}
	}
	if g.A, err = profile.Generate(c, g.RefA[Chamber], g.RefA[Throat], g.RefA[Exit]); err != nil {
		return nil, err
	}
	if g.B, err = profile.Generate(c, g.RefB[Chamber], g.RefB[Throat], g.RefB[Exit]); err != nil {
		return nil, err
	}
	if g.Delta, err = profile.Generate(c, g.RefDelta[Chamber], g.RefDelta[Throat], g.RefDelta[Exit]); err != nil {
		return nil, err
	}
	return
}

func (g *Geometry) FlowArea(i int) float64 { return g.A[i] * g.B[i] }
