package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/notargets/avs/assets"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/regencool/regen"
)

var palette = []color.RGBA{
	utils2.RED, utils2.GREEN, utils2.BLUE, utils2.WHITE,
	{255, 255, 0, 255}, {0, 255, 255, 255}, {255, 0, 255, 255},
}

// Lines converts the named series into line segment lists keyed by color, the
// form the chart window draws. Each series gets its own palette color, so at
// most len(palette) series can be drawn together.
func Lines(r *regen.Result, series ...string) (lines map[color.RGBA][]float32, labels map[color.RGBA]string, err error) {
	var (
		x   = r.Stations.X
		col Column
	)
	if len(series) > len(palette) {
		err = fmt.Errorf("%d series requested, the chart window draws at most %d", len(series), len(palette))
		return
	}
	lines = make(map[color.RGBA][]float32)
	labels = make(map[color.RGBA]string)
	for n, name := range series {
		if col, err = Lookup(r, name); err != nil {
			return
		}
		c := palette[n]
		for i := 0; i < len(x)-1; i++ {
			AddLine(x[i], col.Values[i], x[i+1], col.Values[i+1], c, lines)
		}
		labels[c] = col.Label()
	}
	return
}

func AddLine(x1, y1, x2, y2 float64, col color.RGBA, lines map[color.RGBA][]float32) {
	lines[col] = append(lines[col],
		float32(x1), float32(y1),
		float32(x2), float32(y2),
	)
}

func bounds(lines map[color.RGBA][]float32) (xMin, xMax, yMin, yMax float32) {
	xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	for _, line := range lines {
		for i := 0; i+1 < len(line); i += 2 {
			xMin, xMax = min(xMin, line[i]), max(xMax, line[i])
			yMin, yMax = min(yMin, line[i+1]), max(yMax, line[i+1])
		}
	}
	return
}

// Interactive opens a chart window with the named series against x. Once the
// window is open it never returns, so callers finish any cleanup first.
func Interactive(r *regen.Result, series ...string) (err error) {
	var (
		lines  map[color.RGBA][]float32
		labels map[color.RGBA]string
	)
	if len(series) == 0 {
		series = []string{"Twg", "Twc", "Tc"}
	}
	if lines, labels, err = Lines(r, series...); err != nil {
		return
	}
	xMin, xMax, yMin, yMax := bounds(lines)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	for col, line := range lines {
		ch.AddLine(line, col)
	}
	var (
		dy = 0.05 * (yMax - yMin)
		y  = yMax - dy
	)
	for n := range series {
		col := palette[n]
		tf := assets.NewTextFormatter("NotoSans", "Regular", 24, col, true, false)
		ch.Printf(tf, xMin+0.02*(xMax-xMin), y, "%s", labels[col])
		y -= dy
	}
	select {}
}
