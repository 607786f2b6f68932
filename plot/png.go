package plot

import (
	"fmt"
	"path/filepath"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/regencool/regen"
)

type chart struct {
	file, title, yLabel string
	series              []string
}

func charts(r *regen.Result) (c []chart) {
	c = []chart{
		{"temperature.png", "Wall and coolant temperature", "T [K]", []string{"Twg", "Twc", "Tc"}},
		{"heatflux.png", "Wall heat flux", "q [W/m^2]", []string{"q"}},
		{"film.png", "Film coefficients", "h [W/m^2/K]", []string{"hg", "hc"}},
		{"contour.png", "Wall contour", "r [m]", []string{"r"}},
		{"channel.png", "Channel dimensions", "[m]", []string{"channel width", "channel height", "rib width"}},
	}
	if r.Field.DpFriction != nil {
		c = append(c,
			chart{"pressure.png", "Coolant pressure", "p [Pa]", []string{"p"}},
			chart{"losses.png", "Coolant pressure losses", "dp [Pa]", []string{"dp friction", "dp local", "dp acceleration"}},
		)
	}
	return
}

func xys(x, y []float64) (pts plotter.XYs) {
	pts = make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return
}

// SavePNG writes one chart per result group into dir and returns the file paths.
func SavePNG(r *regen.Result, dir string) (files []string, err error) {
	for _, c := range charts(r) {
		var (
			p    = gplot.New()
			args []interface{}
			col  Column
		)
		p.Title.Text = c.title
		p.X.Label.Text = "x [m]"
		p.Y.Label.Text = c.yLabel
		for _, name := range c.series {
			if col, err = Lookup(r, name); err != nil {
				return
			}
			args = append(args, col.Name, xys(r.Stations.X, col.Values))
		}
		if err = plotutil.AddLinePoints(p, args...); err != nil {
			return nil, fmt.Errorf("plotting %s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err = p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
			return
		}
		files = append(files, path)
	}
	return
}
