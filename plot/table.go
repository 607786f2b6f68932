// Package plot renders solver results as CSV tables, PNG charts and an
// interactive chart window.
package plot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/regencool/regen"
	"github.com/notargets/regencool/utils"
)

// Column is one per-station series of a result.
type Column struct {
	Name, Unit string
	Values     []float64
}

func (c Column) Label() string {
	if c.Unit == "" {
		return c.Name
	}
	return fmt.Sprintf("%s [%s]", c.Name, c.Unit)
}

// Columns lists every per-station series of r in table order. The pressure loss
// columns are only present when the run coupled the coolant pressure.
func Columns(r *regen.Result) (cols []Column) {
	var (
		st = r.Stations
		f  = r.Field
		ch = st.Channel
	)
	cols = []Column{
		{"x", "m", st.X},
		{"r", "m", st.R},
		{"At/A", "", st.AreaRatio},
		{"Mach", "", st.Mach},
		{"channel width", "m", ch.A},
		{"channel height", "m", ch.B},
		{"rib width", "m", ch.Delta},
		{"Twg", "K", f.Twg},
		{"Twc", "K", f.Twc},
		{"Tc", "K", f.Tc},
		{"Taw", "K", f.Taw},
		{"q", "W/m^2", f.Q},
		{"hg", "W/m^2/K", f.Hg},
		{"hc", "W/m^2/K", f.Hc},
		{"fin efficiency", "", f.Eta},
		{"Re", "", f.Reynolds},
		{"velocity", "m/s", f.Velocity},
		{"cp", "J/kg/K", f.Cp},
		{"mu", "Pa s", f.Mu},
		{"k", "W/m/K", f.K},
		{"rho", "kg/m^3", f.Rho},
		{"p", "Pa", f.P},
	}
	if f.DpFriction != nil {
		cols = append(cols,
			Column{"dp friction", "Pa", f.DpFriction},
			Column{"dp local", "Pa", f.DpLocal},
			Column{"dp acceleration", "Pa", f.DpAccel},
			Column{"friction factor", "", f.FrictionFactor},
		)
	}
	return
}

// Lookup finds a column by name, ignoring case.
func Lookup(r *regen.Result, name string) (c Column, err error) {
	var names []string
	for _, c = range Columns(r) {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return
		}
		names = append(names, c.Name)
	}
	err = fmt.Errorf("no result series %q, have %s", name, strings.Join(names, ", "))
	return Column{}, err
}

// Table returns the column labels and a station-by-column matrix.
func Table(r *regen.Result) (header []string, m utils.Matrix) {
	var (
		cols = Columns(r)
		data = make([][]float64, len(cols))
	)
	header = make([]string, len(cols))
	for j, c := range cols {
		header[j], data[j] = c.Label(), c.Values
	}
	m = utils.NewMatrixFromColumns(data...)
	return
}

func WriteCSV(w io.Writer, r *regen.Result) (err error) {
	var (
		header, m = Table(r)
		nr, nc    = m.Dims()
		cw        = csv.NewWriter(w)
		rec       = make([]string, nc)
	)
	if err = cw.Write(header); err != nil {
		return
	}
	for i := 0; i < nr; i++ {
		for j, v := range m.Row(i) {
			rec[j] = strconv.FormatFloat(v, 'g', 10, 64)
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// summaryRanges are the columns whose extremes WriteSummary reports.
var summaryRanges = map[string]bool{
	"hg": true, "hc": true, "fin efficiency": true, "Re": true, "velocity": true,
}

// WriteSummary prints the headline numbers of a run.
func WriteSummary(w io.Writer, r *regen.Result) {
	var (
		twMax, iTw = r.MaxWallTemperature()
		qMax, iQ   = r.MaxHeatFlux()
		_, m       = Table(r)
	)
	fmt.Fprintf(w, "Status = %v after %d iterations, residual = %8.5f\n", r.Status, r.Iterations, r.Residual)
	fmt.Fprintf(w, "Stations = %d, Channels = %d, Throat station = %d\n",
		r.Stations.Len(), r.Stations.Channel.NC, r.Contour.ThroatIndex)
	fmt.Fprintf(w, "Max Twg = %8.2f K at x = %8.5f m\n", twMax, r.Stations.X[iTw])
	fmt.Fprintf(w, "Max q   = %10.4e W/m^2 at x = %8.5f m\n", qMax, r.Stations.X[iQ])
	fmt.Fprintf(w, "Heat load = %10.4e W, coolant temperature rise = %8.3f K\n",
		r.HeatLoad(), r.CoolantTemperatureRise())
	if r.Field.DpFriction != nil {
		fmt.Fprintf(w, "Coolant pressure drop = %10.4e Pa, injector margin = %10.4e Pa\n",
			r.PressureDrop(), r.PressureMargin)
	}
	for j, c := range Columns(r) {
		if summaryRanges[c.Name] {
			fmt.Fprintf(w, "%-20s min = %10.4e, max = %10.4e\n", c.Label(), m.ColMin(j), m.ColMax(j))
		}
	}
}
