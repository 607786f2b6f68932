/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notargets/regencool/InputParameters"
	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/regen"
)

// ContourCmd represents the contour command
var ContourCmd = &cobra.Command{
	Use:   "contour",
	Short: "Generate the chamber and nozzle wall contour with its channel layout",
	Long: `
Samples the wall contour of the chamber described in the input conditions file and
sizes the cooling channels along it, without solving the heat transfer.

regencool contour -I case.yaml --csv contour.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err  error
			w    io.Writer = os.Stdout
			file *os.File
		)
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		csvFile, _ := cmd.Flags().GetString("csv")
		ip := processInput(icFile)
		if csvFile != "" {
			if file, err = os.Create(csvFile); err != nil {
				panic(err)
			}
			defer file.Close()
			w = file
		}
		if err = WriteContour(ip, w); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ContourCmd)
	ContourCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the chamber and channels")
	ContourCmd.Flags().String("csv", "", "write the contour table to this CSV file instead of stdout")
}

// WriteContour writes x, r and the channel width, height and rib width at every
// station as CSV.
func WriteContour(ip *InputParameters.InputParameters, w io.Writer) (err error) {
	var (
		c   *contour.Contour
		g   *channel.Geometry
		s   channel.Sizing
		n   = ip.Stations
		ff  = func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
		cw  = csv.NewWriter(w)
		rec []string
	)
	if n == 0 {
		n = regen.DefaultStations
	}
	conv, div, err := ip.Sections()
	if err != nil {
		return
	}
	if c, err = contour.Generate(conv, div, n); err != nil {
		return
	}
	if s, err = ip.Channels.Sizing(); err != nil {
		return
	}
	if g, err = channel.Build(c, ip.Wall.Thickness, ip.Channels.Heights, s); err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Throat at x = %8.5f m (station %d), Rc = %8.5f, Rt = %8.5f, Re = %8.5f, %d channels\n",
		c.X[c.ThroatIndex], c.ThroatIndex, c.ChamberRadius, c.ThroatRadius, c.ExitRadius, g.NC)
	if err = cw.Write([]string{"x [m]", "r [m]", "channel width [m]", "channel height [m]", "rib width [m]"}); err != nil {
		return
	}
	for i := range c.X {
		rec = []string{ff(c.X[i]), ff(c.R[i]), ff(g.A[i]), ff(g.B[i]), ff(g.Delta[i])}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
