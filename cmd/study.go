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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/regencool/InputParameters"
	"github.com/notargets/regencool/regen"
)

// StudyCmd represents the study command
var StudyCmd = &cobra.Command{
	Use:   "study",
	Short: "Solve one case at several station counts for a resolution study",
	Long: `
Solves the case at each station count and writes one CSV row per run. The output is
the input of the convOrder tool.

regencool study -I case.yaml -n 50,100,200,400 --csv study.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err  error
			w    io.Writer = os.Stdout
			file *os.File
		)
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		csvFile, _ := cmd.Flags().GetString("csv")
		stations, _ := cmd.Flags().GetIntSlice("stations")
		ip := processInput(icFile)
		if csvFile != "" {
			if file, err = os.Create(csvFile); err != nil {
				panic(err)
			}
			defer file.Close()
			w = file
		}
		if err = RunStudy(ip, stations, w); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(StudyCmd)
	StudyCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the case")
	StudyCmd.Flags().IntSliceP("stations", "n", []int{50, 100, 200, 400}, "station counts to solve")
	StudyCmd.Flags().String("csv", "", "write the study to this CSV file instead of stdout")
}

var StudyHeader = []string{"Title", "Stations", "MaxTwg", "MaxQ", "HeatLoad", "CoolantRise", "PressureDrop"}

func RunStudy(ip *InputParameters.InputParameters, stations []int, w io.Writer) (err error) {
	var (
		cw = csv.NewWriter(w)
		ff = func(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
		r  *regen.Result
	)
	conv, div, cfg, prov, err := ip.Case()
	if err != nil {
		return
	}
	if err = cw.Write(StudyHeader); err != nil {
		return
	}
	for _, n := range stations {
		cfg.Stations = n
		if r, err = regen.Solve(conv, div, cfg, prov); err != nil {
			return fmt.Errorf("%d stations: %w", n, err)
		}
		if !r.Converged {
			log.WithField("stations", n).Warn("study run did not converge")
		}
		var (
			tw, _ = r.MaxWallTemperature()
			q, _  = r.MaxHeatFlux()
			dp    float64
		)
		if cfg.PressureDrop {
			dp = r.PressureDrop()
		}
		if err = cw.Write([]string{ip.Title, strconv.Itoa(n), ff(tw), ff(q), ff(r.HeatLoad()),
			ff(r.CoolantTemperatureRise()), ff(dp)}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
