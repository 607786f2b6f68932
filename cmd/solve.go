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
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/regencool/InputParameters"
	"github.com/notargets/regencool/plot"
	"github.com/notargets/regencool/regen"
	"github.com/notargets/regencool/utils"
)

type SolveOptions struct {
	ICFile   string
	CSVFile  string
	PNGDir   string
	Graph    bool
	Series   []string
	Parallel int
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the coupled heat transfer of a cooled chamber described by a YAML case file",
	Long: `
Solves the gas side, wall and coolant heat transfer of the chamber described in the
input conditions file and reports wall temperatures, heat flux and coolant state.

regencool solve -I case.yaml --csv result.csv --png plots`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			so  = &SolveOptions{}
		)
		so.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		so.CSVFile, _ = cmd.Flags().GetString("csv")
		so.PNGDir, _ = cmd.Flags().GetString("png")
		so.Graph, _ = cmd.Flags().GetBool("graph")
		so.Series, _ = cmd.Flags().GetStringSlice("series")
		so.Parallel, _ = cmd.Flags().GetInt("parallel")
		ip := processInput(so.ICFile)
		if _, err = RunSolve(ip, so); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the chamber, gas, wall, coolant and channels")
	SolveCmd.Flags().String("csv", "", "write the per-station result table to this CSV file")
	SolveCmd.Flags().String("png", "", "write result charts into this directory")
	SolveCmd.Flags().BoolP("graph", "g", false, "display the result in a chart window, runs until killed (--profile is written first)")
	SolveCmd.Flags().StringSlice("series", []string{"Twg", "Twc", "Tc"}, "result series shown by --graph")
	SolveCmd.Flags().IntP("parallel", "p", 0, "number of goroutines for the per-station work, overrides the input file")
}

func processInput(icFile string) (ip *InputParameters.InputParameters) {
	var err error
	if len(icFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
		os.Exit(1)
	}
	if ip, err = InputParameters.ReadFile(icFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunSolve(ip *InputParameters.InputParameters, so *SolveOptions) (r *regen.Result, err error) {
	conv, div, cfg, prov, err := ip.Case()
	if err != nil {
		return
	}
	if so.Parallel > 0 {
		cfg.ParallelDegree = so.Parallel
	}
	ip.Print()
	if r, err = regen.Solve(conv, div, cfg, prov); err != nil {
		return
	}
	plot.WriteSummary(os.Stdout, r)
	log.Debug(utils.GetMemUsage())
	if so.CSVFile != "" {
		var f *os.File
		if f, err = os.Create(so.CSVFile); err != nil {
			return
		}
		if err = plot.WriteCSV(f, r); err != nil {
			f.Close()
			return
		}
		if err = f.Close(); err != nil {
			return
		}
		log.WithField("file", so.CSVFile).Info("wrote result table")
	}
	if so.PNGDir != "" {
		var files []string
		if err = os.MkdirAll(so.PNGDir, 0o755); err != nil {
			return
		}
		if files, err = plot.SavePNG(r, so.PNGDir); err != nil {
			return
		}
		log.WithField("files", strings.Join(files, ", ")).Info("wrote charts")
	}
	if so.Graph {
		stopProfiler()
		err = plot.Interactive(r, so.Series...)
	}
	return
}
