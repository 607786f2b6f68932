package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a station count study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	studies, err := readCSV(bufio.NewReader(f))
	if err != nil {
		panic(err)
	}
	titles := make([]string, 0, len(studies))
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		cs := studies[title]
		fmt.Printf("Title = %s\n", cs.title)
		for i := range cs.stations {
			fmt.Printf("%d, %v, %v, %v\n", cs.stations[i], cs.maxTwg[i], cs.maxQ[i], cs.heatLoad[i])
		}
		for _, q := range []struct {
			name string
			f    []float64
		}{{"MaxTwg", cs.maxTwg}, {"MaxQ", cs.maxQ}, {"HeatLoad", cs.heatLoad}} {
			for i := 2; i < len(cs.stations); i++ {
				p, ext, ok := cs.Order(q.f, i)
				if !ok {
					fmt.Printf("%s: order undefined at N = %d\n", q.name, cs.stations[i])
					continue
				}
				fmt.Printf("%s: N = %d, observed order = %5.2f, extrapolated = %v\n",
					q.name, cs.stations[i], p, ext)
			}
		}
	}
}

type ConvergenceStudy struct {
	title                   string
	stations                []int
	maxTwg, maxQ, heatLoad  []float64
	coolantRise, pressureDp []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(stations int, maxTwg, maxQ, heatLoad, coolantRise, pressureDp float64) {
	cs.stations = append(cs.stations, stations)
	cs.maxTwg = append(cs.maxTwg, maxTwg)
	cs.maxQ = append(cs.maxQ, maxQ)
	cs.heatLoad = append(cs.heatLoad, heatLoad)
	cs.coolantRise = append(cs.coolantRise, coolantRise)
	cs.pressureDp = append(cs.pressureDp, pressureDp)
}

// Order estimates the observed order of convergence of f from the runs at i-2,
// i-1 and i, which must share one refinement ratio, and the Richardson
// extrapolated value.
func (cs *ConvergenceStudy) Order(f []float64, i int) (p, extrapolated float64, ok bool) {
	var (
		n1, n2, n3 = float64(cs.stations[i-2]), float64(cs.stations[i-1]), float64(cs.stations[i])
		r          = n3 / n2
		d12, d23   = f[i-1] - f[i-2], f[i] - f[i-1]
	)
	if math.Abs(n2/n1-r) > 1.e-6*r || r <= 1 || d12 == 0 || d23 == 0 || d12*d23 < 0 {
		return
	}
	p = math.Log(d12/d23) / math.Log(r)
	extrapolated = f[i] + d23/(math.Pow(r, p)-1)
	ok = !math.IsNaN(p) && !math.IsInf(extrapolated, 0)
	return
}

func readCSV(rd io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
		v       [5]float64
		n       int
	)
	studies = make(map[string]*ConvergenceStudy)
	r := csv.NewReader(rd)
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 7 {
			return nil, fmt.Errorf("line %d: need 7 fields, have %d", i+1, len(rec))
		}
		title := rec[0]
		if n, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		for j := range v {
			if v[j], err = strconv.ParseFloat(rec[j+2], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		cs.Add(n, v[0], v[1], v[2], v[3], v[4])
	}
	return
}
