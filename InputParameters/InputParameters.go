package InputParameters

import (
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/regencool/channel"
	"github.com/notargets/regencool/contour"
	"github.com/notargets/regencool/coolant"
	"github.com/notargets/regencool/correlations"
	"github.com/notargets/regencool/regen"
)

type Geometry struct {
	ThroatDiameter     float64 `json:"ThroatDiameter"` // m
	ContractionRatio   float64 `json:"ContractionRatio"`
	ChamberLength      float64 `json:"ChamberLength"` // injector face to throat, m
	ContractionAngle   float64 `json:"ContractionAngle"`
	ConvergentArcRatio float64 `json:"ConvergentArcRatio"`
	ConcaveArcRatio    float64 `json:"ConcaveArcRatio"`
	ExpansionRatio     float64 `json:"ExpansionRatio"`
	DivergentArcRatio  float64 `json:"DivergentArcRatio"`
	NozzleLength       float64 `json:"NozzleLength"` // throat to exit, m
	InitialAngle       float64 `json:"InitialAngle"`
	ExitAngle          float64 `json:"ExitAngle"`
	Shape              string  `json:"Shape"` // Conical or Parabolic
}

type Reference struct {
	Mach    float64 `json:"Mach"`
	Prandtl float64 `json:"Prandtl"`
	Gamma   float64 `json:"Gamma"`
}

type Gas struct {
	ChamberTemperature float64   `json:"ChamberTemperature"`
	ChamberPressure    float64   `json:"ChamberPressure"`
	CStar              float64   `json:"CStar"`
	Viscosity          float64   `json:"Viscosity"`
	Cp                 float64   `json:"Cp"`
	Prandtl            float64   `json:"Prandtl"`
	Chamber            Reference `json:"Chamber"`
	Throat             Reference `json:"Throat"`
	Exit               Reference `json:"Exit"`
}

type Wall struct {
	Thickness    float64 `json:"Thickness"`
	Conductivity float64 `json:"Conductivity"`
	Emissivity   float64 `json:"Emissivity"`
}

type PropertyTable struct {
	T   []float64 `json:"T"`
	Cp  []float64 `json:"Cp"`
	Mu  []float64 `json:"Mu"`
	K   []float64 `json:"K"`
	Rho []float64 `json:"Rho"`
}

// Coolant takes its properties from exactly one of Fluid (a built-in table),
// Properties (constant) or Table.
type Coolant struct {
	Fluid                 string         `json:"Fluid"`
	Properties            *coolant.State `json:"Properties"`
	Table                 *PropertyTable `json:"Table"`
	InletTemperature      float64        `json:"InletTemperature"`
	InletPressure         float64        `json:"InletPressure"`
	MassFlow              float64        `json:"MassFlow"`
	Roughness             float64        `json:"Roughness"`
	InjectorPressureRatio float64        `json:"InjectorPressureRatio"`
}

// Channels sizes the channels either by Count or by ThroatWidth, never both.
// Heights and Ribs are at the chamber, throat and exit.
type Channels struct {
	Heights     [3]float64 `json:"Heights"`
	Ribs        [3]float64 `json:"Ribs"`
	Count       int        `json:"Count"`
	ThroatWidth float64    `json:"ThroatWidth"`
}

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title          string   `json:"Title"`
	Stations       int      `json:"Stations"`
	MaxIterations  int      `json:"MaxIterations"`
	Stability      float64  `json:"Stability"`
	TuningFactor   float64  `json:"TuningFactor"`
	FinTuning      float64  `json:"FinTuning"`
	Radiation      bool     `json:"Radiation"`
	Curvature      bool     `json:"CurvatureCorrection"`
	PressureDrop   bool     `json:"PressureDrop"`
	Friction       string   `json:"Friction"`
	ParallelDegree int      `json:"ParallelDegree"`
	Geometry       Geometry `json:"Geometry"`
	Gas            Gas      `json:"Gas"`
	Wall           Wall     `json:"Wall"`
	Coolant        Coolant  `json:"Coolant"`
	Channels       Channels `json:"Channels"`
}

const ExampleFile = `
########################################
Title: "Water cooled test chamber"
Stations: 200
PressureDrop: true
Friction: Colebrook-White
Geometry:
  ThroatDiameter: 0.04
  ContractionRatio: 6
  ChamberLength: 0.15
  ContractionAngle: 30
  ConvergentArcRatio: 1.5
  ConcaveArcRatio: 0.5
  ExpansionRatio: 6
  DivergentArcRatio: 0.382
  InitialAngle: 15
  Shape: Conical
Gas:
  ChamberTemperature: 3000
  ChamberPressure: 1.e+6
  CStar: 1600
  Viscosity: 8.e-5
  Cp: 2000
  Prandtl: 0.7
  Chamber: {Mach: 0.1, Prandtl: 0.7, Gamma: 1.2}
  Throat: {Mach: 1, Prandtl: 0.7, Gamma: 1.2}
  Exit: {Mach: 2.7, Prandtl: 0.7, Gamma: 1.22}
Wall:
  Thickness: 0.001
  Conductivity: 350
Coolant:
  Fluid: water
  InletTemperature: 300
  InletPressure: 3.e+6
  MassFlow: 2
  Roughness: 1.e-6
  InjectorPressureRatio: 1.2
Channels:
  Heights: [0.003, 0.002, 0.003]
  Ribs: [0.001, 0.001, 0.001]
  Count: 40
########################################
`

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadFile(path string) (ip *InputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return
}

func (ip *InputParameters) Print() {
	var (
		g = ip.Geometry
		c = ip.Coolant
	)
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Stations\n", ip.Stations)
	fmt.Printf("[%s]\t\t= Nozzle Shape\n", g.Shape)
	fmt.Printf("%8.5f\t\t= Throat Diameter\n", g.ThroatDiameter)
	fmt.Printf("%8.3f\t\t= Contraction Ratio\n", g.ContractionRatio)
	fmt.Printf("%8.3f\t\t= Expansion Ratio\n", g.ExpansionRatio)
	fmt.Printf("%8.1f\t\t= Chamber Temperature\n", ip.Gas.ChamberTemperature)
	fmt.Printf("%10.4e\t\t= Chamber Pressure\n", ip.Gas.ChamberPressure)
	fmt.Printf("%8.4f\t\t= Coolant Mass Flow\n", c.MassFlow)
	fmt.Printf("%8.2f\t\t= Coolant Inlet Temperature\n", c.InletTemperature)
	fmt.Printf("[%v]\t\t\t= Pressure Drop, Friction = %s\n", ip.PressureDrop, ip.Friction)
	fmt.Printf("[%v]\t\t\t= Radiation\n", ip.Radiation)
	fmt.Printf("[%v]\t\t\t= Throat Curvature Correction\n", ip.Curvature)
}

func (ip *InputParameters) Sections() (conv contour.ConvergentSection, div contour.DivergentSection, err error) {
	var (
		g     = ip.Geometry
		shape contour.Shape
	)
	if g.Shape != "" {
		if shape, err = contour.NewShape(g.Shape); err != nil {
			return
		}
	}
	at := math.Pi * 0.25 * g.ThroatDiameter * g.ThroatDiameter
	conv = contour.ConvergentSection{
		ThroatArea:         at,
		ContractionRatio:   g.ContractionRatio,
		ChamberLength:      g.ChamberLength,
		ContractionAngle:   g.ContractionAngle,
		ConvergentArcRatio: g.ConvergentArcRatio,
		ConcaveArcRatio:    g.ConcaveArcRatio,
	}
	div = contour.DivergentSection{
		ThroatArea:        at,
		ExpansionRatio:    g.ExpansionRatio,
		DivergentArcRatio: g.DivergentArcRatio,
		Length:            g.NozzleLength,
		InitialAngle:      g.InitialAngle,
		ExitAngle:         g.ExitAngle,
		Shape:             shape,
	}
	return
}

func (ch Channels) Sizing() (s channel.Sizing, err error) {
	switch {
	case ch.Count > 0 && ch.ThroatWidth > 0:
		err = fmt.Errorf("%w: give either a channel count or a throat channel width, not both", channel.ErrInvalidChannel)
	case ch.Count > 0:
		s = channel.ChannelCount{NC: ch.Count, Rib: ch.Ribs}
	case ch.ThroatWidth > 0:
		s = channel.RibWidth{Rib: ch.Ribs, ThroatChannelWidth: ch.ThroatWidth}
	default:
		err = fmt.Errorf("%w: need a channel count or a throat channel width", channel.ErrInvalidChannel)
	}
	return
}

func reference(r Reference) regen.Reference {
	return regen.Reference{Mach: r.Mach, Prandtl: r.Prandtl, Gamma: r.Gamma}
}

// Config maps the input onto a solver configuration. Unset solver controls are
// left zero for the solver to default.
func (ip *InputParameters) Config() (cfg regen.Config, err error) {
	var (
		g    = ip.Gas
		c    = ip.Coolant
		s    channel.Sizing
		corr correlations.Correlation
	)
	if s, err = ip.Channels.Sizing(); err != nil {
		return
	}
	if ip.Friction != "" {
		if corr, err = correlations.NewCorrelation(ip.Friction); err != nil {
			return
		}
	}
	cfg = regen.Config{
		Gas: regen.GasConditions{
			ChamberTemperature: g.ChamberTemperature,
			ChamberPressure:    g.ChamberPressure,
			CStar:              g.CStar,
			Viscosity:          g.Viscosity,
			Cp:                 g.Cp,
			Prandtl:            g.Prandtl,
			Chamber:            reference(g.Chamber),
			Throat:             reference(g.Throat),
			Exit:               reference(g.Exit),
		},
		Wall: regen.WallConditions{
			Thickness:    ip.Wall.Thickness,
			Conductivity: ip.Wall.Conductivity,
			Emissivity:   ip.Wall.Emissivity,
		},
		Coolant: regen.CoolantConditions{
			InletTemperature:      c.InletTemperature,
			InletPressure:         c.InletPressure,
			MassFlow:              c.MassFlow,
			Roughness:             c.Roughness,
			InjectorPressureRatio: c.InjectorPressureRatio,
		},
		Channel: regen.ChannelConditions{
			Heights: ip.Channels.Heights,
			Sizing:  s,
		},
		Stations:            ip.Stations,
		MaxIter:             ip.MaxIterations,
		Stability:           ip.Stability,
		TuningFactor:        ip.TuningFactor,
		FinTuning:           ip.FinTuning,
		Radiation:           ip.Radiation,
		CurvatureCorrection: ip.Curvature,
		PressureDrop:        ip.PressureDrop,
		Friction:            corr,
		ParallelDegree:      ip.ParallelDegree,
	}
	return
}

func (ip *InputParameters) Provider() (p coolant.Provider, err error) {
	var (
		c     = ip.Coolant
		given int
	)
	for _, set := range []bool{c.Fluid != "", c.Properties != nil, c.Table != nil} {
		if set {
			given++
		}
	}
	if given != 1 {
		return nil, fmt.Errorf("%w: give exactly one of Fluid, Properties or Table for the coolant",
			coolant.ErrInvalidProperty)
	}
	name := c.Fluid
	if name == "" {
		name = ip.Title
	}
	switch {
	case c.Fluid != "":
		return coolant.Lookup(c.Fluid)
	case c.Properties != nil:
		return coolant.NewConstant(name, *c.Properties)
	}
	t := c.Table
	return coolant.NewTable(name, t.T, t.Cp, t.Mu, t.K, t.Rho)
}

// Case resolves everything needed for a solve.
func (ip *InputParameters) Case() (conv contour.ConvergentSection, div contour.DivergentSection,
	cfg regen.Config, prov coolant.Provider, err error) {
	if conv, div, err = ip.Sections(); err != nil {
		return
	}
	if cfg, err = ip.Config(); err != nil {
		return
	}
	prov, err = ip.Provider()
	return
}
