package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gosa/anneal"
	"github.com/notargets/gosa/utils"
)

// Parameters obtained from the YAML input file
type AnnealParameters struct {
	Title            string       `yaml:"Title"`
	Problem          string       `yaml:"Problem"`
	Dimension        int          `yaml:"Dimension"`
	Schedule         string       `yaml:"Schedule"`
	T0               float64      `yaml:"T0"`
	Alpha            float64      `yaml:"Alpha"`
	Delta            float64      `yaml:"Delta"`
	TMin             float64      `yaml:"TMin"`
	MaxIterations    int          `yaml:"MaxIterations"`
	EnergyThreshold  *float64     `yaml:"EnergyThreshold"`
	StagnationWindow *int         `yaml:"StagnationWindow"`
	Seed             *uint64      `yaml:"Seed"`
	Sigma            float64      `yaml:"Sigma"`
	TemperatureScale float64      `yaml:"TemperatureScale"`
	Bounds           [][2]float64 `yaml:"Bounds"`
	Initial          []float64    `yaml:"Initial"`
	Target           []float64    `yaml:"Target"`
	Density          float64      `yaml:"Density"` // Edge density of generated QUBO instances
	StatusInterval   int          `yaml:"StatusInterval"`
}

func (ip *AnnealParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *AnnealParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Problem\n", ip.Problem)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	fmt.Printf("[%s]\t\t= Schedule\n", ip.Schedule)
	fmt.Printf("%8.5f\t\t= T0\n", ip.T0)
	switch ip.Schedule {
	case "exponential", "exp":
		fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	case "linear":
		fmt.Printf("%8.5f\t\t= Delta\n", ip.Delta)
		fmt.Printf("%8.5f\t\t= TMin\n", ip.TMin)
	}
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", ip.MaxIterations)
	if ip.EnergyThreshold != nil {
		fmt.Printf("%8.5f\t\t= EnergyThreshold\n", *ip.EnergyThreshold)
	}
	if ip.StagnationWindow != nil {
		fmt.Printf("[%d]\t\t\t= StagnationWindow\n", *ip.StagnationWindow)
	}
	if ip.Seed != nil {
		fmt.Printf("[%d]\t\t\t= Seed\n", *ip.Seed)
	}
	if ip.Sigma != 0 {
		fmt.Printf("%8.5f\t\t= Sigma\n", ip.Sigma)
	}
	for i, b := range ip.Bounds {
		fmt.Printf("Bounds[%d] = [%v, %v]\n", i, b[0], b[1])
	}
}

// Config converts the termination and seed parameters for the driver.
func (ip *AnnealParameters) Config() anneal.Config {
	return anneal.Config{
		MaxIterations:    ip.MaxIterations,
		EnergyThreshold:  ip.EnergyThreshold,
		StagnationWindow: ip.StagnationWindow,
		Seed:             ip.Seed,
	}
}

func (ip *AnnealParameters) NewSchedule() (anneal.Schedule, error) {
	return anneal.NewSchedule(ip.Schedule, anneal.ScheduleParameters{
		T0:    ip.T0,
		Alpha: ip.Alpha,
		Delta: ip.Delta,
		TMin:  ip.TMin,
	})
}

// Validate checks the parameters that do not belong to a specific problem.
func (ip *AnnealParameters) Validate() (err error) {
	if err = ip.Config().Validate(); err != nil {
		return
	}
	if _, err = ip.NewSchedule(); err != nil {
		return
	}
	if len(ip.Problem) == 0 {
		return fmt.Errorf("must supply a Problem name in the input parameters")
	}
	if utils.IsNan(ip.Initial) || utils.IsNan(ip.Target) || utils.IsNan(ip.Bounds) {
		return fmt.Errorf("NaN found in Initial, Target or Bounds")
	}
	return anneal.Bounds(ip.Bounds).Validate()
}
