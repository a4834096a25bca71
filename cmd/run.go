/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

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

	perf "github.com/hodgesds/perf-utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gosa/InputParameters"
	"github.com/notargets/gosa/model_problems"
	"github.com/notargets/gosa/utils"
)

type RunOptions struct {
	InputFile  string
	ProfileDir string
	Perf       bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Anneal one model problem described by an input file",
	Long: `
Runs a single simulated annealing search and prints the best state found,

gosa run -I input.yaml [--maxIterations N] [--seed S] [--profile DIR] [--perf]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ro = &RunOptions{}
			ip *InputParameters.AnnealParameters
		)
		ro.InputFile, _ = cmd.Flags().GetString("inputFile")
		ro.ProfileDir, _ = cmd.Flags().GetString("profile")
		ro.Perf, _ = cmd.Flags().GetBool("perf")
		if ip, err = processInput(cmd, ro.InputFile); err != nil {
			return
		}
		ip.Print()
		var sum model_problems.Summary
		if sum, err = Run(ro, ip); err != nil {
			return
		}
		sum.Print()
		fmt.Println(utils.GetMemUsage())
		return
	},
}

const exampleFile = `
########################################
Title: "Test Case"
Problem: rastrigin # sphere, rastrigin, rosenbrock, logtrig, quadratic, qubo
Dimension: 2
Schedule: exponential # linear, logarithmic, fast
T0: 10.
Alpha: 0.999
MaxIterations: 20000
StagnationWindow: 5000
Seed: 1
Sigma: 0.5
########################################
`

// overridable maps flag names onto the viper keys they override
var overridable = []string{"maxIterations", "seed", "stagnation", "threshold", "status"}

func init() {
	rootCmd.AddCommand(RunCmd)
	addInputFlags(RunCmd)
	RunCmd.Flags().String("profile", "", "write a CPU profile into this directory")
	RunCmd.Flags().Bool("perf", false, "count CPU instructions spent annealing (Linux perf events)")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputFile", "I", "", "YAML file for input parameters like:\n\t- Problem\n\t- Schedule, T0, Alpha\n\t- MaxIterations")
	cmd.Flags().IntP("maxIterations", "n", 0, "override MaxIterations")
	cmd.Flags().Uint64("seed", 0, "override the random Seed")
	cmd.Flags().Int("stagnation", 0, "override StagnationWindow")
	cmd.Flags().Float64("threshold", 0, "override EnergyThreshold")
	cmd.Flags().Int("status", 0, "print the search status every N iterations")
}

// bindInputFlags binds the flags of the executing command, run and sweep share keys.
func bindInputFlags(cmd *cobra.Command) (err error) {
	for _, key := range overridable {
		if err = viper.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return
		}
	}
	return
}

func processInput(cmd *cobra.Command, inputFile string) (ip *InputParameters.AnnealParameters, err error) {
	if err = bindInputFlags(cmd); err != nil {
		return
	}
	if len(inputFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputFile) in YAML format")
		return
	}
	var data []byte
	if data, err = os.ReadFile(inputFile); err != nil {
		return
	}
	ip = &InputParameters.AnnealParameters{}
	if err = ip.Parse(data); err != nil {
		return
	}
	applyOverrides(cmd, ip)
	err = ip.Validate()
	return
}

// applyOverrides copies flags and config file values over the input file.
func applyOverrides(cmd *cobra.Command, ip *InputParameters.AnnealParameters) {
	isSet := func(key string) bool {
		return cmd.Flags().Changed(key) || viper.InConfig(key)
	}
	if isSet("maxIterations") {
		ip.MaxIterations = viper.GetInt("maxIterations")
	}
	if isSet("seed") {
		seed := viper.GetUint64("seed")
		ip.Seed = &seed
	}
	if isSet("stagnation") {
		window := viper.GetInt("stagnation")
		ip.StagnationWindow = &window
	}
	if isSet("threshold") {
		threshold := viper.GetFloat64("threshold")
		ip.EnergyThreshold = &threshold
	}
	if isSet("status") {
		ip.StatusInterval = viper.GetInt("status")
	}
}

func Run(ro *RunOptions, ip *InputParameters.AnnealParameters) (sum model_problems.Summary, err error) {
	var (
		m      model_problems.Model
		solved bool
	)
	if m, err = model_problems.NewModel(ip); err != nil {
		return
	}
	s, err := ip.NewSchedule()
	if err != nil {
		return
	}
	if len(ro.ProfileDir) != 0 {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(ro.ProfileDir)).Stop()
	}
	solve := func() (err error) {
		solved = true
		sum, err = m.Run(s, ip.Config(), ip.StatusInterval)
		return
	}
	if !ro.Perf {
		err = solve()
		return
	}
	pv, perr := perf.CPUInstructions(solve)
	switch {
	case perr == nil:
		fmt.Printf("CPU instructions: %d\n", pv.Value)
	case solved:
		err = perr
	default:
		fmt.Printf("perf events unavailable (%v), running without counters\n", perr)
		err = solve()
	}
	return
}
