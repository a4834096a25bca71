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
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gosa/InputParameters"
	"github.com/notargets/gosa/model_problems"
)

// SweepCmd represents the sweep command
var SweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Anneal one model problem from many seeds in parallel",
	Long: `
Runs independent searches of the same problem, one per seed, in parallel and
summarises the spread of the best energies found,

gosa sweep -I input.yaml --runs 16 [--workers 4]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip        *InputParameters.AnnealParameters
			inputFile string
		)
		inputFile, _ = cmd.Flags().GetString("inputFile")
		runs, _ := cmd.Flags().GetInt("runs")
		workers, _ := cmd.Flags().GetInt("workers")
		if ip, err = processInput(cmd, inputFile); err != nil {
			return
		}
		ip.StatusInterval = 0
		ip.Print()
		var sw *Sweep
		if sw, err = RunSweep(ip, runs, workers); err != nil {
			return
		}
		sw.Print()
		return
	},
}

func init() {
	rootCmd.AddCommand(SweepCmd)
	addInputFlags(SweepCmd)
	SweepCmd.Flags().IntP("runs", "r", 8, "number of independent runs")
	SweepCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "number of runs executed concurrently")
}

type Sweep struct {
	Seeds     []uint64
	Summaries []model_problems.Summary
	Energies  []float64
	Mean, Std float64
	BestRun   int
}

// RunSweep anneals runs copies of the problem, seeded Seed, Seed+1, ...
// Each run owns its model, driver and generator.
func RunSweep(ip *InputParameters.AnnealParameters, runs, workers int) (sw *Sweep, err error) {
	if runs <= 0 {
		err = fmt.Errorf("runs must be positive, got %d", runs)
		return
	}
	if workers <= 0 {
		workers = 1
	}
	var (
		base uint64 = 1
		wg   sync.WaitGroup
		sem  = make(chan struct{}, workers)
		errs = make([]error, runs)
	)
	if ip.Seed != nil {
		base = *ip.Seed
	}
	sw = &Sweep{
		Seeds:     make([]uint64, runs),
		Summaries: make([]model_problems.Summary, runs),
		Energies:  make([]float64, runs),
	}
	s, err := ip.NewSchedule()
	if err != nil {
		return
	}
	for n := 0; n < runs; n++ {
		sw.Seeds[n] = base + uint64(n)
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			ipn := *ip
			ipn.Seed = &sw.Seeds[n]
			m, err := model_problems.NewModel(&ipn)
			if err != nil {
				errs[n] = err
				return
			}
			sw.Summaries[n], errs[n] = m.Run(s, ipn.Config(), 0)
			sw.Energies[n] = sw.Summaries[n].BestEnergy
		}(n)
	}
	wg.Wait()
	for n, e := range errs {
		if e != nil {
			err = fmt.Errorf("run %d (seed %d): %w", n, sw.Seeds[n], e)
			return
		}
	}
	if runs == 1 {
		sw.Mean = sw.Energies[0]
	} else {
		sw.Mean, sw.Std = stat.MeanStdDev(sw.Energies, nil)
	}
	sw.BestRun = floats.MinIdx(sw.Energies)
	return
}

func (sw *Sweep) Print() {
	fmt.Printf("%-6s %20s %16s %10s\n", "Run", "Seed", "Best Energy", "Reason")
	fmt.Printf("%-6s %20s %16s %10s\n", "------", "--------------------", "----------------", "----------")
	for n, sum := range sw.Summaries {
		fmt.Printf("%-6d %20d %16.8g %10s\n", n, sw.Seeds[n], sum.BestEnergy, sum.Reason)
	}
	fmt.Printf("Mean = %12.8g, StdDev = %12.8g\n", sw.Mean, sw.Std)
	best := sw.Summaries[sw.BestRun]
	fmt.Printf("Best run %d (seed %d): %12.8g at %s\n", sw.BestRun, sw.Seeds[sw.BestRun], best.BestEnergy, best.BestState)
}
