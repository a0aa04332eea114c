package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/lowremag/internal/automation"
	"github.com/san-kum/lowremag/internal/storage"
)

func newScenarioCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("scenario %s: %s\n", s.Name, s.Description)
			out, runErr := automation.RunScenario(cmd.Context(), s, log)

			st := storage.New(dataDir())
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tCASE\tTAU\tSTEPS\tBALANCE\tRUN")
			for i, r := range out {
				runID := "-"
				if save {
					meta := storage.RunMetadata{Cells: r.Experiment.Grid.NumCells(), BrakingTime: r.Experiment.BrakingTime()}
					if runID, err = st.Save(r.Experiment.Case, meta, r.Result, nil); err != nil {
						return err
					}
				}
				fmt.Fprintf(w, "%d\t%s\t%.4g\t%d\t%.3g\t%s\n", i+1, r.Experiment.Case.Name,
					r.Experiment.BrakingTime(), r.Result.StepsTaken, r.Result.Metrics["energy_balance"], runID)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store every finished step")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		cf       caseFlags
		sweep    automation.ParameterSweep
		trials   int
		perturb  float64
		seed     uint64
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one mhd option, or perturb the initial velocity with --trials",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build(cmd.Flags())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			if trials > 0 {
				res, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarlo{
					Base: c, Perturbation: perturb, Trials: trials, Seed: seed, Parallel: parallel,
				}, log)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "TRIAL\tU0\tU/U0\tBOUNDED")
				for i, r := range res {
					fmt.Fprintf(w, "%d\t%.3g\t%.4g\t%v\n", i, r.Velocity, r.SpeedRatio, r.Bounded)
				}
				bounded, unbounded := automation.MonteCarloStats(res)
				fmt.Fprintf(w, "\nbounded %d, unbounded %d\n", bounded, unbounded)
				return w.Flush()
			}

			sweep.Base = c
			sweep.Parallel = parallel
			res, err := automation.RunSweep(cmd.Context(), &sweep, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\tTAU\tU/U0\tBALANCE\n", sweep.Option)
			for _, r := range res {
				fmt.Fprintf(w, "%g\t%.4g\t%.4g\t%.3g\n", r.Value, r.BrakingTime, r.SpeedRatio, r.Balance)
			}
			return w.Flush()
		},
	}
	cf.register(cmd.Flags())
	cmd.Flags().StringVar(&sweep.Option, "option", "lowReMagCoeffs.conductivity.sigma0", "dotted mhd option to vary")
	cmd.Flags().Float64Var(&sweep.Min, "min", 5e3, "first value")
	cmd.Flags().Float64Var(&sweep.Max, "max", 2e4, "last value")
	cmd.Flags().IntVar(&sweep.Points, "points", 5, "number of values")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trials instead of a sweep")
	cmd.Flags().Float64Var(&perturb, "perturb", 0.1, "velocity perturbation per component [m/s]")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVarP(&parallel, "parallel", "j", 4, "concurrent runs")
	return cmd
}
