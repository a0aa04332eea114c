package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/experiment"
	"github.com/san-kum/lowremag/internal/physics"
	"github.com/san-kum/lowremag/internal/viz"
)

func newBrakeCmd() *cobra.Command {
	var (
		cf       caseFlags
		sweep    []float64
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "brake",
		Short: "compare the simulated decay with u0·exp(-t/τ)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build(cmd.Flags())
			if err != nil {
				return err
			}
			if len(sweep) > 0 {
				return brakeSweep(cmd.Context(), c, sweep, parallel)
			}
			return brakeCompare(cmd.Context(), c)
		},
	}
	cf.register(cmd.Flags())
	cmd.Flags().Float64SliceVar(&sweep, "sweep", nil, "run one case per Bz value, e.g. 0.5,1,2")
	cmd.Flags().IntVarP(&parallel, "parallel", "j", 4, "concurrent runs in a sweep")
	return cmd
}

func brakeCompare(ctx context.Context, c *config.Case) error {
	e, err := experiment.New(c, log)
	if err != nil {
		return err
	}
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	tau := e.BrakingTime()
	u0 := result.States[0][0]

	numeric := viz.Column(result.States, 0)
	analytic := make([]float64, len(result.Times))
	worst := 0.0
	for i, t := range result.Times {
		analytic[i] = physics.DecayedVelocity(u0, t, tau)
		if u0 != 0 {
			worst = math.Max(worst, math.Abs(numeric[i]-analytic[i])/math.Abs(u0))
		}
	}

	fmt.Println(viz.PlotSeries("u_x cell 0: simulated, analytic", numeric, analytic))
	fmt.Println()
	fmt.Println(viz.Table("braking", []viz.Row{
		{Label: "tau", Value: viz.Num(tau, "s")},
		{Label: "t / tau", Value: viz.Num(c.Duration/tau, "")},
		{Label: "max rel error", Value: viz.Num(worst, "")},
		{Label: "energy balance", Value: viz.Num(result.Metrics["energy_balance"], "")},
	}))
	return nil
}

func brakeSweep(ctx context.Context, base *config.Case, bz []float64, parallel int) error {
	cases := make([]*config.Case, len(bz))
	for i, b := range bz {
		c := base.Clone()
		c.Name = fmt.Sprintf("%s-bz%g", base.Name, b)
		c.SetMHD("lowReMagCoeffs.B0", []any{0.0, 0.0, b})
		cases[i] = c
	}
	exps, results, err := experiment.Sweep(ctx, cases, log, parallel)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BZ\tTAU\tU_END\tANALYTIC\tBALANCE")
	for i, e := range exps {
		final, tEnd := results[i].Final()
		u0 := results[i].States[0][0]
		fmt.Fprintf(w, "%g\t%.4g\t%.6g\t%.6g\t%.3g\n",
			bz[i], e.BrakingTime(), final[0],
			physics.DecayedVelocity(u0, tEnd, e.BrakingTime()),
			results[i].Metrics["energy_balance"])
	}
	return w.Flush()
}
