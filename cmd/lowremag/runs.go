package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/export"
	"github.com/san-kum/lowremag/internal/metrics"
	"github.com/san-kum/lowremag/internal/storage"
	"github.com/san-kum/lowremag/internal/viz"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir()).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCASE\tTIME\tCELLS\tDURATION\tDT\tINTEG\tTAU")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3gs\t%.3gs\t%s\t%.3gs\n",
					run.ID,
					run.Case,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Cells,
					run.Duration,
					run.Dt,
					run.Integrator,
					run.BrakingTime,
				)
			}
			return w.Flush()
		},
	}
}

// speedAndEnergy reduces stored states to peak speed and kinetic energy per
// unit density and volume.
func speedAndEnergy(states []dynamo.State) (speed, energy []float64) {
	peak := metrics.NewPeakSpeed()
	speed = make([]float64, len(states))
	energy = make([]float64, len(states))
	for i, s := range states {
		peak.Observe(s, 0)
		speed[i] = peak.Value()
		for _, c := range s {
			energy[i] += 0.5 * c * c
		}
	}
	return speed, energy
}

func newPlotCmd() *cobra.Command {
	var cell int
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir())
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			states, _, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			if len(states) == 0 {
				return fmt.Errorf("run %s has no states", args[0])
			}

			fmt.Printf("run: %s\ncase: %s\nsamples: %d\n\n", meta.ID, meta.Case, len(states))
			for k, axis := range []string{"x", "y", "z"} {
				u := viz.Column(states, 3*cell+k)
				fmt.Println(viz.PlotSeries(fmt.Sprintf("u_%s cell %d [m/s]", axis, cell), u))
				fmt.Println()
			}
			speed, _ := speedAndEnergy(states)
			fmt.Println(viz.PlotSeries("peak speed [m/s]", speed))
			return nil
		},
	}
	cmd.Flags().IntVar(&cell, "cell", 0, "cell to plot")
	return cmd
}

func newExportCmd() *cobra.Command {
	var svgPath string
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON, or its decay curves as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir())
			if svgPath == "" {
				return st.ExportJSON(os.Stdout, args[0])
			}

			states, times, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			speed, energy := speedAndEnergy(states)
			if len(energy) > 0 && energy[0] > 0 {
				e0 := energy[0]
				for i := range energy {
					energy[i] /= e0
				}
			}
			if len(speed) > 0 && speed[0] > 0 {
				s0 := speed[0]
				for i := range speed {
					speed[i] /= s0
				}
			}

			f, err := os.Create(svgPath)
			if err != nil {
				return err
			}
			defer f.Close()
			err = export.WriteSVG(f, args[0], times, []export.Series{
				{Name: "peak speed / initial", Y: speed},
				{Name: "kinetic energy / initial", Y: energy},
			}, 800, 400)
			if err != nil {
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG chart to this path instead of JSON")
	return cmd
}
