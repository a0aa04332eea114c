package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lowremag/internal/experiment"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mhd/lowremag"
	"github.com/san-kum/lowremag/internal/storage"
	"github.com/san-kum/lowremag/internal/viz"
)

func newRunCmd() *cobra.Command {
	var (
		cf          caseFlags
		sampleEvery int
		noSave      bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a braking case and store the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sample-every") {
				c.SampleEvery = sampleEvery
			}
			e, err := experiment.New(c, log)
			if err != nil {
				return err
			}

			fmt.Printf("running %s (%d cells, %s)...\n", c.Name, e.Grid.NumCells(), c.Integrator)
			start := time.Now()
			result, err := e.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			final, tEnd := result.Final()
			snap, err := e.Snapshot(final)
			if err != nil {
				return err
			}

			rows := []viz.Row{
				{Label: "elapsed", Value: elapsed.Round(time.Millisecond).String()},
				{Label: "steps", Value: fmt.Sprint(result.StepsTaken)},
				{Label: "t end", Value: viz.Num(tEnd, "s")},
				{Label: "braking time", Value: viz.Num(e.BrakingTime(), "s")},
			}
			for _, name := range []string{"kinetic_energy", "joule_energy", "energy_balance", "peak_speed"} {
				rows = append(rows, viz.Row{Label: name, Value: viz.Num(result.Metrics[name], "")})
			}
			if m, ok := e.Model.(*lowremag.Model); ok {
				s, err := m.Summarize(field.Unflatten(final))
				if err != nil {
					return err
				}
				log.WithFields(s.Fields()).Debug("run: final model state")
				rows = append(rows,
					viz.Row{Label: "max |j|", Value: viz.Num(s.MaxCurrent, "A/m²")},
					viz.Row{Label: "max |j×B|", Value: viz.Num(s.MaxLorentz, "N/m³")},
					viz.Row{Label: "joule power", Value: viz.Num(s.JoulePower, "W")},
					viz.Row{Label: "min σ eigen", Value: viz.Num(s.MinSigmaEigen, "S/m")},
				)
			}
			fmt.Println(viz.Table(c.Name, rows))

			if noSave {
				return nil
			}
			st := storage.New(dataDir())
			meta := storage.RunMetadata{Cells: e.Grid.NumCells(), BrakingTime: e.BrakingTime()}
			runID, err := st.Save(e.Case, meta, result, snap)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
			return nil
		},
	}
	cf.register(cmd.Flags())
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "store every n-th state")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}
