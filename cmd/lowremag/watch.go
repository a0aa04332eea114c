package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/lowremag/internal/experiment"
	"github.com/san-kum/lowremag/internal/viz"
)

func newWatchCmd() *cobra.Command {
	var (
		cf           caseFlags
		stepsPerTick int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "step a case live in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.build(cmd.Flags())
			if err != nil {
				return err
			}
			e, err := experiment.New(c, log)
			if err != nil {
				return err
			}
			w, err := viz.NewWatch(e, stepsPerTick)
			if err != nil {
				return err
			}
			return viz.Run(w)
		},
	}
	cf.register(cmd.Flags())
	cmd.Flags().IntVar(&stepsPerTick, "steps", 1, "integrator steps per frame")
	return cmd
}
