package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/mhd/lowremag"
	"github.com/san-kum/lowremag/internal/thermo"
	"github.com/san-kum/lowremag/internal/viz"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list built-in cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Printf("  %-10s %s, %d cells, u0=%v\n", name, c.Integrator, c.Grid.Nx*c.Grid.Ny*c.Grid.Nz, c.Velocity)
			}
			return nil
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "print the default case as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(config.DefaultCase())
		},
	}
}

// newCheckCmd builds a single-cell lowReMag model from an mhdProperties file
// and reports its coefficients and the response to one velocity.
func newCheckCmd() *cobra.Command {
	var (
		velocity    []float64
		temperature float64
		pe          float64
	)
	cmd := &cobra.Command{
		Use:   "check [mhdProperties file]",
		Short: "parse an mhdProperties file and evaluate the model in one cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(velocity) != 3 {
				return fmt.Errorf("--u needs 3 components, got %d", len(velocity))
			}
			fv := viper.New()
			fv.SetConfigFile(args[0])
			if err := fv.ReadInConfig(); err != nil {
				return err
			}

			g, err := mesh.NewGrid(1, 1, 1, 1, 1, 1)
			if err != nil {
				return err
			}
			th := thermo.NewUniform(g, temperature, pe)
			m, err := lowremag.NewFromConfig(config.ViperSource{V: fv}, th, lowremag.WithLogger(log))
			if err != nil {
				return err
			}
			U := field.UniformVector(1, r3.Vec{X: velocity[0], Y: velocity[1], Z: velocity[2]})
			if err := m.Update(U); err != nil {
				return err
			}
			s, err := m.Summarize(U)
			if err != nil {
				return err
			}

			co := m.Coeffs()
			rows := []viz.Row{
				{Label: "hall effect", Value: fmt.Sprint(co.HallEffect)},
				{Label: "pe gradient", Value: fmt.Sprint(co.ElectronPressureGradient)},
				{Label: "B", Value: fmt.Sprint(m.B()[0])},
				{Label: "j", Value: fmt.Sprint(m.J()[0])},
				{Label: "j×B", Value: fmt.Sprint(m.LorentzForce()[0])},
				{Label: "joule", Value: viz.Num(s.MinJoule, "W/m³")},
				{Label: "min σ eigen", Value: viz.Num(s.MinSigmaEigen, "S/m")},
			}
			fmt.Println(viz.Table(strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])), rows))
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&velocity, "u", []float64{config.DefaultUx, 0, 0}, "velocity [m/s]")
	cmd.Flags().Float64Var(&temperature, "T", config.DefaultTemperature, "temperature [K]")
	cmd.Flags().Float64Var(&pe, "pe", config.DefaultPe, "electron pressure [Pa]")
	return cmd
}
