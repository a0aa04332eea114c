package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v   = viper.New()
	log = logrus.New()
)

// main wires the cobra commands. Persistent flags can also be set through
// LOWREMAG_* environment variables.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lowremag",
		Short:         "low magnetic Reynolds number MHD lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			log.SetLevel(logrus.WarnLevel)
			if v.GetBool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().String("data", ".lowremag", "data directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	_ = v.BindPFlags(rootCmd.PersistentFlags())
	v.SetEnvPrefix("lowremag")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(
		newRunCmd(),
		newBrakeCmd(),
		newWatchCmd(),
		newCheckCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCmd(),
		newPresetsCmd(),
		newDefaultsCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Error(err)
		os.Exit(1)
	}
}

func dataDir() string { return v.GetString("data") }
