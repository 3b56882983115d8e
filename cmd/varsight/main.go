// Package main provides the varsight command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time).
var (
	version = "dev"
	commit  = "none"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "varsight",
		Short:         "Annotate genomic variants against a binary transcript cache",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(initConfig)

	root.AddCommand(newInspectCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newBuildPredictionsCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() {
	viper.SetConfigName(".varsight")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("VARSIGHT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // missing config is fine
}

// newLogger builds the CLI logger: development output when --verbose is set,
// terse production output otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
