// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biorefinery CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hadiyati/biorefinery/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the biorefinery CLI.
var rootCmd = &cobra.Command{
	Use:   "biorefinery",
	Short: "Lactic acid biorefinery simulation and techno-economic analysis",
	Long: `biorefinery simulates a glucose-to-lactic-acid process train (sterilization,
fermentation, solids separation, vacuum evaporation, product cooling),
evaluates its economics (capital cost, operating cost, NPV, IRR, MSP), and
keeps a history of runs for scenario comparison.

Process and economic parameters come from biorefinery.yaml; any value can be
overridden through BIOREFINERY_* environment variables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		logrus.SetOutput(os.Stderr)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biorefinery.yaml or ~/.config/biorefinery/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biorefinery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biorefinery"))
		}
	}

	viper.SetEnvPrefix("BIOREFINERY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the config file onto the baseline scenario and
// validates the result.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
