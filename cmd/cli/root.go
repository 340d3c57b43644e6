package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "quorum",
	Short: "quorum runs one code review across several models and measures their agreement.",
	Long: `quorum sends the same review prompt to several independent LLM backends,
collects their reviews, and computes a cross-model agreement analysis:
findings multiple models independently surfaced versus findings a single
model uniquely raised. The agreement signal drives prioritized
recommendations and a pass/fail gate for automated pipelines.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)
}

// initConfig binds QUORUM_-prefixed environment variables.
func initConfig() {
	viper.SetEnvPrefix("QUORUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
