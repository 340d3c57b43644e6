package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quorumci/quorum/internal/config"
	"github.com/quorumci/quorum/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured backends and registered provider families",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		boldColor.Println("Configured backends:")
		for _, spec := range cfg.ModelSpecs {
			marker := "  "
			if spec == cfg.ExtractionSpec {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, spec)
		}
		dimColor.Printf("(* also used for finding extraction)\n")

		fmt.Println()
		boldColor.Println("Registered provider families:")
		for _, name := range llm.RegisteredProviders() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(modelsCmd)
}
