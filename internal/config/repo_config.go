package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quorumci/quorum/internal/core"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParsing  = errors.New("config parsing failed")
)

// LoadRepoConfig loads and parses the .quorum.yml file from a repository path.
func LoadRepoConfig(repoPath string) (*core.RepoConfig, error) {
	configPath := filepath.Join(repoPath, ".quorum.yml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRepoConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read .quorum.yml: %w", err)
	}

	config := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	return config, nil
}

// ApplyRepoOverrides folds a repository's own settings into the app config.
// Only fields the repo actually set are overridden.
func ApplyRepoOverrides(cfg *Config, repoCfg *core.RepoConfig) error {
	if len(repoCfg.Models) > 0 {
		specs := make([]core.ModelSpec, 0, len(repoCfg.Models))
		for _, raw := range repoCfg.Models {
			spec, err := core.ParseModelSpec(raw)
			if err != nil {
				return fmt.Errorf(".quorum.yml models: %w", err)
			}
			specs = append(specs, spec)
		}
		cfg.ModelSpecs = specs
	}
	if repoCfg.PassThreshold != "" {
		threshold, err := core.ParsePassThreshold(repoCfg.PassThreshold)
		if err != nil {
			return fmt.Errorf(".quorum.yml pass_threshold: %w", err)
		}
		cfg.PassThreshold = threshold
	}
	return nil
}
