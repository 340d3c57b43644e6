package core

// RepoConfig represents the structure of the .quorum.yml file, which lets a
// repository tune how its own reviews run.
type RepoConfig struct {
	// Custom instructions appended to the review prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// High-performance exclusion of entire directories by name.
	// Example: ["dist", "build", "docs"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Exclusion of files based on their extension.
	// The leading dot is optional. Example: [".md", "lock", ".log"]
	ExcludeExts []string `yaml:"exclude_exts"`

	// Models overrides the configured backend set, as "provider:model" pairs.
	Models []string `yaml:"models"`

	// PassThreshold overrides the job-level threshold: strict, lenient, none.
	PassThreshold string `yaml:"pass_threshold"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeDirs:        []string{},
		ExcludeExts:        []string{},
	}
}
