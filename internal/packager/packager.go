// Package packager turns a source tree into a single prompt-ready text blob
// with a directory structure sketch and an estimated token count.
package packager

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quorumci/quorum/internal/core"
	"github.com/quorumci/quorum/internal/llm"
)

// Package is the prompt-ready view of a source tree.
type Package struct {
	PromptReadyText    string
	TokenCount         int
	DirectoryStructure string
	SummaryText        string
	FileCount          int
}

// Packager walks a repository and assembles the review input. Exclusions
// come from the repository's .quorum.yml.
type Packager struct {
	repoCfg *core.RepoConfig
	logger  *slog.Logger
}

// New creates a packager. A nil repoCfg means no exclusions.
func New(repoCfg *core.RepoConfig, logger *slog.Logger) *Packager {
	if repoCfg == nil {
		repoCfg = core.DefaultRepoConfig()
	}
	return &Packager{repoCfg: repoCfg, logger: logger}
}

// Pack reads every reviewable file under root and concatenates them into one
// text blob, each file preceded by its relative path header.
func (p *Packager) Pack(root string) (*Package, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading review target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("review target %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p.excludedDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.reviewable(name) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)

	var blob strings.Builder
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		blob.WriteString(fmt.Sprintf("===== %s =====\n", filepath.ToSlash(rel)))
		blob.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			blob.WriteByte('\n')
		}
		blob.WriteByte('\n')
	}

	structure, err := p.directoryStructure(root)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		PromptReadyText:    blob.String(),
		DirectoryStructure: structure,
		FileCount:          len(files),
	}
	pkg.TokenCount = llm.EstimateTokens(pkg.PromptReadyText)
	pkg.SummaryText = fmt.Sprintf("%d files, ~%d tokens", pkg.FileCount, pkg.TokenCount)

	p.logger.Info("packaged codebase",
		"root", root,
		"files", pkg.FileCount,
		"estimated_tokens", pkg.TokenCount,
	)
	return pkg, nil
}

// directoryStructure creates a tree-like sketch of the project.
func (p *Packager) directoryStructure(root string) (string, error) {
	var builder strings.Builder

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel == "." {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && p.excludedDir(d.Name()) {
			return filepath.SkipDir
		}

		depth := strings.Count(rel, string(os.PathSeparator))
		indent := strings.Repeat("  ", depth)

		if d.IsDir() {
			builder.WriteString(fmt.Sprintf("%s- %s/\n", indent, d.Name()))
		} else {
			builder.WriteString(fmt.Sprintf("%s- %s\n", indent, d.Name()))
		}
		return nil
	})

	return builder.String(), err
}

func (p *Packager) excludedDir(name string) bool {
	for _, dir := range p.repoCfg.ExcludeDirs {
		if name == dir {
			return true
		}
	}
	return false
}

func (p *Packager) reviewable(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, excluded := range p.repoCfg.ExcludeExts {
		if ext == excluded || ext == "."+strings.TrimPrefix(excluded, ".") {
			return false
		}
	}
	return isCodeExtension(ext) || isBuildFile(name)
}
