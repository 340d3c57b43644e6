package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quorumci/quorum/internal/config"
	"github.com/quorumci/quorum/internal/consensus"
	"github.com/quorumci/quorum/internal/core"
	"github.com/quorumci/quorum/internal/extract"
	"github.com/quorumci/quorum/internal/llm"
	"github.com/quorumci/quorum/internal/logger"
	"github.com/quorumci/quorum/internal/orchestrator"
	"github.com/quorumci/quorum/internal/packager"
	"github.com/quorumci/quorum/internal/report"
)

var (
	verbose       bool
	flagModels    string
	flagThreshold string
	flagFailOnErr bool
	flagOut       string
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Run a multi-model consensus review of a local codebase",
	Long: `Run a multi-model consensus review of a local codebase.

The review command packages the source tree into a prompt, fans it out to
every configured backend in parallel, extracts structured findings, and
reports which findings the models agree on.

Examples:
  quorum review .
  quorum review --models anthropic:claude-sonnet-4-5,openai:gpt-4o ./service
  quorum review --threshold strict --fail-on-error --out report.json .`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output with timing information")
	reviewCmd.Flags().StringVar(&flagModels, "models", "", "Comma-separated provider:model pairs to fan out to")
	reviewCmd.Flags().StringVar(&flagThreshold, "threshold", "", "Pass threshold: strict, lenient, or none")
	reviewCmd.Flags().BoolVar(&flagFailOnErr, "fail-on-error", false, "Exit nonzero when any backend fails")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Write the JSON report to this path")
	rootCmd.AddCommand(reviewCmd)
}

// stepTimer tracks timing for verbose output
type stepTimer struct {
	stepNum    int
	totalSteps int
	start      time.Time
	verbose    bool
}

func newStepTimer(totalSteps int, verbose bool) *stepTimer {
	return &stepTimer{totalSteps: totalSteps, verbose: verbose}
}

func (t *stepTimer) step(name string) {
	t.stepNum++
	t.start = time.Now()
	if t.verbose {
		titleColor.Printf("\nStep %d/%d: %s...\n", t.stepNum, t.totalSteps, name)
	} else {
		fmt.Printf("%s...\n", name)
	}
}

func (t *stepTimer) done(details ...string) {
	if t.verbose {
		elapsed := time.Since(t.start).Round(time.Millisecond)
		successColor.Printf("   done (%s)\n", elapsed)
		for _, d := range details {
			dimColor.Printf("   %s\n", d)
		}
	}
}

func runReview(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	target := args[0]

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, nil)

	repoCfg, err := config.LoadRepoConfig(target)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	if err := config.ApplyRepoOverrides(cfg, repoCfg); err != nil {
		return err
	}
	if err := applyFlagOverrides(cfg); err != nil {
		return err
	}

	titleColor.Println("Quorum - Multi-Model Consensus Review")
	dimColor.Printf("   Target: %s\n", target)
	dimColor.Printf("   Models: %s\n", formatSpecs(cfg.ModelSpecs))

	timer := newStepTimer(5, verbose)

	// 1. Package the codebase into a prompt.
	timer.step("Packaging codebase")
	pack, err := packager.New(repoCfg, log).Pack(target)
	if err != nil {
		return err
	}
	timer.done(pack.SummaryText)

	prompts, err := llm.NewPromptManager()
	if err != nil {
		return err
	}
	prompt, err := prompts.Render(llm.CodeReviewPrompt, llm.DefaultProvider, map[string]any{
		"Code":               pack.PromptReadyText,
		"DirectoryStructure": pack.DirectoryStructure,
		"CustomInstructions": strings.Join(repoCfg.CustomInstructions, "\n"),
	})
	if err != nil {
		return fmt.Errorf("rendering review prompt: %w", err)
	}

	job := core.ReviewJob{
		Prompt:        prompt,
		ModelSpecs:    cfg.ModelSpecs,
		TokenLimit:    cfg.TokenLimit,
		FailOnError:   cfg.FailOnError,
		PassThreshold: cfg.PassThreshold,
	}

	newExecutor := llm.ExecutorFactory(cfg.MaxRetries, time.Duration(cfg.AttemptTimeoutS)*time.Second, log)

	// 2. Fan the prompt out to every backend.
	timer.step(fmt.Sprintf("Reviewing with %d models", len(job.ModelSpecs)))
	results, runLog := orchestrator.New(log, newExecutor).RunAll(ctx, job)
	timer.done(fmt.Sprintf("%d calls logged", len(runLog.Records())))

	// 3. Extract structured findings from the raw reviews.
	timer.step("Extracting findings")
	categories, rawFindings, err := extract.New(cfg.ExtractionSpec, prompts, log, newExecutor).Extract(ctx, results)
	if err != nil {
		return fmt.Errorf("extracting findings: %w", err)
	}
	timer.done(fmt.Sprintf("%d findings in %d categories", len(rawFindings), len(categories)))

	// 4. Aggregate agreement and synthesize the report.
	timer.step("Computing agreement")
	agg := consensus.Build(rawFindings, categories, results)
	rep := report.Synthesize(agg, results)
	timer.done()

	// 5. Decide and render.
	timer.step("Rendering report")
	passed := report.Passed(job.PassThreshold, rep)
	badge := report.Badge(rep)
	outPath := flagOut
	if outPath == "" {
		outPath = cfg.ReportPath
	}
	if outPath != "" {
		if err := report.WriteJSON(outPath, rep); err != nil {
			return err
		}
	}
	timer.done()

	renderReport(rep, badge, passed)

	if job.FailOnError && orchestrator.HasErrors(results) {
		return fmt.Errorf("one or more backends failed and --fail-on-error is set")
	}
	if !passed {
		return fmt.Errorf("review failed %s threshold", job.PassThreshold)
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) error {
	if flagModels != "" {
		specs, err := config.ParseModelSpecs(flagModels)
		if err != nil {
			return err
		}
		cfg.ModelSpecs = specs
	}
	if flagThreshold != "" {
		threshold, err := core.ParsePassThreshold(flagThreshold)
		if err != nil {
			return err
		}
		cfg.PassThreshold = threshold
	}
	if flagFailOnErr {
		cfg.FailOnError = true
	}
	return nil
}

func formatSpecs(specs []core.ModelSpec) string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
