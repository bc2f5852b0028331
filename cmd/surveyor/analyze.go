package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"surveyor/internal/driver"
	"surveyor/internal/facts"
	"surveyor/internal/observ"
	"surveyor/internal/project"
	"surveyor/internal/ui"
)

var (
	analyzeFactsDir string
	analyzeOutDir   string
	analyzeJobs     int
	analyzeNoCache  bool
	analyzeUI       string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFactsDir, "facts", "", "facts directory (defaults to the manifest's)")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out", "", "output directory (defaults to the manifest's)")
	analyzeCmd.Flags().IntVar(&analyzeJobs, "jobs", 0, "parallel decode workers (0 = NumCPU)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "skip the fact decode cache")
	analyzeCmd.Flags().StringVar(&analyzeUI, "ui", "auto", "interactive progress (auto|on|off)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [dir]",
	Short: "Assemble a blueprint from extracted facts and chunk it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}

	opts, err := buildOptions(cmd, startDir)
	if err != nil {
		return err
	}

	mode, err := readUIMode(analyzeUI)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	opts.Timer = timer

	var res *driver.RunResult
	if shouldUseTUI(mode) {
		res, err = runWithProgress(cmd.Context(), opts)
	} else {
		res, err = driver.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	colored := useColor(cmd, os.Stderr)
	printDiagnostics(os.Stderr, res.Bag, colored, quiet)

	if !quiet {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(res.Blueprint, res.Chunks, 80))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %d chunk artifacts to %s\n",
			res.BlueprintPath, len(res.Chunks), res.ChunkDir)
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

// buildOptions resolves flags against the surveyor.toml manifest, when one
// exists. Flags win over manifest keys.
func buildOptions(cmd *cobra.Command, startDir string) (driver.Options, error) {
	opts := driver.Options{
		FactsDir:  analyzeFactsDir,
		OutputDir: analyzeOutDir,
		Jobs:      analyzeJobs,
	}
	opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	manifest, found, err := project.Load(startDir)
	if err != nil {
		return opts, err
	}
	if found {
		if opts.FactsDir == "" {
			opts.FactsDir = manifest.FactsDir()
		}
		if opts.OutputDir == "" {
			opts.OutputDir = manifest.OutputDir()
		}
		opts.SourceDir = manifest.Config.Project.SourceDir
		opts.MaxEndpoints = manifest.Config.Chunks.MaxEndpoints
		opts.MaxPages = manifest.Config.Chunks.MaxPages
		opts.TestIDAttrs = manifest.Config.Locator.TestIDAttrs
		opts.RouteDirs = manifest.Config.Locator.RouteDirs
		if a := manifest.Config.Auth; a.TokenType != "" {
			opts.AuthOverride = &facts.AuthFact{
				TokenType:       a.TokenType,
				LoginEndpoint:   a.LoginEndpoint,
				CookieName:      a.CookieName,
				DefaultEmail:    a.DefaultEmail,
				DefaultPassword: a.DefaultPassword,
			}
		}
	}
	if opts.FactsDir == "" {
		opts.FactsDir = filepath.Join(startDir, "facts")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(startDir, "out")
	}

	if !analyzeNoCache {
		cache, err := driver.OpenDiskCache("surveyor")
		if err == nil {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// runWithProgress drives the pipeline under a Bubble Tea progress view.
func runWithProgress(ctx context.Context, opts driver.Options) (*driver.RunResult, error) {
	files, err := driver.ListFactFiles(opts.FactsDir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 64)
	opts.Events = events

	model := ui.NewProgressModel("analyzing "+opts.FactsDir, files, events)
	prog := tea.NewProgram(model)

	type runOut struct {
		res *driver.RunResult
		err error
	}
	done := make(chan runOut, 1)
	go func() {
		res, err := driver.Run(ctx, opts)
		close(events)
		done <- runOut{res, err}
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	out := <-done
	return out.res, out.err
}
