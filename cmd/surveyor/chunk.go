package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"surveyor/internal/driver"
	"surveyor/internal/project"
	"surveyor/internal/ui"
)

var (
	chunkOutDir       string
	chunkMaxEndpoints int
	chunkMaxPages     int
)

func init() {
	chunkCmd.Flags().StringVar(&chunkOutDir, "out", "", "output directory (defaults next to the blueprint)")
	chunkCmd.Flags().IntVar(&chunkMaxEndpoints, "max-endpoints", 0, "per-chunk endpoint cap (0 = default)")
	chunkCmd.Flags().IntVar(&chunkMaxPages, "max-pages", 0, "per-chunk page cap (0 = default)")
}

var chunkCmd = &cobra.Command{
	Use:   "chunk [flags] blueprint.json",
	Short: "Re-chunk an existing blueprint",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunk,
}

func runChunk(cmd *cobra.Command, args []string) error {
	blueprintPath := args[0]
	outDir := chunkOutDir
	if outDir == "" {
		outDir = filepath.Dir(blueprintPath)
	}

	opts := driver.Options{
		MaxEndpoints: chunkMaxEndpoints,
		MaxPages:     chunkMaxPages,
	}
	// The manifest's caps apply when flags leave them unset.
	if manifest, found, err := project.Load(filepath.Dir(blueprintPath)); err != nil {
		return err
	} else if found {
		if opts.MaxEndpoints == 0 {
			opts.MaxEndpoints = manifest.Config.Chunks.MaxEndpoints
		}
		if opts.MaxPages == 0 {
			opts.MaxPages = manifest.Config.Chunks.MaxPages
		}
	}

	res, err := driver.Rechunk(blueprintPath, outDir, opts)
	if err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(res.Blueprint, res.Chunks, 80))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chunk artifacts to %s\n", len(res.Chunks), res.ChunkDir)
	}
	return nil
}
