package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"surveyor/internal/blueprint"
	"surveyor/internal/chunker"
	"surveyor/internal/testkit"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] out-dir",
	Short: "Check emitted blueprint and chunk artifacts against the structural invariants",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	outDir := args[0]
	bp, err := blueprint.ReadJSON(filepath.Join(outDir, "blueprint.json"))
	if err != nil {
		return err
	}
	chunks, err := readChunks(filepath.Join(outDir, "chunks"))
	if err != nil {
		return err
	}

	failed := false
	if err := testkit.CheckBlueprintInvariants(bp); err != nil {
		failed = true
		fmt.Fprintf(os.Stderr, "blueprint: %v\n", err)
	}
	if err := testkit.CheckChunkInvariants(bp, chunks); err != nil {
		failed = true
		fmt.Fprintf(os.Stderr, "chunks: %v\n", err)
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d endpoints, %d pages, %d chunks\n",
			len(bp.Endpoints), len(bp.Pages), len(chunks))
	}
	return nil
}

func readChunks(dir string) ([]chunker.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read chunk dir: %w", err)
	}
	var out []chunker.Chunk
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		// #nosec G304 -- path comes from the CLI
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var wrapper struct {
			Chunk chunker.Chunk `json:"chunk"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parse chunk %s: %w", e.Name(), err)
		}
		out = append(out, wrapper.Chunk)
	}
	return out, nil
}
