// Package driver orchestrates one analysis run: parallel fact ingest, the
// registry pre-pass, locator resolution, blueprint assembly, and chunking.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"surveyor/internal/blueprint"
	"surveyor/internal/chunker"
	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/locator"
	"surveyor/internal/observ"
	"surveyor/internal/registry"
)

// Options configures one pipeline run.
type Options struct {
	FactsDir  string
	OutputDir string
	SourceDir string

	MaxEndpoints int
	MaxPages     int
	TestIDAttrs  []string
	RouteDirs    []string

	// AuthOverride seeds the auth fact when the streams carry none.
	AuthOverride *facts.AuthFact

	Jobs           int
	MaxDiagnostics int
	Salt           string

	Timer *observ.Timer
	Cache *DiskCache

	// Events receives progress notifications when non-nil. Sends never
	// block; slow consumers lose events rather than stalling the run.
	Events chan<- Event
}

// RunResult is everything one run produced.
type RunResult struct {
	Blueprint     *blueprint.Blueprint
	Chunks        []chunker.Chunk
	Bag           *diag.Bag
	BlueprintPath string
	ChunkDir      string
}

// Run executes the full pipeline and writes blueprint.json plus one chunk
// artifact per work unit into the output directory.
func Run(ctx context.Context, opts Options) (*RunResult, error) {
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 256
	}

	em := emitter{ch: opts.Events}

	var ing IngestResult
	err := timer.Stage("ingest", func() (string, error) {
		em.stage(StageIngest, StatusWorking)
		var err error
		_, ing, err = IngestDir(ctx, opts.FactsDir, opts.Cache, opts.MaxDiagnostics, opts.Jobs, opts.Events)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d endpoints, %d pages, %d trees",
			len(ing.Endpoints), len(ing.PageFacts), len(ing.Trees)), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", opts.FactsDir, err)
	}
	bag := ing.Bag
	reporter := diag.BagReporter{Bag: bag}

	var reg *registry.Registry
	_ = timer.Stage("registry", func() (string, error) {
		em.stage(StageRegistry, StatusWorking)
		reg = locator.BuildRegistry(ing.Trees, locator.RegistryOptions{
			RouteDirs:   opts.RouteDirs,
			TestIDAttrs: opts.TestIDAttrs,
		}, reporter)
		return fmt.Sprintf("%d components", reg.Len()), nil
	})

	gen := facts.IDGen{Salt: opts.Salt}
	var pages []facts.Page
	_ = timer.Stage("resolve", func() (string, error) {
		em.stage(StageResolve, StatusWorking)
		pages = resolvePages(ing, reg, locator.ResolveOptions{
			TestIDAttrs: opts.TestIDAttrs,
			IDGen:       gen,
		})
		return fmt.Sprintf("%d pages", len(pages)), nil
	})

	auth := ing.Auth
	if auth == nil {
		auth = opts.AuthOverride
	}

	var bp *blueprint.Blueprint
	_ = timer.Stage("assemble", func() (string, error) {
		em.stage(StageAssemble, StatusWorking)
		bp = blueprint.Assemble(ing.Endpoints, pages, auth, blueprint.AssembleOptions{
			IDGen:       gen,
			SourceTexts: sourceTexts(ing.Trees),
			SourceDir:   opts.SourceDir,
			Reporter:    reporter,
		})
		return fmt.Sprintf("%d endpoints, %d pages", len(bp.Endpoints), len(bp.Pages)), nil
	})

	var chunks []chunker.Chunk
	err = timer.Stage("chunk", func() (string, error) {
		em.stage(StageChunk, StatusWorking)
		var err error
		chunks, err = chunker.Split(bp, chunker.Options{
			MaxEndpoints: opts.MaxEndpoints,
			MaxPages:     opts.MaxPages,
			IDGen:        gen,
		})
		return fmt.Sprintf("%d chunks", len(chunks)), err
	})
	if err != nil {
		return nil, err
	}

	res := &RunResult{Blueprint: bp, Chunks: chunks, Bag: bag}
	err = timer.Stage("write", func() (string, error) {
		em.stage(StageWrite, StatusWorking)
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		res.BlueprintPath = filepath.Join(opts.OutputDir, "blueprint.json")
		if err := bp.WriteJSON(res.BlueprintPath); err != nil {
			return "", err
		}
		res.ChunkDir = filepath.Join(opts.OutputDir, "chunks")
		if err := chunker.WriteChunks(chunks, res.ChunkDir); err != nil {
			return "", err
		}
		return res.BlueprintPath, nil
	})
	if err != nil {
		em.stage(StageWrite, StatusError)
		return nil, err
	}
	em.stage(StageWrite, StatusDone)
	return res, nil
}

// Rechunk re-partitions an existing blueprint, writing fresh chunk
// artifacts without re-running ingest or resolution.
func Rechunk(blueprintPath, outputDir string, opts Options) (*RunResult, error) {
	bp, err := blueprint.ReadJSON(blueprintPath)
	if err != nil {
		return nil, err
	}
	chunks, err := chunker.Split(bp, chunker.Options{
		MaxEndpoints: opts.MaxEndpoints,
		MaxPages:     opts.MaxPages,
		IDGen:        facts.IDGen{Salt: opts.Salt},
	})
	if err != nil {
		return nil, err
	}
	chunkDir := filepath.Join(outputDir, "chunks")
	if err := chunker.WriteChunks(chunks, chunkDir); err != nil {
		return nil, err
	}
	return &RunResult{
		Blueprint:     bp,
		Chunks:        chunks,
		Bag:           diag.NewBag(1),
		BlueprintPath: blueprintPath,
		ChunkDir:      chunkDir,
	}, nil
}

// resolvePages turns raw page facts into resolved pages. UI-extracted facts
// with a matching tree get their locators, form flows, and navigation links
// from the resolution engine; router facts stay locator-free until SPA
// consolidation.
func resolvePages(ing IngestResult, reg *registry.Registry, opts locator.ResolveOptions) []facts.Page {
	trees := make(map[string]*facts.TreeFact, len(ing.Trees))
	for i := range ing.Trees {
		trees[ing.Trees[i].FilePath] = &ing.Trees[i]
	}

	out := make([]facts.Page, 0, len(ing.PageFacts))
	for _, pf := range ing.PageFacts {
		page := facts.Page{
			Route:        pf.Route,
			Title:        pf.Title,
			FilePath:     pf.FilePath,
			AuthRequired: pf.AuthRequired,
			Roles:        pf.Roles,
			Confidence:   pf.Confidence,
		}
		for _, seg := range blueprint.Segments(blueprint.NormalizePath(pf.Route)) {
			if blueprint.IsDynamicSegment(seg) {
				page.IsDynamic = true
				page.RouteParams = append(page.RouteParams, blueprint.ParamName(seg))
			}
		}
		if tree, ok := trees[pf.FilePath]; ok && !pf.FromRouter {
			pr := locator.ResolvePage(tree, pf.Route, reg, opts)
			page.Locators = pr.Locators
			page.FormFlows = pr.FormFlows
			page.NavigationLinks = pr.NavigationLinks
			if page.Title == "" {
				page.Title = tree.Component
			}
		}
		out = append(out, page)
	}
	return out
}

// sourceTexts indexes raw source by file path for literal URL linking.
func sourceTexts(trees []facts.TreeFact) map[string]string {
	out := make(map[string]string, len(trees))
	for i := range trees {
		if trees[i].SourceText != "" {
			out[trees[i].FilePath] = trees[i].SourceText
		}
	}
	return out
}
