package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/ingest"
	"surveyor/internal/source"
)

const (
	factsSuffix = ".facts.jsonl"
	treeSuffix  = ".tree.json"
)

// IngestResult is the deterministic merge of every fact file in a run.
type IngestResult struct {
	Endpoints []facts.Endpoint
	PageFacts []facts.PageFact
	Trees     []facts.TreeFact
	Auth      *facts.AuthFact
	Bag       *diag.Bag
}

type fileResult struct {
	facts *ingest.Result
	tree  *facts.TreeFact
	bag   *diag.Bag
}

// ListFactFiles returns the sorted list of fact and tree files under dir.
func ListFactFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, factsSuffix) || strings.HasSuffix(path, treeSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sorted for deterministic merge order.
	sort.Strings(files)
	return files, nil
}

// IngestDir decodes every fact and tree file under dir in parallel and
// merges the results in sorted file order, so output never depends on
// goroutine scheduling. Per-file diagnostics land in one shared bag, in the
// same file order.
func IngestDir(ctx context.Context, dir string, cache *DiskCache, maxDiagnostics, jobs int, events chan<- Event) (*source.FileSet, IngestResult, error) {
	em := emitter{ch: events}
	files, err := ListFactFiles(dir)
	if err != nil {
		return nil, IngestResult{}, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	out := IngestResult{Bag: diag.NewBag(maxDiagnostics)}
	if len(files) == 0 {
		return fileSet, out, nil
	}

	fileIDs := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrs[i] = fileSet.Load(path)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Indexes are unique per goroutine, no mutex needed.
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			em.file(StageIngest, path, StatusWorking)
			bag := diag.NewBag(maxDiagnostics)
			results[i] = fileResult{bag: bag}
			if loadErrs[i] != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IngestBadJSON,
					Message:  "failed to load fact file: " + loadErrs[i].Error(),
				})
				em.file(StageIngest, path, StatusError)
				return nil
			}
			file := fileSet.Get(fileIDs[i])
			reporter := diag.BagReporter{Bag: bag}
			if strings.HasSuffix(path, treeSuffix) {
				if tf, ok := ingest.DecodeTree(file.Content, fileIDs[i], reporter); ok {
					results[i].tree = &tf
				}
				em.file(StageIngest, path, StatusDone)
				return nil
			}
			results[i].facts = decodeCached(file.Content, fileIDs[i], cache, reporter, bag)
			em.file(StageIngest, path, StatusDone)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, out, err
	}

	// Merge in file order.
	for i := range results {
		r := &results[i]
		if r.bag != nil {
			out.Bag.Merge(r.bag)
		}
		if r.tree != nil {
			out.Trees = append(out.Trees, *r.tree)
		}
		if r.facts == nil {
			continue
		}
		out.Endpoints = append(out.Endpoints, r.facts.Endpoints...)
		out.PageFacts = append(out.PageFacts, r.facts.Pages...)
		if r.facts.Auth != nil {
			if out.Auth != nil {
				out.Bag.Add(diag.Diagnostic{
					Severity: diag.SevWarning,
					Code:     diag.IngestDuplicateAuth,
					Message:  "auth fact declared in more than one file; keeping the first",
				})
			} else {
				out.Auth = r.facts.Auth
			}
		}
	}

	// Stable merge input regardless of which file produced which fact.
	sort.SliceStable(out.Endpoints, func(a, b int) bool {
		x, y := &out.Endpoints[a], &out.Endpoints[b]
		if x.SourceFile != y.SourceFile {
			return x.SourceFile < y.SourceFile
		}
		return x.SourceLine < y.SourceLine
	})
	sort.SliceStable(out.PageFacts, func(a, b int) bool {
		x, y := &out.PageFacts[a], &out.PageFacts[b]
		if x.FilePath != y.FilePath {
			return x.FilePath < y.FilePath
		}
		return x.SourceLine < y.SourceLine
	})
	return fileSet, out, nil
}

// decodeCached consults the disk cache by content digest before decoding.
// Only clean decodes are cached, so a dirty file's warnings come back on
// every run.
func decodeCached(content []byte, fileID source.FileID, cache *DiskCache, reporter diag.Reporter, bag *diag.Bag) *ingest.Result {
	key := DigestOf(content)
	if payload, hit, err := cache.Get(key); err == nil && hit {
		return &ingest.Result{
			Endpoints: payload.Endpoints,
			Pages:     payload.Pages,
			Auth:      payload.Auth,
		}
	}
	res := ingest.DecodeFacts(content, fileID, reporter)
	if bag.Len() == 0 {
		_ = cache.Put(key, &FactsPayload{
			Schema:    diskCacheSchemaVersion,
			Endpoints: res.Endpoints,
			Pages:     res.Pages,
			Auth:      res.Auth,
		})
	}
	return &res
}
