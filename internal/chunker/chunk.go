package chunker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"surveyor/internal/blueprint"
	"surveyor/internal/facts"
)

// Default per-chunk caps. A domain group exceeding either cap is split into
// fixed-size windows.
const (
	DefaultMaxEndpoints = 5
	DefaultMaxPages     = 10
)

// Chunk is one bounded work unit: the endpoints and pages of a single
// domain, small enough for the downstream generator to consume whole.
type Chunk struct {
	ID           string             `json:"id"`
	Domain       string             `json:"domain"`
	HasPages     bool               `json:"hasPages"`
	Endpoints    []facts.Endpoint   `json:"endpoints"`
	Pages        []facts.Page       `json:"pages"`
	AuthStrategy facts.AuthStrategy `json:"authStrategy"`
	OutputName   string             `json:"outputName"`
}

// Options tunes chunking. Zero values fall back to the defaults.
type Options struct {
	MaxEndpoints int
	MaxPages     int
	IDGen        facts.IDGen
}

func (o Options) maxEndpoints() int {
	if o.MaxEndpoints > 0 {
		return o.MaxEndpoints
	}
	return DefaultMaxEndpoints
}

func (o Options) maxPages() int {
	if o.MaxPages > 0 {
		return o.MaxPages
	}
	return DefaultMaxPages
}

// Split partitions the blueprint into chunks. Grouping is by domain key,
// splitting is deterministic (sort, then fixed windows), and the i-th
// endpoint window pairs with the i-th page window of the same domain.
// A non-empty blueprint always yields at least one chunk; zero is a defect
// and reported as an error.
func Split(bp *blueprint.Blueprint, opts Options) ([]Chunk, error) {
	epGroups := make(map[string][]facts.Endpoint)
	for _, e := range bp.Endpoints {
		d := DomainKey(e.NormalizedPath)
		epGroups[d] = append(epGroups[d], e)
	}
	pgGroups := make(map[string][]facts.Page)
	for _, p := range bp.Pages {
		d := DomainKey(p.NormalizedRoute)
		pgGroups[d] = append(pgGroups[d], p)
	}

	domains := make(map[string]bool)
	for d := range epGroups {
		domains[d] = true
	}
	for d := range pgGroups {
		domains[d] = true
	}
	ordered := make([]string, 0, len(domains))
	for d := range domains {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	strategy := ClassifyAuth(bp.Auth)
	var out []Chunk
	for _, d := range ordered {
		eps := epGroups[d]
		pgs := pgGroups[d]
		sort.Slice(eps, func(i, j int) bool {
			if eps[i].NormalizedPath != eps[j].NormalizedPath {
				return eps[i].NormalizedPath < eps[j].NormalizedPath
			}
			return eps[i].Method < eps[j].Method
		})
		sort.Slice(pgs, func(i, j int) bool {
			return pgs[i].NormalizedRoute < pgs[j].NormalizedRoute
		})

		epWins := windows(len(eps), opts.maxEndpoints())
		pgWins := windows(len(pgs), opts.maxPages())
		n := max(len(epWins), len(pgWins))
		for i := 0; i < n; i++ {
			c := Chunk{Domain: d, AuthStrategy: strategy}
			if i < len(epWins) {
				c.Endpoints = eps[epWins[i][0]:epWins[i][1]]
			}
			if i < len(pgWins) {
				c.Pages = pgs[pgWins[i][0]:pgWins[i][1]]
			}
			if len(c.Endpoints) == 0 && len(c.Pages) == 0 {
				continue
			}
			c.HasPages = hasPages(&c)
			c.OutputName = outputName(d, i, n, c.HasPages)
			c.ID = opts.IDGen.Chunk(c.OutputName)
			out = append(out, c)
		}
	}

	if len(out) == 0 && !bp.Empty() {
		return nil, fmt.Errorf("chunking produced zero chunks from a blueprint with %d endpoints and %d pages",
			len(bp.Endpoints), len(bp.Pages))
	}
	return out, nil
}

// windows slices [0, n) into half-open index windows of at most size.
func windows(n, size int) [][2]int {
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// hasPages drives the artifact naming convention: a chunk is UI-facing when
// it carries any page or any endpoint that returns HTML.
func hasPages(c *Chunk) bool {
	if len(c.Pages) > 0 {
		return true
	}
	for i := range c.Endpoints {
		if c.Endpoints[i].Flags.Has(facts.FlagReturnsHTML) {
			return true
		}
	}
	return false
}

// outputName names the artifact: `<domain>.api.spec` or `<domain>.ui.spec`,
// with a 1-indexed `-<n>` inserted when the domain split into several
// chunks.
func outputName(domain string, i, total int, ui bool) string {
	name := domain
	if total > 1 {
		name = fmt.Sprintf("%s-%d", domain, i+1)
	}
	if ui {
		return name + ".ui.spec"
	}
	return name + ".api.spec"
}

// WriteChunks persists one `{chunk: …}` JSON artifact per chunk into dir.
func WriteChunks(chunks []Chunk, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chunk dir: %w", err)
	}
	for i := range chunks {
		wrapper := struct {
			Chunk *Chunk `json:"chunk"`
		}{Chunk: &chunks[i]}
		data, err := json.MarshalIndent(wrapper, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal chunk %s: %w", chunks[i].OutputName, err)
		}
		path := filepath.Join(dir, chunks[i].OutputName+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write chunk %s: %w", chunks[i].OutputName, err)
		}
	}
	return nil
}
