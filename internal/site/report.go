package site

import (
	"time"

	"git.home.luguber.info/inful/wikilink/internal/util/sets"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// Report summarizes one build.
type Report struct {
	RunID    string
	Pages    []PageReport
	Links    int
	NewLinks int
	// Pruned lists outputs of earlier builds by the same Builder that were
	// removed because their source page is gone.
	Pruned   []string
	Duration time.Duration
}

// PageReport is the result of rendering a single page.
type PageReport struct {
	// Path is the source path relative to the docs directory.
	Path string
	// Output is the written path relative to the output directory.
	Output string
	Links  []wikilink.Record
}

// Missing returns the page's links to pages that do not exist.
func (p PageReport) Missing() []wikilink.Record {
	var out []wikilink.Record
	for _, rec := range p.Links {
		if !rec.Exists {
			out = append(out, rec)
		}
	}
	return out
}

func (r *Report) add(p PageReport) {
	r.Pages = append(r.Pages, p)
	r.Links += len(p.Links)
	r.NewLinks += len(p.Missing())
}

// MissingPages returns the distinct names of missing link targets, sorted.
func (r *Report) MissingPages() []string {
	names := sets.New[string]()
	for _, p := range r.Pages {
		for _, rec := range p.Missing() {
			names.Add(rec.Name)
		}
	}
	return names.Sorted()
}
