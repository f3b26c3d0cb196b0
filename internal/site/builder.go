package site

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/wikilink/internal/config"
	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/frontmatter"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
	"git.home.luguber.info/inful/wikilink/internal/markdown"
	"git.home.luguber.info/inful/wikilink/internal/metrics"
	"git.home.luguber.info/inful/wikilink/internal/util/sets"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// Builder renders every page of a docs directory into HTML fragments.
//
// A Builder remembers the outputs it wrote, so a later build removes the
// pages whose source has since been deleted or renamed. Files it never
// wrote are left alone.
type Builder struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder

	mu      sync.Mutex
	written sets.Set[string]
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the builder's logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) BuilderOption {
	return func(b *Builder) {
		if recorder != nil {
			b.recorder = recorder
		}
	}
}

// NewBuilder returns a builder for cfg.
func NewBuilder(cfg *config.Config, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build discovers the pages, resolves the known-pages snapshot for this run
// and renders each page. The first failing page aborts the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := b.logger.With(logfields.RunID(report.RunID))

	pages, err := DiscoverPages(ctx, b.cfg.Site.DocsDir, logger)
	if err != nil {
		return nil, err
	}
	linkCfg := linkConfigFor(b.cfg, pages)
	logger.Debug("Discovered pages",
		logfields.Pages(len(pages)),
		slog.Int("known_pages", linkCfg.KnownPages().Len()))

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			b.track(report)
			return report, err
		}
		pr, err := b.renderPage(page, linkCfg, logger)
		if err != nil {
			b.recorder.IncPage(metrics.PageFailed)
			logger.Error("Page render failed", logfields.File(page.Path), logfields.Error(err))
			b.track(report)
			return report, err
		}
		b.recorder.IncPage(metrics.PageRendered)
		report.add(pr)
	}
	report.Pruned = b.prune(report, logger)

	report.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(report.Duration)
	logger.Info("Build complete",
		logfields.Pages(len(report.Pages)),
		logfields.Links(report.Links),
		logfields.NewLinks(report.NewLinks),
		slog.Int("pruned", len(report.Pruned)),
		logfields.Duration(report.Duration))
	return report, nil
}

func linkConfigFor(cfg *config.Config, pages []Page) wikilink.Config {
	if !cfg.Site.Discover() {
		return cfg.LinkConfig()
	}
	configured := wikilink.KnownPagesFromKeys(cfg.Links.KnownPages...)
	return cfg.LinkConfig(wikilink.WithKnownPages(configured.Union(KnownPages(pages))))
}

// LinkConfig resolves the link configuration used outside a full build: the
// configured keys plus, when discovery is enabled and the docs directory
// exists, the names of every page in it.
func LinkConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (wikilink.Config, error) {
	if !cfg.Site.Discover() {
		return cfg.LinkConfig(), nil
	}
	if fi, err := os.Stat(cfg.Site.DocsDir); err != nil || !fi.IsDir() {
		return cfg.LinkConfig(), nil
	}
	pages, err := DiscoverPages(ctx, cfg.Site.DocsDir, logger)
	if err != nil {
		return wikilink.Config{}, err
	}
	return linkConfigFor(cfg, pages), nil
}

func (b *Builder) renderPage(page Page, cfg wikilink.Config, logger *slog.Logger) (PageReport, error) {
	start := time.Now()
	src := filepath.Join(b.cfg.Site.DocsDir, filepath.FromSlash(page.Path))
	content, err := os.ReadFile(src)
	if err != nil {
		return PageReport{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("file", src).
			Build()
	}
	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		// Discovery already warned; render the file as-is.
		body = content
	}

	var buf bytes.Buffer
	nodes, err := markdown.RenderLinks(&buf, body, markdown.WithWikiLinks(cfg))
	if err != nil {
		return PageReport{}, errors.WrapError(err, errors.CategoryRender, "failed to render page").
			WithContext("file", src).
			Build()
	}

	out := OutputPath(page.Path, cfg)
	dest := filepath.Join(b.cfg.Site.OutputDir, filepath.FromSlash(out))
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return PageReport{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(dest)).
			Build()
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return PageReport{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext("file", dest).
			Build()
	}

	pr := PageReport{Path: page.Path, Output: out, Links: make([]wikilink.Record, 0, len(nodes))}
	for _, n := range nodes {
		rec := n.Record()
		b.recorder.IncLink(rec.Exists)
		pr.Links = append(pr.Links, rec)
		if !rec.Exists {
			logger.Debug("Link to missing page", logfields.File(page.Path), logfields.Page(rec.Name), logfields.Href(rec.Href))
		}
	}

	elapsed := time.Since(start)
	b.recorder.ObserveRenderDuration(elapsed)
	logger.Debug("Rendered page",
		logfields.File(page.Path),
		logfields.Path(out),
		logfields.Links(len(pr.Links)),
		logfields.Duration(elapsed))
	return pr, nil
}

// track adds the outputs of an incomplete build to the written set without
// pruning anything.
func (b *Builder) track(report *Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.written == nil {
		b.written = sets.New[string]()
	}
	for _, p := range report.Pages {
		b.written.Add(p.Output)
	}
}

// prune removes outputs written by earlier builds that report no longer
// produced, and returns them sorted.
func (b *Builder) prune(report *Report, logger *slog.Logger) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := sets.New[string]()
	for _, p := range report.Pages {
		current.Add(p.Output)
	}
	var pruned []string
	for _, out := range b.written.Sorted() {
		if current.Has(out) {
			continue
		}
		dest := filepath.Join(b.cfg.Site.OutputDir, filepath.FromSlash(out))
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stale page", logfields.Path(dest), logfields.Error(err))
			current.Add(out)
			continue
		}
		logger.Debug("Removed stale page", logfields.Path(out))
		pruned = append(pruned, out)
	}
	b.written = current
	return pruned
}

// OutputPath maps a page path to the path its links point at: spaces in the
// file stem become the href space string and the href suffix replaces the
// extension. An empty suffix, or one ending in '/', yields a directory index.
func OutputPath(rel string, cfg wikilink.Config) string {
	dir, base := path.Split(rel)
	name := strings.ReplaceAll(strings.TrimSuffix(base, path.Ext(base)), " ", cfg.HrefSpace())
	suffix := cfg.HrefSuffix()
	if suffix == "" || strings.HasSuffix(suffix, "/") {
		return path.Join(dir, name, "index.html")
	}
	return dir + name + suffix
}
