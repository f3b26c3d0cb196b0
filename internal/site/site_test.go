package site

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikilink/internal/config"
	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/metrics"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newSite(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeFile(t, filepath.Join(docs, "Home.md"),
		"---\ntitle: Welcome Page\naliases: [Start]\n---\nSee [[Getting Started]] and [[Missing Page:later]].\n")
	writeFile(t, filepath.Join(docs, "guide", "Getting Started.md"), "Back to [[start]].\n")
	writeFile(t, filepath.Join(docs, ".drafts", "Hidden.md"), "hidden\n")
	writeFile(t, filepath.Join(docs, "notes.txt"), "[[Home]]\n")

	cfg := config.Default()
	cfg.Site.DocsDir = docs
	cfg.Site.OutputDir = filepath.Join(root, "site")
	return cfg
}

type countingRecorder struct {
	mu       sync.Mutex
	existing int
	missing  int
	pages    map[metrics.PageOutcome]int
	renders  int
	builds   int
}

func (r *countingRecorder) IncLink(exists bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exists {
		r.existing++
	} else {
		r.missing++
	}
}

func (r *countingRecorder) IncPage(o metrics.PageOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pages == nil {
		r.pages = map[metrics.PageOutcome]int{}
	}
	r.pages[o]++
}

func (r *countingRecorder) ObserveRenderDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
}

func (r *countingRecorder) ObserveBuildDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}

func TestDiscoverPages(t *testing.T) {
	cfg := newSite(t)

	pages, err := DiscoverPages(context.Background(), cfg.Site.DocsDir, nil)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, Page{Path: "Home.md", Names: []string{"Home", "Welcome Page", "Start"}}, pages[0])
	assert.Equal(t, Page{Path: "guide/Getting Started.md", Names: []string{"Getting Started"}}, pages[1])
	assert.Equal(t, "Getting Started", pages[1].Stem())

	known := KnownPages(pages)
	assert.Equal(t, []string{"getting-started", "home", "start", "welcome-page"}, known.Keys())
}

func TestDiscoverPages_BadFrontmatterKeepsStem(t *testing.T) {
	docs := t.TempDir()
	writeFile(t, filepath.Join(docs, "Broken.md"), "---\ntitle: Never closed\n")

	pages, err := DiscoverPages(context.Background(), docs, nil)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, []string{"Broken"}, pages[0].Names)
}

func TestDiscoverPages_MissingDir(t *testing.T) {
	_, err := DiscoverPages(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestDiscoverPages_Cancelled(t *testing.T) {
	cfg := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverPages(ctx, cfg.Site.DocsDir, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild(t *testing.T) {
	cfg := newSite(t)
	rec := &countingRecorder{}

	report, err := NewBuilder(cfg, WithRecorder(rec)).Build(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Pages, 2)
	assert.Equal(t, 3, report.Links)
	assert.Equal(t, 1, report.NewLinks)
	assert.Equal(t, []string{"Missing Page"}, report.MissingPages())
	assert.Equal(t, "Home.html", report.Pages[0].Output)
	assert.Equal(t, "guide/Getting-Started.html", report.Pages[1].Output)

	home, err := os.ReadFile(filepath.Join(cfg.Site.OutputDir, "Home.html"))
	require.NoError(t, err)
	assert.Equal(t,
		"<p>See <a class=\"wikilink\" href=\"Getting-Started.html\">Getting Started</a> and "+
			"<a class=\"wikilink new\" href=\"Missing-Page.html\">later</a>.</p>\n",
		string(home))
	assert.NotContains(t, string(home), "Welcome Page")

	guide, err := os.ReadFile(filepath.Join(cfg.Site.OutputDir, "guide", "Getting-Started.html"))
	require.NoError(t, err)
	assert.Contains(t, string(guide), `<a class="wikilink" href="start.html">start</a>`)

	assert.Equal(t, 2, rec.existing)
	assert.Equal(t, 1, rec.missing)
	assert.Equal(t, 2, rec.pages[metrics.PageRendered])
	assert.Equal(t, 2, rec.renders)
	assert.Equal(t, 1, rec.builds)
}

func TestBuild_DiscoveryDisabled(t *testing.T) {
	cfg := newSite(t)
	off := false
	cfg.Site.DiscoverPages = &off
	cfg.Links.KnownPages = []string{"start"}

	report, err := NewBuilder(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.NewLinks)
	assert.Equal(t, []string{"Getting Started", "Missing Page"}, report.MissingPages())
}

func TestBuild_UnwritableOutput(t *testing.T) {
	cfg := newSite(t)
	// A regular file where the output directory should be.
	writeFile(t, cfg.Site.OutputDir, "")
	rec := &countingRecorder{}

	_, err := NewBuilder(cfg, WithRecorder(rec)).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.Equal(t, 1, rec.pages[metrics.PageFailed])
}

func TestBuild_RemovesStalePages(t *testing.T) {
	cfg := newSite(t)
	foreign := filepath.Join(cfg.Site.OutputDir, "extra.html")
	writeFile(t, foreign, "kept\n")
	b := NewBuilder(cfg)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Pruned)

	// Rename one page and delete nothing else.
	require.NoError(t, os.Rename(
		filepath.Join(cfg.Site.DocsDir, "guide", "Getting Started.md"),
		filepath.Join(cfg.Site.DocsDir, "guide", "Setup.md")))

	report, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"guide/Getting-Started.html"}, report.Pruned)
	assert.NoFileExists(t, filepath.Join(cfg.Site.OutputDir, "guide", "Getting-Started.html"))
	assert.FileExists(t, filepath.Join(cfg.Site.OutputDir, "guide", "Setup.html"))
	assert.FileExists(t, filepath.Join(cfg.Site.OutputDir, "Home.html"))
	assert.FileExists(t, foreign)

	require.NoError(t, os.Remove(filepath.Join(cfg.Site.DocsDir, "guide", "Setup.md")))
	report, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"guide/Setup.html"}, report.Pruned)
	assert.NoFileExists(t, filepath.Join(cfg.Site.OutputDir, "guide", "Setup.html"))

	report, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Pruned)
}

func TestBuild_FreshBuilderKeepsExistingOutputs(t *testing.T) {
	cfg := newSite(t)
	_, err := NewBuilder(cfg).Build(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(cfg.Site.DocsDir, "guide", "Getting Started.md")))
	report, err := NewBuilder(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Pruned)
	assert.FileExists(t, filepath.Join(cfg.Site.OutputDir, "guide", "Getting-Started.html"))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		opts []wikilink.Option
		want string
	}{
		{"default", "Home.md", nil, "Home.html"},
		{"spaces", "guide/Getting Started.md", nil, "guide/Getting-Started.html"},
		{"custom space", "A B.markdown", []wikilink.Option{wikilink.WithHrefSpace("_")}, "A_B.html"},
		{"directory suffix", "guide/A B.md", []wikilink.Option{wikilink.WithHrefSuffix("/")}, "guide/A-B/index.html"},
		{"empty suffix", "Home.md", []wikilink.Option{wikilink.WithHrefSuffix("")}, "Home/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.rel, wikilink.NewConfig(tt.opts...)))
		})
	}
}

func TestShouldIgnoreEvent(t *testing.T) {
	out := filepath.Join("/tmp", "site")
	assert.True(t, shouldIgnoreEvent(filepath.Join(out, "Home.html"), out))
	assert.True(t, shouldIgnoreEvent("/docs/.Home.md.swp", out))
	assert.True(t, shouldIgnoreEvent("/docs/Home.md~", out))
	assert.True(t, shouldIgnoreEvent("/docs/#Home.md#", out))
	assert.False(t, shouldIgnoreEvent("/docs/Home.md", out))
	assert.False(t, shouldIgnoreEvent("/tmp/site-notes/Home.md", out))
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	cfg := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan *Report, 8)
	done := make(chan error, 1)
	go func() {
		done <- NewBuilder(cfg).Watch(ctx, 20*time.Millisecond, func(r *Report) {
			select {
			case reports <- r:
			default:
			}
		})
	}()

	page := filepath.Join(cfg.Site.DocsDir, "New Page.md")
	require.Eventually(t, func() bool {
		// Rewrite until the watcher has registered and picked a change up.
		_ = os.WriteFile(page, []byte("[[Home]]\n"), 0o600)
		select {
		case <-reports:
			return true
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)

	_, err := os.Stat(filepath.Join(cfg.Site.OutputDir, "New-Page.html"))
	require.NoError(t, err)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestLinkConfig(t *testing.T) {
	cfg := newSite(t)

	linkCfg, err := LinkConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, linkCfg.KnownPages().Contains("welcome-page"))

	cfg.Site.DocsDir = filepath.Join(t.TempDir(), "absent")
	linkCfg, err = LinkConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, linkCfg.KnownPages().Len())
}
