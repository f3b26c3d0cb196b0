package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
)

// runCLI parses args and runs the selected command with output captured.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("wikilink"),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Stdout: &out}, &cli)
	return out.String(), err
}

// setupWorkspace creates a project with a docs directory and chdirs into it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	write(t, filepath.Join(dir, "docs", "Home.md"), "---\ntitle: Front Page\n---\nGo to [[Other]] or [[Nowhere:later]].\n")
	write(t, filepath.Join(dir, "docs", "Other.md"), "Back [[Home]].\n")
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRender(t *testing.T) {
	dir := setupWorkspace(t)
	write(t, filepath.Join(dir, "page.md"), "[[Front Page]] and [[Nowhere]]\n")

	out, err := runCLI(t, "render", "page.md")
	require.NoError(t, err)
	assert.Equal(t,
		"<p><a class=\"wikilink\" href=\"Front-Page.html\">Front Page</a> and "+
			"<a class=\"wikilink new\" href=\"Nowhere.html\">Nowhere</a></p>\n",
		out)

	out, err = runCLI(t, "render", "page.md", "-o", "page.html")
	require.NoError(t, err)
	assert.Empty(t, out)
	html, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `href="Front-Page.html"`)
}

func TestRender_ConfigFile(t *testing.T) {
	dir := setupWorkspace(t)
	write(t, filepath.Join(dir, "custom.yaml"), `links:
  known_pages: [nowhere]
  base_class: ""
  href_prefix: /wiki/
  href_suffix: ""
site:
  discover_pages: false
`)
	write(t, filepath.Join(dir, "page.md"), "[[Nowhere]] [[Other]]\n")

	out, err := runCLI(t, "--config", "custom.yaml", "render", "page.md")
	require.NoError(t, err)
	assert.Equal(t, "<p><a href=\"/wiki/Nowhere\">Nowhere</a> <a class=\"new\" href=\"/wiki/Other\">Other</a></p>\n", out)
}

func TestRender_MissingExplicitConfig(t *testing.T) {
	dir := setupWorkspace(t)
	write(t, filepath.Join(dir, "page.md"), "[[Home]]\n")

	_, err := runCLI(t, "--config", "missing.yaml", "render", "page.md")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLinks_JSON(t *testing.T) {
	dir := setupWorkspace(t)
	write(t, filepath.Join(dir, "page.md"), "[[Other]] [[Gone:label]] [std](x.md)\n")

	out, err := runCLI(t, "links", "page.md", "--format", "json")
	require.NoError(t, err)

	var views []linkView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "Other", views[0].Name)
	require.NotNil(t, views[0].Exists)
	assert.True(t, *views[0].Exists)
	assert.Equal(t, "Gone", views[1].Name)
	assert.Equal(t, "label", views[1].Label)
	assert.Equal(t, "Gone.html", views[1].Destination)
	require.NotNil(t, views[1].Exists)
	assert.False(t, *views[1].Exists)
}

func TestLinks_TextFilters(t *testing.T) {
	dir := setupWorkspace(t)
	write(t, filepath.Join(dir, "page.md"), "[[Other]] [[Gone]] [std](x.md)\n")

	out, err := runCLI(t, "links", "page.md", "--missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Gone")
	assert.Contains(t, out, "new")
	assert.NotContains(t, out, "Other")
	assert.NotContains(t, out, "x.md")

	out, err = runCLI(t, "links", "page.md", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Other")
	assert.Contains(t, out, "inline")
	assert.Contains(t, out, "x.md")
}

func TestConvert(t *testing.T) {
	dir := setupWorkspace(t)
	page := filepath.Join(dir, "page.md")
	write(t, page, "---\ntitle: \"[[Keep]]\"\n---\nSee [[Other]] and `[[Code]]`.\n")

	out, err := runCLI(t, "convert", "page.md")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: \"[[Keep]]\"\n---\nSee [Other](Other.html) and `[[Code]]`.\n", out)

	out, err = runCLI(t, "convert", "page.md", "-w")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 1 wiki links")
	content, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[Other](Other.html)")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := runCLI(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	_, err = os.Stat(filepath.Join(dir, "wikilink.yaml"))
	require.NoError(t, err)

	_, err = runCLI(t, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = runCLI(t, "init", "--force")
	require.NoError(t, err)

	// Commands load the written file.
	write(t, filepath.Join(dir, "page.md"), "[[Home]]\n")
	out, err = runCLI(t, "render", "page.md")
	require.NoError(t, err)
	assert.Equal(t, "<p><a class=\"wikilink new\" href=\"Home.html\">Home</a></p>\n", out)
}

func TestBuild(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := runCLI(t, "build", "--metrics-out", "metrics.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 2 pages: 3 links, 1 to missing pages")
	assert.Contains(t, out, "missing: Nowhere")

	html, err := os.ReadFile(filepath.Join(dir, "site", "Home.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `<a class="wikilink" href="Other.html">Other</a>`)

	text, err := os.ReadFile(filepath.Join(dir, "metrics.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), `wikilink_links_total{exists="false"} 1`)
	assert.Contains(t, string(text), `wikilink_pages_total{outcome="rendered"} 2`)
}

func TestBuild_OutputEqualsDocs(t *testing.T) {
	setupWorkspace(t)

	_, err := runCLI(t, "build", "--output", "docs")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestBuild_Strict(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "build", "--strict")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, out, "missing: Nowhere")
}
