package markdown

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

func TestConvertWikiLinks(t *testing.T) {
	cfg := wikilink.NewConfig(wikilink.WithHrefPrefix("/wiki/"), wikilink.WithHrefSpace("_"))
	src := []byte("# Notes\n\nSee [[Home]] and [[Real Page:the page]].\r\n\n`[[Code]]` stays.\n\n```\n[[Fenced]]\n```\n")

	out, n, err := ConvertWikiLinks(src, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		"# Notes\n\nSee [Home](/wiki/Home.html) and [the page](/wiki/Real_Page.html).\r\n\n`[[Code]]` stays.\n\n```\n[[Fenced]]\n```\n",
		string(out))
}

func TestConvertWikiLinks_NoLinks(t *testing.T) {
	src := []byte("plain [link](x.md) and [[ ]]\n")
	out, n, err := ConvertWikiLinks(src, wikilink.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, string(src), string(out))
}

func TestConvertWikiLinks_ResultRendersSameTargets(t *testing.T) {
	cfg := wikilink.NewConfig()
	out, _, err := ConvertWikiLinks([]byte("[[A Page:Label [x]]]"), cfg)
	require.NoError(t, err)

	links, err := ExtractLinks(out, Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "A-Page.html", links[0].Destination)
}

var anchorText = regexp.MustCompile(`<a [^>]*>(.*?)</a>`)

// linkDestination returns the destination of the first standard link in a
// plain Markdown document, decoded the way the HTML renderer decodes it.
func linkDestination(t *testing.T, src []byte) string {
	t.Helper()
	root, err := ParseBody(src, Options{})
	require.NoError(t, err)
	var dest []byte
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if l, ok := n.(*gmast.Link); ok && entering && dest == nil {
			dest = l.Destination
		}
		return gmast.WalkContinue, nil
	})
	require.NotNil(t, dest, "no link in %q", src)
	return string(util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(dest))))
}

func TestConvertWikiLinks_RendersLikeWikiLink(t *testing.T) {
	cfg := wikilink.NewConfig()
	sources := []string{
		"[[Page:*b*]]",
		"[[Page:a_b_ `c`]]",
		`[[A\]]]`,
		"[[Page:&copy; <b>x</b>]]",
		"[[R&amp;D]]",
		"[[Page & Title (2023)]]",
		"[[Page:#1 ~x~ {y} |z| !w]]",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			matches := wikilink.Scan([]byte(src), cfg)
			require.Len(t, matches, 1)

			var wiki bytes.Buffer
			require.NoError(t, Render(&wiki, []byte(src), WithWikiLinks(cfg)))

			converted, n, err := ConvertWikiLinks([]byte(src), cfg)
			require.NoError(t, err)
			require.Equal(t, 1, n)
			var plain bytes.Buffer
			require.NoError(t, Render(&plain, converted, Options{}))

			want := anchorText.FindStringSubmatch(wiki.String())
			got := anchorText.FindStringSubmatch(plain.String())
			require.NotNil(t, want, wiki.String())
			require.NotNil(t, got, plain.String())
			assert.Equal(t, want[1], got[1])
			assert.Equal(t, matches[0].Record.Href, linkDestination(t, converted))
		})
	}
}

func TestInlineLink(t *testing.T) {
	tests := []struct {
		label, dest, want string
	}{
		{"Page", "Page.html", "[Page](Page.html)"},
		{"a [b]", "x.html", `[a \[b\]](x.html)`},
		{"*b* _c_ `d`", "x.html", "[\\*b\\* \\_c\\_ \\`d\\`](x.html)"},
		{"Title", "Page & Title (2023).html", "[Title](<Page &amp; Title (2023).html>)"},
		{"x", "a<b>.html", `[x](<a\<b\>.html>)`},
		{`A\`, `A\.html`, `[A\\](A\\.html)`},
		{"é", "R&amp;D.html", "[é](R&amp;amp;D.html)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InlineLink(tt.label, tt.dest))
	}
}

func TestConvertWikiLinks_LeavesLinkTextAlone(t *testing.T) {
	src := []byte("[see [[Page]]](http://x) and [[Other]]\n")
	out, n, err := ConvertWikiLinks(src, wikilink.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "[see [[Page]]](http://x) and [Other](Other.html)\n", string(out))
}
