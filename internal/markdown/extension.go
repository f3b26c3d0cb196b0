package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

const (
	// DefaultParserPriority places the wiki-link parser just ahead of
	// goldmark's link parser (200), so "[[" is tried before "[".
	DefaultParserPriority = 199

	rendererPriority = 500
)

// ExtensionOption customizes the wiki-link extension.
type ExtensionOption func(*wikiLinkExtension)

// WithParserPriority overrides the inline parser priority. Lower values run
// earlier; goldmark's code span parser is 100 and its link parser is 200.
func WithParserPriority(priority int) ExtensionOption {
	return func(e *wikiLinkExtension) { e.priority = priority }
}

type wikiLinkExtension struct {
	cfg      wikilink.Config
	priority int
}

// NewExtension returns a goldmark extender that recognises wiki links
// resolved under cfg.
func NewExtension(cfg wikilink.Config, opts ...ExtensionOption) goldmark.Extender {
	e := &wikiLinkExtension{cfg: cfg, priority: DefaultParserPriority}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *wikiLinkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikiLinkParser{cfg: e.cfg}, e.priority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&wikiLinkRenderer{}, rendererPriority),
	))
}
