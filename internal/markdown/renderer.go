package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// wikiLinkRenderer writes WikiLink nodes as HTML anchors.
type wikiLinkRenderer struct{}

func (r *wikiLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikiLink, r.renderWikiLink)
}

func (r *wikiLinkRenderer) renderWikiLink(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	n := node.(*WikiLink)

	_, _ = w.WriteString("<a")
	if n.ClassName != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.ClassName)))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Permalink)))
	_, _ = w.WriteString(`">`)
	// The label child is written here so it is escaped but not
	// backslash-unescaped by the text renderer.
	_, _ = w.Write(util.EscapeHTML([]byte(n.Alias)))
	_, _ = w.WriteString("</a>")
	return gmast.WalkSkipChildren, nil
}
