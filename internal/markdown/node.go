package markdown

import (
	"strconv"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// KindWikiLink is the node kind of WikiLink.
var KindWikiLink = gmast.NewNodeKind("WikiLink")

// WikiLink is an inline node for a resolved [[Page]] reference.
//
// Value is the canonical page name. The node has a single text child holding
// the display label and renders as an anchor carrying ClassName and Permalink.
type WikiLink struct {
	gmast.BaseInline

	Value     string
	Alias     string
	Exists    bool
	Permalink string
	ClassName string

	// Source is the byte range of the full "[[...]]" text in the document.
	Source text.Segment
}

// NewWikiLink builds a node from a resolved record.
func NewWikiLink(rec wikilink.Record, source text.Segment) *WikiLink {
	n := &WikiLink{
		Value:     rec.Name,
		Alias:     rec.Label,
		Exists:    rec.Exists,
		Permalink: rec.Href,
		ClassName: rec.ClassName(),
		Source:    source,
	}
	n.AppendChild(n, gmast.NewString([]byte(rec.Label)))
	return n
}

// Kind implements ast.Node.
func (n *WikiLink) Kind() gmast.NodeKind { return KindWikiLink }

// Record returns the link record the node was built from.
func (n *WikiLink) Record() wikilink.Record {
	var classes []string
	if n.ClassName != "" {
		classes = strings.Split(n.ClassName, " ")
	}
	return wikilink.Record{
		Name:    n.Value,
		Label:   n.Alias,
		Exists:  n.Exists,
		Href:    n.Permalink,
		Classes: classes,
	}
}

// Dump implements ast.Node.
func (n *WikiLink) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Value":     n.Value,
		"Alias":     n.Alias,
		"Exists":    strconv.FormatBool(n.Exists),
		"Permalink": n.Permalink,
		"ClassName": n.ClassName,
	}, nil)
}
