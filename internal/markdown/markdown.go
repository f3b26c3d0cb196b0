package markdown

import (
	"io"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

func newMarkdown(opts Options) goldmark.Markdown {
	var exts []goldmark.Extender
	if opts.WikiLinks != nil {
		exts = append(exts, NewExtension(*opts.WikiLinks))
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, opts Options) (gmast.Node, error) {
	root := newMarkdown(opts).Parser().Parse(text.NewReader(body))
	return root, nil
}

// Render converts a Markdown body to HTML.
func Render(w io.Writer, body []byte, opts Options) error {
	return newMarkdown(opts).Convert(body, w)
}

// RenderLinks renders body to w and returns its wiki-link nodes, parsing the
// document once for both.
func RenderLinks(w io.Writer, body []byte, opts Options) ([]*WikiLink, error) {
	md := newMarkdown(opts)
	root := md.Parser().Parse(text.NewReader(body))
	if err := md.Renderer().Render(w, body, root); err != nil {
		return nil, err
	}
	return WikiLinks(root), nil
}

// WikiLinks returns the wiki-link nodes of a parsed document in document order.
func WikiLinks(root gmast.Node) []*WikiLink {
	var out []*WikiLink
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if wl, ok := n.(*WikiLink); ok {
				out = append(out, wl)
				return gmast.WalkSkipChildren, nil
			}
		}
		return gmast.WalkContinue, nil
	})
	return out
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	ctx := parser.NewContext()
	root := newMarkdown(opts).Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *WikiLink:
			links = append(links, Link{
				Kind:        LinkKindWiki,
				Destination: node.Permalink,
				Name:        node.Value,
				Label:       node.Alias,
				Exists:      node.Exists,
			})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links, nil
}
