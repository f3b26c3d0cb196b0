package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// wikiLinkParser is a goldmark inline parser for [[Page]] links. Its trigger
// is the locator; Parse declines (returns nil, consuming nothing) unless a
// complete link starts at the reader position, so goldmark falls through to
// the next parser registered for '['.
type wikiLinkParser struct {
	cfg wikilink.Config
}

var _ parser.InlineParser = (*wikiLinkParser)(nil)

// goldmark's link parser keeps an open '[' or '![' as an inline node of this
// kind until its closing ']' is seen.
const linkLabelStateKind = "LinkLabelState"

func (p *wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

func (p *wikiLinkParser) Parse(parent gmast.Node, block text.Reader, _ parser.Context) gmast.Node {
	line, seg := block.PeekLine()
	span, ok := wikilink.MatchSpan(line, 0)
	if !ok {
		return nil
	}
	// Links may not contain links: inside the text of a standard link or
	// image the brackets stay literal.
	if openLinkLabel(parent) && closesIntoLink(block, span.End) {
		return nil
	}
	rec, ok := wikilink.Resolve(span.Raw, p.cfg)
	if !ok {
		return nil
	}
	block.Advance(span.End)
	return NewWikiLink(rec, text.NewSegment(seg.Start, seg.Start+span.End))
}

// openLinkLabel reports whether an unclosed '[' or '![' precedes the reader
// position in the current block.
func openLinkLabel(parent gmast.Node) bool {
	if parent == nil {
		return false
	}
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind().String() == linkLabelStateKind {
			return true
		}
	}
	return false
}

// closesIntoLink scans the rest of the block, starting skip bytes into the
// current line, for the ']' that closes the innermost open label and reports
// whether it is followed by '(' or '[' (an inline or full reference link).
// The reader position is restored.
func closesIntoLink(block text.Reader, skip int) bool {
	l, pos := block.Position()
	defer block.SetPosition(l, pos)

	depth := 0
	line, _ := block.PeekLine()
	i := skip
	for len(line) > 0 {
		for ; i < len(line); i++ {
			switch line[i] {
			case '\\':
				i++
			case '[':
				depth++
			case ']':
				if depth > 0 {
					depth--
					continue
				}
				return i+1 < len(line) && (line[i+1] == '(' || line[i+1] == '[')
			}
		}
		block.AdvanceLine()
		line, _ = block.PeekLine()
		i = 0
	}
	return false
}
