package markdown

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// ConvertWikiLinks rewrites every wiki link in a Markdown document into a
// standard inline link "[label](href)". Links inside code spans and code
// blocks are left alone. It returns the new content and the number of links
// rewritten.
func ConvertWikiLinks(src []byte, cfg wikilink.Config) ([]byte, int, error) {
	root, err := ParseBody(src, WithWikiLinks(cfg))
	if err != nil {
		return nil, 0, err
	}

	nodes := WikiLinks(root)
	edits := make([]Edit, 0, len(nodes))
	for _, n := range nodes {
		edits = append(edits, Edit{
			Start:       n.Source.Start,
			End:         n.Source.Stop,
			Replacement: []byte(InlineLink(n.Alias, n.Permalink)),
		})
	}

	out, err := ApplyEdits(src, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, len(edits), nil
}

// InlineLink formats a CommonMark inline link that renders label as literal
// text and links to dest unchanged. Every ASCII punctuation character of the
// label is backslash-escaped. In the destination, backslashes are escaped and
// '&' is written as "&amp;" so no entity is resolved; destinations containing
// whitespace, parentheses or angle brackets use the <...> form.
func InlineLink(label, dest string) string {
	var b strings.Builder
	b.Grow(len(label) + len(dest) + 8)
	b.WriteByte('[')
	for i := 0; i < len(label); i++ {
		c := label[i]
		if util.IsPunct(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteString("](")
	if strings.ContainsAny(dest, " \t\v\f()<>") {
		b.WriteByte('<')
		b.WriteString(angleDestEscaper.Replace(dest))
		b.WriteByte('>')
	} else {
		b.WriteString(destEscaper.Replace(dest))
	}
	b.WriteByte(')')
	return b.String()
}

var (
	destEscaper      = strings.NewReplacer(`\`, `\\`, `&`, `&amp;`)
	angleDestEscaper = strings.NewReplacer(`\`, `\\`, `&`, `&amp;`, `<`, `\<`, `>`, `\>`)
)
