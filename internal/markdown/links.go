package markdown

import "git.home.luguber.info/inful/wikilink/internal/wikilink"

// Options controls how Markdown is parsed and rendered.
type Options struct {
	// WikiLinks enables [[Page]] recognition when non-nil.
	WikiLinks *wikilink.Config
}

// WithWikiLinks returns Options with wiki-link recognition under cfg.
func WithWikiLinks(cfg wikilink.Config) Options {
	return Options{WikiLinks: &cfg}
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	LinkKindWiki                LinkKind = "wiki"
)

// Link is a link-like construct found in a document. Name, Label and Exists
// are only set for wiki links.
type Link struct {
	Kind        LinkKind
	Destination string

	Name   string
	Label  string
	Exists bool
}
