package wikilink

import "strings"

// Reference is the page name and display label parsed from link content.
type Reference struct {
	PageName    string
	DisplayName string
}

// ParseReference splits link content on its first ':' into a page name and a
// display label, trimming both sides. The label defaults to the page name, and
// a leading ':' ("[[:Page]]") makes the label the page name too.
//
// The second result is false when raw is empty or whitespace-only, meaning
// the text is not a wiki link.
func ParseReference(raw string) (Reference, bool) {
	content := trimSpace(raw)
	if content == "" {
		return Reference{}, false
	}

	ref := Reference{PageName: content, DisplayName: content}
	if name, alias, found := strings.Cut(content, ":"); found {
		ref.PageName = trimSpace(name)
		ref.DisplayName = trimSpace(alias)
		if ref.PageName == "" {
			ref.PageName = ref.DisplayName
		}
	}
	if ref.DisplayName == "" {
		ref.DisplayName = ref.PageName
	}
	return ref, true
}

// Resolve parses raw link content and builds its Record under cfg.
// It returns false when raw is not a wiki link.
func Resolve(raw string, cfg Config) (Record, bool) {
	ref, ok := ParseReference(raw)
	if !ok {
		return Record{}, false
	}
	return cfg.Build(ref), true
}

// Build classifies ref against the known pages and computes its href.
func (c Config) Build(ref Reference) Record {
	exists := c.knownPages.Contains(LookupKey(ref.PageName))

	classes := make([]string, 0, 2)
	if c.baseClass != "" {
		classes = append(classes, c.baseClass)
	}
	if !exists && c.newClass != "" {
		classes = append(classes, c.newClass)
	}

	return Record{
		Name:    ref.PageName,
		Label:   ref.DisplayName,
		Exists:  exists,
		Href:    c.Href(ref.PageName),
		Classes: classes,
	}
}

// Href builds the link target for a canonical page name. Spaces are replaced
// only here; labels are never rewritten.
func (c Config) Href(name string) string {
	return c.hrefPrefix + strings.ReplaceAll(name, " ", c.hrefSpace) + c.hrefSuffix
}
