package wikilink

import "strings"

// Record is a resolved wiki link, ready for a renderer.
type Record struct {
	// Name is the canonical page name used for lookup and href building.
	Name string
	// Label is the text shown for the link.
	Label string
	// Exists reports whether Name is in the known pages.
	Exists bool
	// Href is prefix + Name (spaces substituted) + suffix.
	Href string
	// Classes holds the base class followed by the new-page class when the
	// page does not exist. Empty class names are omitted.
	Classes []string
}

// ClassName joins Classes with single spaces, base class first.
func (r Record) ClassName() string {
	return strings.Join(r.Classes, " ")
}

// Reference returns the name and label of r.
func (r Record) Reference() Reference {
	return Reference{PageName: r.Name, DisplayName: r.Label}
}

// Source renders r back to wiki-link syntax.
func (r Record) Source() string {
	return r.Reference().Source()
}

// Source renders ref as "[[Name]]" or "[[Name:Label]]". A name that itself
// contains ':' and has no separate label is written in the leading-colon form
// "[[:Name]]" so it parses back unchanged. A name containing ':' together
// with a distinct label has no exact source form; it is written as-is.
func (ref Reference) Source() string {
	var b strings.Builder
	b.WriteString("[[")
	switch {
	case ref.DisplayName == "" || ref.DisplayName == ref.PageName:
		if strings.Contains(ref.PageName, ":") {
			b.WriteByte(':')
		}
		b.WriteString(ref.PageName)
	default:
		b.WriteString(ref.PageName)
		b.WriteByte(':')
		b.WriteString(ref.DisplayName)
	}
	b.WriteString("]]")
	return b.String()
}
