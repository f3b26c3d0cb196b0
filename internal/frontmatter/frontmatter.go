package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML frontmatter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the frontmatter fields that name a page.
type Meta struct {
	Title   string   `yaml:"title"`
	Aliases []string `yaml:"aliases"`
}

// Names returns the non-empty title and aliases, title first.
func (m Meta) Names() []string {
	out := make([]string, 0, 1+len(m.Aliases))
	if m.Title != "" {
		out = append(out, m.Title)
	}
	for _, a := range m.Aliases {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Split separates `---` delimited YAML frontmatter from the Markdown body.
// Both LF and CRLF line endings are accepted. If the document has no
// frontmatter, had is false and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		closeEOF := append(append([]byte{}, nl...), []byte("---")...)
		if bytes.HasSuffix(rest, closeEOF) {
			return rest[:len(rest)-len(closeEOF)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ParseMeta decodes the naming fields of raw frontmatter. A scalar
// `aliases` value is accepted as a one-element list.
func ParseMeta(frontmatter []byte) (Meta, error) {
	var raw struct {
		Title   string    `yaml:"title"`
		Aliases yaml.Node `yaml:"aliases"`
	}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return Meta{}, nil
	}
	if err := yaml.Unmarshal(frontmatter, &raw); err != nil {
		return Meta{}, err
	}

	meta := Meta{Title: raw.Title}
	switch raw.Aliases.Kind {
	case yaml.ScalarNode:
		meta.Aliases = []string{raw.Aliases.Value}
	case yaml.SequenceNode:
		if err := raw.Aliases.Decode(&meta.Aliases); err != nil {
			return Meta{}, err
		}
	}
	return meta, nil
}
