package wikilink

import "bytes"

var (
	opener = []byte("[[")
	closer = []byte("]]")
)

// Span is one bracketed link located in a buffer.
//
// buf[Start:End] is the full "[[...]]" text; Raw is the content between the
// brackets, untrimmed.
type Span struct {
	Start int
	End   int
	Raw   string
}

// FindCandidate returns the lowest index at or after from where a link opener
// could begin, or -1 when there is none. It only looks for a single '[' and
// leaves validation to MatchSpan. Negative offsets are treated as 0; offsets
// at or past the end of buf return -1.
func FindCandidate(buf []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(buf) {
		return -1
	}
	i := bytes.IndexByte(buf[from:], '[')
	if i < 0 {
		return -1
	}
	return from + i
}

// MatchSpan confirms a link that starts exactly at offset at.
//
// The text must read "[[", then at least one character, then the first "]]"
// after that character, all on one line. MatchSpan declines when there is no
// closer on the line or when the content is empty or only whitespace.
func MatchSpan(buf []byte, at int) (Span, bool) {
	if at < 0 || at >= len(buf) {
		return Span{}, false
	}
	rest := buf[at:]
	if !bytes.HasPrefix(rest, opener) {
		return Span{}, false
	}
	line := rest[len(opener):]
	if eol := bytes.IndexAny(line, "\r\n"); eol >= 0 {
		line = line[:eol]
	}
	if len(line) <= len(closer) {
		return Span{}, false
	}
	// The first content byte is taken unconditionally, so "[[]]]" holds "]".
	idx := bytes.Index(line[1:], closer)
	if idx < 0 {
		return Span{}, false
	}
	content := line[:idx+1]
	if len(bytes.TrimFunc(content, isSpace)) == 0 {
		return Span{}, false
	}
	return Span{
		Start: at,
		End:   at + len(opener) + len(content) + len(closer),
		Raw:   string(content),
	}, true
}
