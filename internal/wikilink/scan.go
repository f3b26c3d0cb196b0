package wikilink

// Match pairs a located span with its resolved record.
type Match struct {
	Span   Span
	Record Record
}

// Scan resolves every wiki link in buf, left to right. A candidate that does
// not confirm is skipped one byte past its opener, the way a host scanner
// falls through to its other rules; each link is resolved independently.
func Scan(buf []byte, cfg Config) []Match {
	var out []Match
	pos := FindCandidate(buf, 0)
	for pos >= 0 {
		span, ok := MatchSpan(buf, pos)
		if !ok {
			pos = FindCandidate(buf, pos+1)
			continue
		}
		rec, ok := Resolve(span.Raw, cfg)
		if !ok {
			pos = FindCandidate(buf, pos+1)
			continue
		}
		out = append(out, Match{Span: span, Record: rec})
		pos = FindCandidate(buf, span.End)
	}
	return out
}
