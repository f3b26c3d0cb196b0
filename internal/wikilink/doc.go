// Package wikilink recognises wiki-style references such as [[Page]] and
// [[Page:Alias]] in text and resolves them into link records.
//
// The package is pure. It performs no I/O, keeps no state between calls and
// never mutates the KnownPages snapshot it is given, so every function is safe
// for concurrent use.
//
// Host scanners use FindCandidate as a cheap locator, MatchSpan to confirm a
// link anchored at the current position, and Resolve to turn the bracketed
// content into a Record:
//
//	cfg := wikilink.NewConfig(
//		wikilink.WithKnownPageKeys("wiki-link"),
//		wikilink.WithHrefPrefix("/wiki/"),
//	)
//	for _, m := range wikilink.Scan(buf, cfg) {
//		fmt.Println(m.Record.Href, m.Record.ClassName())
//	}
package wikilink
