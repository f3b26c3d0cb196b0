package wikilink

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/wikilink/internal/util/sets"
)

// LookupKey normalizes a page name into the form stored in KnownPages:
// lowercased, with every space replaced by '-'. No other normalization is
// applied; underscores, punctuation and diacritics are kept as they are.
func LookupKey(name string) string {
	// Casers are stateful, so one is created per call.
	lower := cases.Lower(language.Und).String(name)
	return strings.ReplaceAll(lower, " ", "-")
}

// KnownPages is the set of lookup keys considered to exist.
// The zero value is an empty set.
type KnownPages struct {
	keys sets.Set[string]
}

// KnownPagesFromKeys builds a set from keys that are already normalized.
// Keys are stored verbatim.
func KnownPagesFromKeys(keys ...string) KnownPages {
	return KnownPages{keys: sets.New(keys...)}
}

// NewKnownPages builds a set from page names, normalizing each with LookupKey.
func NewKnownPages(names ...string) KnownPages {
	keys := make(sets.Set[string], len(names))
	for _, name := range names {
		keys.Add(LookupKey(name))
	}
	return KnownPages{keys: keys}
}

// Contains reports whether key is a member.
func (p KnownPages) Contains(key string) bool { return p.keys.Has(key) }

// Len returns the number of keys.
func (p KnownPages) Len() int { return p.keys.Len() }

// Keys returns the keys in ascending order.
func (p KnownPages) Keys() []string { return p.keys.Sorted() }

// Union returns a new set containing the keys of both sets.
func (p KnownPages) Union(other KnownPages) KnownPages {
	return KnownPages{keys: p.keys.Union(other.keys)}
}
