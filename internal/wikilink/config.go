package wikilink

// Defaults applied by NewConfig to every option that is not supplied.
const (
	DefaultBaseClass  = "wikilink"
	DefaultNewClass   = "new"
	DefaultHrefPrefix = ""
	DefaultHrefSuffix = ".html"
	DefaultHrefSpace  = "-"
)

// Config is the resolved configuration for one processing run.
//
// Fields are unexported so a Config cannot change once built; construct it
// with NewConfig.
type Config struct {
	knownPages KnownPages
	baseClass  string
	newClass   string
	hrefPrefix string
	hrefSuffix string
	hrefSpace  string
}

// Option sets one configuration field. Options that are not passed keep their
// default; an option passed with an empty string sets the field to empty.
type Option func(*Config)

// NewConfig resolves opts over the defaults.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		baseClass:  DefaultBaseClass,
		newClass:   DefaultNewClass,
		hrefPrefix: DefaultHrefPrefix,
		hrefSuffix: DefaultHrefSuffix,
		hrefSpace:  DefaultHrefSpace,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithKnownPages sets the pages considered to exist. The set is used as a
// read-only snapshot; callers must not mutate it during a run.
func WithKnownPages(pages KnownPages) Option {
	return func(c *Config) { c.knownPages = pages }
}

// WithKnownPageKeys is shorthand for WithKnownPages(KnownPagesFromKeys(keys...)).
func WithKnownPageKeys(keys ...string) Option {
	return WithKnownPages(KnownPagesFromKeys(keys...))
}

// WithBaseClass sets the class carried by every link.
func WithBaseClass(class string) Option {
	return func(c *Config) { c.baseClass = class }
}

// WithNewClass sets the class appended to links whose page does not exist.
func WithNewClass(class string) Option {
	return func(c *Config) { c.newClass = class }
}

// WithHrefPrefix sets the string prepended to every href.
func WithHrefPrefix(prefix string) Option {
	return func(c *Config) { c.hrefPrefix = prefix }
}

// WithHrefSuffix sets the string appended to every href.
func WithHrefSuffix(suffix string) Option {
	return func(c *Config) { c.hrefSuffix = suffix }
}

// WithHrefSpace sets the replacement for spaces in the page name of an href.
func WithHrefSpace(space string) Option {
	return func(c *Config) { c.hrefSpace = space }
}

// KnownPages returns the set that decides whether a linked page exists.
func (c Config) KnownPages() KnownPages { return c.knownPages }

// BaseClass returns the class every link carries. Empty means none.
func (c Config) BaseClass() string { return c.baseClass }

// NewClass returns the class added to links whose page does not exist.
func (c Config) NewClass() string { return c.newClass }

// HrefPrefix returns the string prepended to every href.
func (c Config) HrefPrefix() string { return c.hrefPrefix }

// HrefSuffix returns the string appended to every href.
func (c Config) HrefSuffix() string { return c.hrefSuffix }

// HrefSpace returns the replacement for spaces in the page name of an href.
func (c Config) HrefSpace() string { return c.hrefSpace }
