package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "wikilink.yaml"

// Config represents the application configuration.
type Config struct {
	Links   LinksConfig   `yaml:"links"`
	Site    SiteConfig    `yaml:"site"`
	Logging LoggingConfig `yaml:"logging"`
}

// LinksConfig holds the wiki-link options. String options are pointers so an
// omitted option (nil, takes the default) differs from an empty one.
type LinksConfig struct {
	// KnownPages are lookup keys (lowercase, spaces as '-') of existing pages.
	KnownPages []string `yaml:"known_pages"`
	BaseClass  *string  `yaml:"base_class,omitempty"`
	NewClass   *string  `yaml:"new_class,omitempty"`
	HrefPrefix *string  `yaml:"href_prefix,omitempty"`
	HrefSuffix *string  `yaml:"href_suffix,omitempty"`
	HrefSpace  *string  `yaml:"href_space,omitempty"`
}

// SiteConfig controls the docs-directory build.
type SiteConfig struct {
	DocsDir   string `yaml:"docs_dir"`
	OutputDir string `yaml:"output_dir"`
	// DiscoverPages adds every page found in DocsDir to the known pages.
	DiscoverPages *bool `yaml:"discover_pages,omitempty"`
}

// Discover reports whether page discovery is enabled (default true).
func (s SiteConfig) Discover() bool {
	return s.DiscoverPages == nil || *s.DiscoverPages
}

// Options converts the section into wikilink options. Omitted fields are
// left out so wikilink.NewConfig applies its defaults.
func (l LinksConfig) Options() []wikilink.Option {
	opts := []wikilink.Option{wikilink.WithKnownPageKeys(l.KnownPages...)}
	set := func(v *string, opt func(string) wikilink.Option) {
		if v != nil {
			opts = append(opts, opt(*v))
		}
	}
	set(l.BaseClass, wikilink.WithBaseClass)
	set(l.NewClass, wikilink.WithNewClass)
	set(l.HrefPrefix, wikilink.WithHrefPrefix)
	set(l.HrefSuffix, wikilink.WithHrefSuffix)
	set(l.HrefSpace, wikilink.WithHrefSpace)
	return opts
}

// LinkConfig resolves the links section, plus any extra options, into the
// immutable configuration for one run.
func (c *Config) LinkConfig(extra ...wikilink.Option) wikilink.Config {
	return wikilink.NewConfig(append(c.Links.Options(), extra...)...)
}

// Load reads, expands, defaults and validates the configuration at path.
// Environment variables from .env files are loaded first; ${VAR} references
// in the file are expanded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Fatal().
			Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse expands environment variables in data and decodes it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
