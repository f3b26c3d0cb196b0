package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

const (
	DefaultDocsDir   = "docs"
	DefaultOutputDir = "site"
)

// ApplyDefaults fills site and logging defaults. Link options are left
// untouched; wikilink.NewConfig owns their defaults.
func ApplyDefaults(cfg *Config) error {
	if cfg.Site.DocsDir == "" {
		cfg.Site.DocsDir = DefaultDocsDir
	}
	if cfg.Site.OutputDir == "" {
		cfg.Site.OutputDir = DefaultOutputDir
	}

	level, err := logLevels.Parse(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Fatal().Build()
	}
	cfg.Logging.Level = level

	format, err := logFormats.Parse(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Fatal().Build()
	}
	cfg.Logging.Format = format
	return nil
}

// Default returns a configuration with every option spelled out.
func Default() *Config {
	str := func(s string) *string { return &s }
	discover := true
	return &Config{
		Links: LinksConfig{
			KnownPages: []string{},
			BaseClass:  str(wikilink.DefaultBaseClass),
			NewClass:   str(wikilink.DefaultNewClass),
			HrefPrefix: str(wikilink.DefaultHrefPrefix),
			HrefSuffix: str(wikilink.DefaultHrefSuffix),
			HrefSpace:  str(wikilink.DefaultHrefSpace),
		},
		Site: SiteConfig{
			DocsDir:       DefaultDocsDir,
			OutputDir:     DefaultOutputDir,
			DiscoverPages: &discover,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Init writes the default configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal default config").Fatal().Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
