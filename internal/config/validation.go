package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	docs := filepath.Clean(cfg.Site.DocsDir)
	out := filepath.Clean(cfg.Site.OutputDir)
	if docs == out {
		return errors.ValidationError("site.output_dir must differ from site.docs_dir").
			WithContext("docs_dir", cfg.Site.DocsDir).
			WithContext("output_dir", cfg.Site.OutputDir).
			Build()
	}
	for i, key := range cfg.Links.KnownPages {
		if key == "" {
			return errors.ValidationError("links.known_pages must not contain empty keys").
				WithContext("index", i).
				Build()
		}
	}
	return nil
}
