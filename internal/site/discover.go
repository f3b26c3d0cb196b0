package site

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/frontmatter"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
	"git.home.luguber.info/inful/wikilink/internal/wikilink"
)

// Page is a Markdown file found under the docs directory.
type Page struct {
	// Path is relative to the docs directory, slash separated.
	Path string
	// Names are the file stem followed by the frontmatter title and aliases.
	Names []string
}

// Stem is the file name without directory or extension.
func (p Page) Stem() string {
	base := filepath.Base(filepath.FromSlash(p.Path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// DiscoverPages walks docsDir for Markdown files in lexical order.
// Unreadable frontmatter is logged and the page keeps only its stem.
func DiscoverPages(ctx context.Context, docsDir string, logger *slog.Logger) ([]Page, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var pages []Page
	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != docsDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(path) {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return err
		}
		page := Page{Path: filepath.ToSlash(rel)}
		page.Names = append(page.Names, page.Stem())
		page.Names = append(page.Names, readNames(path, logger)...)
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan docs directory").
			WithContext("path", docsDir).
			Build()
	}
	return pages, nil
}

func readNames(path string, logger *slog.Logger) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read page", logfields.File(path), logfields.Error(err))
		return nil
	}
	fm, _, had, err := frontmatter.Split(content)
	if err != nil || !had {
		if err != nil {
			logger.Warn("Ignoring frontmatter", logfields.File(path), logfields.Error(err))
		}
		return nil
	}
	meta, err := frontmatter.ParseMeta(fm)
	if err != nil {
		logger.Warn("Ignoring frontmatter", logfields.File(path), logfields.Error(err))
		return nil
	}
	return meta.Names()
}

// KnownPages returns the lookup keys of every name of every page.
func KnownPages(pages []Page) wikilink.KnownPages {
	var names []string
	for _, p := range pages {
		names = append(names, p.Names...)
	}
	return wikilink.NewKnownPages(names...)
}
