package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by the CLI and site builder.
const (
	KeyFile       = "file"
	KeyPage       = "page"
	KeyHref       = "href"
	KeyExists     = "exists"
	KeyLinks      = "links"
	KeyNewLinks   = "new_links"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyError      = "error"
)

func File(path string) slog.Attr   { return slog.String(KeyFile, path) }
func Page(name string) slog.Attr   { return slog.String(KeyPage, name) }
func Href(href string) slog.Attr   { return slog.String(KeyHref, href) }
func Exists(ok bool) slog.Attr     { return slog.Bool(KeyExists, ok) }
func Links(n int) slog.Attr        { return slog.Int(KeyLinks, n) }
func NewLinks(n int) slog.Attr     { return slog.Int(KeyNewLinks, n) }
func Pages(n int) slog.Attr        { return slog.Int(KeyPages, n) }
func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }

// Duration reports d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
