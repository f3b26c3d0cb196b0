package commands

import (
	"bytes"
	"context"
	"log/slog"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
	"git.home.luguber.info/inful/wikilink/internal/markdown"
	"git.home.luguber.info/inful/wikilink/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File   string `arg:"" help:"Markdown file to render" type:"existingfile"`
	Output string `short:"o" help:"Write HTML to this file instead of stdout"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	linkCfg, err := site.LinkConfig(context.Background(), cfg, slog.Default())
	if err != nil {
		return err
	}
	_, body, err := readBody(r.File)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	nodes, err := markdown.RenderLinks(&buf, body, markdown.WithWikiLinks(linkCfg))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to render file").
			WithContext("file", r.File).
			Build()
	}
	slog.Debug("Rendered file", logfields.File(r.File), logfields.Links(len(nodes)))
	return writeOutput(g, r.Output, buf.Bytes())
}
