package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
	"git.home.luguber.info/inful/wikilink/internal/markdown"
	"git.home.luguber.info/inful/wikilink/internal/site"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	File  string `arg:"" help:"Markdown file to convert" type:"existingfile"`
	Write bool   `short:"w" help:"Rewrite the file in place instead of printing it"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	linkCfg, err := site.LinkConfig(context.Background(), cfg, slog.Default())
	if err != nil {
		return err
	}
	prefix, body, err := readBody(c.File)
	if err != nil {
		return err
	}

	converted, n, err := markdown.ConvertWikiLinks(body, linkCfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to convert file").
			WithContext("file", c.File).
			Build()
	}
	out := append(append([]byte{}, prefix...), converted...)

	if !c.Write {
		_, err := g.out().Write(out)
		return err
	}
	if n == 0 {
		slog.Info("No wiki links to convert", logfields.File(c.File))
		return nil
	}
	info, err := os.Stat(c.File)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to stat file").
			WithContext("file", c.File).
			Build()
	}
	if err := os.WriteFile(c.File, out, info.Mode().Perm()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").
			WithContext("file", c.File).
			Build()
	}
	_, _ = fmt.Fprintf(g.out(), "Converted %d wiki links in %s\n", n, c.File)
	return nil
}
