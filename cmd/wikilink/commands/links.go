package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/markdown"
	"git.home.luguber.info/inful/wikilink/internal/site"
)

// LinksCmd implements the 'links' command.
type LinksCmd struct {
	File    string `arg:"" help:"Markdown file to inspect" type:"existingfile"`
	Format  string `short:"f" help:"Output format (text|json)" enum:"text,json" default:"text"`
	All     bool   `short:"a" help:"Include standard Markdown links, images and reference definitions"`
	Missing bool   `short:"m" help:"Only list wiki links to pages that do not exist"`
}

type linkView struct {
	Kind        markdown.LinkKind `json:"kind"`
	Destination string            `json:"destination"`
	Name        string            `json:"name,omitempty"`
	Label       string            `json:"label,omitempty"`
	Exists      *bool             `json:"exists,omitempty"`
}

func (l *LinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	linkCfg, err := site.LinkConfig(context.Background(), cfg, slog.Default())
	if err != nil {
		return err
	}
	_, body, err := readBody(l.File)
	if err != nil {
		return err
	}
	links, err := markdown.ExtractLinks(body, markdown.WithWikiLinks(linkCfg))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to parse file").
			WithContext("file", l.File).
			Build()
	}

	views := make([]linkView, 0, len(links))
	for _, link := range links {
		if link.Kind != markdown.LinkKindWiki {
			if l.All && !l.Missing {
				views = append(views, linkView{Kind: link.Kind, Destination: link.Destination})
			}
			continue
		}
		if l.Missing && link.Exists {
			continue
		}
		exists := link.Exists
		views = append(views, linkView{
			Kind:        link.Kind,
			Destination: link.Destination,
			Name:        link.Name,
			Label:       link.Label,
			Exists:      &exists,
		})
	}

	if l.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}
	return writeLinksText(g, views)
}

func writeLinksText(g *Global, views []linkView) error {
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	for _, v := range views {
		if v.Exists == nil {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", v.Kind, v.Destination)
			continue
		}
		status := "exists"
		if !*v.Exists {
			status = "new"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.Kind, v.Name, v.Label, status, v.Destination)
	}
	return tw.Flush()
}
