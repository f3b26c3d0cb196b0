package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/wikilink/internal/config"
	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
	"git.home.luguber.info/inful/wikilink/internal/metrics"
	"git.home.luguber.info/inful/wikilink/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Docs       string `short:"d" help:"Docs directory (overrides site.docs_dir)"`
	Output     string `short:"o" help:"Output directory (overrides site.output_dir)"`
	Watch      bool   `short:"w" help:"Keep running and rebuild on changes"`
	MetricsOut string `name:"metrics-out" help:"Write Prometheus metrics in text format to this file after each build"`
	Strict     bool   `help:"Fail when any page links to a missing page (ignored with --watch)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Docs != "" {
		cfg.Site.DocsDir = b.Docs
	}
	if b.Output != "" {
		cfg.Site.OutputDir = b.Output
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return b.run(ctx, g, cfg)
}

func (b *BuildCmd) run(ctx context.Context, g *Global, cfg *config.Config) error {
	registry := prom.NewRegistry()
	builder := site.NewBuilder(cfg,
		site.WithLogger(slog.Default()),
		site.WithRecorder(metrics.NewPrometheusRecorder(registry)))

	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if err := b.afterBuild(g, report, registry); err != nil {
		return err
	}
	if !b.Watch {
		if b.Strict && report.NewLinks > 0 {
			return errors.ValidationError("pages link to missing pages").
				WithContext("missing", report.MissingPages()).
				Build()
		}
		return nil
	}

	return builder.Watch(ctx, site.DefaultDebounce, func(r *site.Report) {
		if err := b.afterBuild(g, r, registry); err != nil {
			slog.Warn("Failed to write build output", logfields.Error(err))
		}
	})
}

func (b *BuildCmd) afterBuild(g *Global, report *site.Report, registry *prom.Registry) error {
	_, _ = fmt.Fprintf(g.out(), "Built %d pages: %d links, %d to missing pages\n",
		len(report.Pages), report.Links, report.NewLinks)
	for _, name := range report.MissingPages() {
		_, _ = fmt.Fprintf(g.out(), "  missing: %s\n", name)
	}
	if b.MetricsOut == "" {
		return nil
	}
	f, err := os.Create(b.MetricsOut)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create metrics file").
			WithContext("file", b.MetricsOut).
			Build()
	}
	defer func() { _ = f.Close() }()
	if err := metrics.WriteText(f, registry); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to write metrics").
			WithContext("file", b.MetricsOut).
			Build()
	}
	return nil
}
