package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikilink/internal/config"
	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/frontmatter"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Stdout receives command output; os.Stdout when nil.
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"wikilink.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render  RenderCmd  `cmd:"" help:"Render a Markdown file to HTML"`
	Links   LinksCmd   `cmd:"" help:"List the links of a Markdown file"`
	Convert ConvertCmd `cmd:"" help:"Rewrite wiki links as standard Markdown links"`
	Build   BuildCmd   `cmd:"" help:"Render the docs directory into the output directory"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(c.newLogger(config.LogLevelInfo, config.LogFormatText))
	return nil
}

// newLogger applies the command-line overrides to the configured level and
// format.
func (c *CLI) newLogger(level config.LogLevel, format config.LogFormat) *slog.Logger {
	if c.Verbose {
		level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	return config.NewLogger(os.Stderr, level, format)
}

// loadConfig loads the configuration file. A missing file at the default
// path falls back to the built-in defaults so single-file commands work
// without any setup.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(root.Config); os.IsNotExist(err) && root.Config == config.DefaultPath {
		slog.Debug("No configuration file; using defaults", logfields.Path(root.Config))
		cfg = config.Default()
	} else {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	logger := root.newLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, nil
}

// readBody reads a Markdown file and strips its frontmatter. prefix is the
// stripped frontmatter block including delimiters.
func readBody(path string) (prefix, body []byte, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read file").
			WithContext("file", path).
			Build()
	}
	_, body, _, err = frontmatter.Split(content)
	if err != nil {
		slog.Warn("Ignoring frontmatter", logfields.File(path), logfields.Error(err))
		return nil, content, nil
	}
	return content[:len(content)-len(body)], body, nil
}

// writeOutput writes data to path, or to the command output when path is
// empty.
func writeOutput(g *Global, path string, data []byte) error {
	if path == "" {
		_, err := g.out().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("file", path).
			Build()
	}
	return nil
}
