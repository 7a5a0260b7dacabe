package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gaetschwartz/nuformats"
	"github.com/gaetschwartz/nuformats/internal/config"
	"github.com/gaetschwartz/nuformats/internal/render"
)

const (
	flagConfig      = "config"
	flagOutput      = "output"
	flagLogLevel    = "log-level"
	flagPreviewBody = "preview-body"
	flagStripQuotes = "strip-quotes"
	flagSkipInvalid = "skip-invalid"
	flagStrict      = "strict"
	flagNoColor     = "no-color"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:    "nufmt",
		Usage:   "parse EML, ICS, INI and VCF files into structured data",
		Version: nuformats.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Usage: "load settings from `FILE` (yaml, toml or json)"},
			&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "output layout: tree, table or json"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "log level: debug, info, warning or error"},
			&cli.IntFlag{Name: flagPreviewBody, Aliases: []string{"b"}, Usage: "truncate EML bodies to `N` bytes"},
			&cli.BoolFlag{Name: flagStripQuotes, Usage: "strip quotes wrapping INI values"},
			&cli.BoolFlag{Name: flagSkipInvalid, Usage: "skip broken VCF cards and ICS components"},
			&cli.BoolFlag{Name: flagStrict, Usage: "treat warnings as errors"},
			&cli.BoolFlag{Name: flagNoColor, Usage: "disable colored output"},
		},
		HideHelpCommand: true,
	}

	for _, f := range nuformats.Formats() {
		app.Commands = append(app.Commands, parseCommand(f))
	}
	app.Commands = append(app.Commands,
		parseCommand(nuformats.FormatUnknown),
		formatsCommand(),
		versionCommand(),
	)

	return app
}

// parseCommand returns the command parsing files as format, or detecting the
// format of each input for FormatUnknown.
func parseCommand(format nuformats.Format) *cli.Command {
	name := format.String()
	usage := fmt.Sprintf("parse %s input", name)
	if format == nuformats.FormatUnknown {
		name = "auto"
		usage = "detect the format of each input and parse it"
	}

	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[files...]",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 2)
			}
			configureLogging(c.App.ErrWriter, cfg.LogLevel)

			opts := cfg.ParseOptions(log.StandardLogger())
			if format != nuformats.FormatUnknown {
				opts = append(opts, nuformats.WithFormat(format))
			}

			docs, err := parseInputs(c.Context, c.App.Reader, c.Args().Slice(), format, opts)
			if err != nil {
				return cli.Exit(err, 1)
			}

			mode, err := render.ParseMode(cfg.Output)
			if err != nil {
				return cli.Exit(err, 2)
			}
			return output(render.New(c.App.Writer, mode, !c.Bool(flagNoColor)), mode, docs)
		},
	}
}

// loadConfig resolves the configuration file and environment, then applies
// command line flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if c.IsSet(flagOutput) {
		cfg.Output = strings.ToLower(strings.TrimSpace(c.String(flagOutput)))
	}
	if c.IsSet(flagLogLevel) {
		level, err := log.ParseLevel(c.String(flagLogLevel))
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	if c.IsSet(flagPreviewBody) {
		cfg.PreviewBody = c.Int(flagPreviewBody)
	}
	if c.IsSet(flagStripQuotes) {
		cfg.StripQuotes = c.Bool(flagStripQuotes)
	}
	if c.IsSet(flagSkipInvalid) {
		cfg.SkipInvalid = c.Bool(flagSkipInvalid)
	}
	if c.IsSet(flagStrict) {
		cfg.Strict = c.Bool(flagStrict)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configureLogging(w io.Writer, level log.Level) {
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
}

// parseInputs parses the named files concurrently, or standard input when
// there are none.
func parseInputs(ctx context.Context, stdin io.Reader, paths []string, format nuformats.Format, opts []nuformats.Option) ([]*nuformats.Document, error) {
	if len(paths) > 0 {
		log.WithFields(log.Fields{
			"files":  len(paths),
			"format": format,
		}).Debug("Parsing files")
		return nuformats.ParseManyWith(ctx, opts, paths...)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	text := string(data)

	if format == nuformats.FormatUnknown {
		format, err = nuformats.DetectFormat(text, "")
		if err != nil {
			return nil, err
		}
	}

	doc, err := nuformats.Parse(format, text, opts...)
	if err != nil {
		return nil, err
	}
	return []*nuformats.Document{doc}, nil
}

// output renders the documents. Several documents in JSON mode are combined
// into one array so the output stays a single JSON value.
func output(r *render.Renderer, mode render.Mode, docs []*nuformats.Document) error {
	if mode == render.ModeJSON && len(docs) > 1 {
		items := make([]nuformats.Value, len(docs))
		for i, doc := range docs {
			items[i] = nuformats.RecordOf(
				nuformats.Field{Name: "path", Value: nuformats.String(doc.Path)},
				nuformats.Field{Name: "format", Value: nuformats.String(doc.Format.String())},
				nuformats.Field{Name: "value", Value: doc.Value},
			)
		}
		return r.Value("", nuformats.List(items...))
	}

	for _, doc := range docs {
		if err := r.Document(doc); err != nil {
			return err
		}
	}
	return nil
}

func formatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "list supported formats and their parsing policies",
		Action: func(c *cli.Context) error {
			rows := make([]nuformats.Value, 0, 4)
			for _, f := range nuformats.Formats() {
				policy, _ := nuformats.PolicyFor(f)
				exts := make([]nuformats.Value, 0, len(f.Extensions()))
				for _, ext := range f.Extensions() {
					exts = append(exts, nuformats.String(ext))
				}
				rows = append(rows, nuformats.RecordOf(
					nuformats.Field{Name: "format", Value: nuformats.String(f.String())},
					nuformats.Field{Name: "extensions", Value: nuformats.List(exts...)},
					nuformats.Field{Name: "duplicates", Value: nuformats.String(policy.Duplicates.String())},
					nuformats.Field{Name: "malformed line", Value: nuformats.String(policy.MalformedLine)},
				))
			}
			r := render.New(c.App.Writer, render.ModeTable, !c.Bool(flagNoColor))
			return r.Value("formats", nuformats.List(rows...))
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print version information",
		Action: func(c *cli.Context) error {
			v, err := nuformats.SemVer()
			if err != nil {
				return cli.Exit(err, 1)
			}
			info := nuformats.GetVersionInfo()
			_, err = fmt.Fprintf(c.App.Writer, "nufmt v%s\ncommit: %s\nbuilt: %s\ngo: %s\n",
				v, info.GitCommit, info.BuildTime, info.GoVersion)
			return err
		},
	}
}
