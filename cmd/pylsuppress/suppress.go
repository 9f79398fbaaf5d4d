package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/cmdexec"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/config"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/prompt"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/suppress"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

func suppressFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "command",
			Aliases: []string{"c"},
			Usage:   "linter command to run; arguments after it are appended",
			Sources: cli.EnvVars(envVar("command")),
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "pylint config file to read",
			Value:   config.DefaultOutput,
			Sources: cli.EnvVars(envVar("file")),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "file to write the updated config to (default from " + config.FileName + ", else " + config.DefaultOutput + ")",
			Sources: cli.EnvVars(envVar("output")),
		},
		&cli.StringFlag{
			Name:    "section",
			Usage:   "header of the disabled messages section (default from " + config.FileName + ", else " + config.DefaultSection + ")",
			Sources: cli.EnvVars(envVar("section")),
		},
		&cli.StringSliceFlag{
			Name:    "keep",
			Aliases: []string{"k"},
			Usage:   "pattern of message identifiers that are never suppressed",
			Sources: cli.EnvVars(envVar("keep")),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "print the updated config instead of writing it",
			Sources: cli.EnvVars(envVar("dry-run")),
		},
		&cli.BoolFlag{
			Name:    "confirm",
			Usage:   "ask before writing the updated config",
			Sources: cli.EnvVars(envVar("confirm")),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "log progress and linter stderr",
			Sources: cli.EnvVars(envVar("verbose")),
		},
	}
}

type suppressOptions struct {
	Command    []string
	ConfigPath string
	OutputPath string
	Section    string
	Keep       []string
	DryRun     bool
	Confirm    bool
	Verbose    bool
	Input      io.Reader
	Output     io.Writer
	ErrOut     io.Writer
}

func runSuppress(ctx context.Context, cmd *cli.Command, cfg config.Config) error {
	opts := suppressOptions{
		Command:    append(cmd.StringSlice("command"), cmd.Args().Slice()...),
		ConfigPath: cmd.String("file"),
		OutputPath: cfg.Inner.Output,
		Section:    cfg.Inner.Section,
		Keep:       append(append([]string(nil), cfg.Inner.Keep...), cmd.StringSlice("keep")...),
		DryRun:     cmd.Bool("dry-run"),
		Confirm:    cmd.Bool("confirm"),
		Verbose:    cmd.Bool("verbose"),
		Input:      cmd.Root().Reader,
		Output:     cmd.Root().Writer,
		ErrOut:     cmd.Root().ErrWriter,
	}
	if cmd.IsSet("output") {
		opts.OutputPath = cmd.String("output")
	}
	if cmd.IsSet("section") {
		opts.Section = cmd.String("section")
	}

	return doSuppress(ctx, cfg, opts)
}

func doSuppress(ctx context.Context, cfg config.Config, opts suppressOptions) error {
	if len(opts.Command) == 0 {
		return errors.New(`required flag "command" not set`)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(opts.ErrOut, &slog.HandlerOptions{Level: level}))
	if cfg.ProjectDir != "" {
		logger.DebugContext(ctx, "loaded config", "path", filepath.Join(cfg.ProjectDir, config.FileName))
	}

	exec := cmdexec.New(cfg)
	if opts.Verbose {
		exec = exec.WithStderr(opts.ErrOut)
	}

	suppressorOpts := []suppress.Option{suppress.WithLogger(logger)}
	if opts.Confirm {
		suppressorOpts = append(suppressorOpts, suppress.WithConfirmer(prompt.NewConfirmer(prompt.NewRunner(opts.Input, opts.Output))))
	}

	res, err := suppress.New(exec, suppressorOpts...).Run(ctx, suppress.Request{
		Command:    opts.Command,
		ConfigPath: opts.ConfigPath,
		OutputPath: opts.OutputPath,
		Section:    opts.Section,
		Keep:       opts.Keep,
		DryRun:     opts.DryRun,
	})
	if err != nil {
		return err
	}

	for _, id := range res.Kept {
		logger.DebugContext(ctx, "kept enabled", "message", string(id))
	}

	if res.Outcome == suppress.Written && opts.DryRun {
		writeOutputf(opts.Output, "%s", res.Rendered)
		return nil
	}

	writeOutputf(opts.Output, "%s\n", res.Message())
	if code := res.Outcome.ExitCode(); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
