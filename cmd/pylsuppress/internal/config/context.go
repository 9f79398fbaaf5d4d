package config

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

type contextKey struct{}

type Config struct {
	Inner InnerConfig
	// ProjectDir is where FileName was found, empty when defaults are in use.
	ProjectDir string
	// WorkDir is the directory the linter runs in.
	WorkDir string
}

func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(Config)
	return cfg, ok
}

var defaultFinder = NewFinder(NewLoader())

// Resolve finds the config for workDir, falling back to Default when no
// config file exists.
func Resolve(finder Finder, workDir string) (Config, error) {
	inner, projectDir, err := finder.Find(workDir)
	switch {
	case errors.Is(err, ErrNotFound):
		return Config{Inner: Default(), WorkDir: workDir}, nil
	case err != nil:
		return Config{}, err
	}

	return Config{Inner: inner, ProjectDir: projectDir, WorkDir: workDir}, nil
}

// Ensure returns config from context if present, otherwise loads it from disk.
func Ensure(ctx context.Context) (context.Context, Config, error) {
	if cfg, ok := FromContext(ctx); ok {
		return ctx, cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ctx, Config{}, errors.Wrap(err, "failed to get working directory")
	}

	cfg, err := Resolve(defaultFinder, cwd)
	if err != nil {
		return ctx, Config{}, err
	}

	return WithContext(ctx, cfg), cfg, nil
}

// ActionFunc is a command action that receives the config.
type ActionFunc func(ctx context.Context, cmd *cli.Command, cfg Config) error

// RunWithConfig wraps an ActionFunc to lazily load config when the action runs.
// Config is only loaded when an actual command action executes, not when showing help.
func RunWithConfig(fn ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, cfg, err := Ensure(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, cmd, cfg)
	}
}
