package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/config"
	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v3"
)

// Version is set via ldflags at build time.
var Version = "dev"

const appName = "pylsuppress"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)

	if err := cmd.Run(ctx, args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(stderr, msg)
			}
			return exitErr.ExitCode()
		}

		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      appName,
		Usage:     "Disable the pylint messages a lint run reports",
		UsageText: appName + " -c pylint src [-f pylintrc]",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,

		DisableSliceFlagSeparator: true,
		ExitErrHandler:            func(context.Context, *cli.Command, error) {},

		Flags: suppressFlags(),
		Commands: []*cli.Command{
			initCmd(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Args().First() == "init" {
				return ctx, nil
			}

			ctx, _, err := config.Ensure(ctx)
			return ctx, err
		},
		Action: config.RunWithConfig(runSuppress),
	}
}

// envVar derives the environment variable that backs a flag.
func envVar(flag string) string {
	return strcase.ToScreamingSnake(appName + "-" + flag)
}

func writeOutputf(w io.Writer, format string, args ...any) {
	if w != nil {
		_, _ = fmt.Fprintf(w, format, args...)
	}
}
