package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/config"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default " + config.FileName,
		ArgsUsage: "[dir]",
		Action:    runInit,
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current working directory")
		}
	}

	if err := config.WriteToFile(dir, config.Default(), config.NewWriter()); err != nil {
		return err
	}

	writeOutputf(cmd.Root().Writer, "Wrote %s\n", filepath.Join(dir, config.FileName))
	return nil
}
