// Package suppress runs a linter and adds the message identifiers it reports
// to the disabled-messages section of a pylint config.
package suppress

import (
	"context"
	"log/slog"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/cmdexec"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/rcfile"
	"github.com/cockroachdb/errors"
)

// Confirmer approves a write before it happens.
type Confirmer interface {
	Confirm(ids []lintout.Identifier, path string) (bool, error)
}

// Request is the input of a single run.
type Request struct {
	// Command is the linter invocation, name first.
	Command []string
	// ConfigPath is the config read for its sections.
	ConfigPath string
	// OutputPath receives the rewritten config. It is not derived from ConfigPath.
	OutputPath string
	// Section is the header marking the disabled-messages section.
	Section string
	// Keep lists patterns of identifiers that are never suppressed.
	Keep []string
	// DryRun renders the result without writing it.
	DryRun bool
}

// Suppressor wires the linter run to the config rewrite.
type Suppressor struct {
	exec      cmdexec.Executor
	logger    *slog.Logger
	confirmer Confirmer
}

// Option configures a Suppressor.
type Option func(*Suppressor)

// WithLogger sets the logger for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Suppressor) {
		s.logger = l
	}
}

// WithConfirmer asks c before anything is written.
func WithConfirmer(c Confirmer) Option {
	return func(s *Suppressor) {
		s.confirmer = c
	}
}

// New creates a Suppressor that runs the linter through exec.
func New(exec cmdexec.Executor, opts ...Option) *Suppressor {
	s := &Suppressor{
		exec:   exec,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes req. Expected terminal conditions are reported through
// Result.Outcome; the error is reserved for I/O and process failures.
func (s *Suppressor) Run(ctx context.Context, req Request) (Result, error) {
	res := Result{Section: req.Section, OutputPath: req.OutputPath}
	if len(req.Command) == 0 {
		return res, errors.New("no linter command given")
	}

	keep, err := newKeepFilter(req.Keep)
	if err != nil {
		return res, err
	}

	s.logger.DebugContext(ctx, "running linter", "command", req.Command, "dir", s.exec.Dir())
	capture, err := s.exec.Capture(ctx, req.Command[0], req.Command[1:]...)
	if err != nil {
		return res, err
	}
	s.logger.DebugContext(ctx, "linter finished", "exit_code", capture.ExitCode, "bytes", len(capture.Stdout))

	if capture.ExitCode == 0 {
		res.Outcome = NoLintErrors
		return res, nil
	}

	found := lintout.Parse(capture.Stdout)
	res.Suppressed, res.Kept, err = keep.split(found.Sorted())
	if err != nil {
		return res, err
	}
	s.logger.DebugContext(ctx, "parsed linter output",
		"found", found.Len(), "suppress", len(res.Suppressed), "kept", len(res.Kept))

	sections, err := rcfile.Read(req.ConfigPath, req.Section)
	switch {
	case errors.Is(err, rcfile.ErrNoSection):
		res.Outcome = NoSection
		return res, nil
	case err != nil:
		return res, err
	}
	s.logger.DebugContext(ctx, "located section",
		"path", req.ConfigPath, "before", len(sections.Before), "section", len(sections.Section), "after", len(sections.After))

	sections.Append(res.Suppressed)
	res.Rendered = sections.String()
	res.Outcome = Written

	if req.DryRun {
		return res, nil
	}

	if s.confirmer != nil {
		ok, err := s.confirmer.Confirm(res.Suppressed, req.OutputPath)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Outcome = Declined
			return res, nil
		}
	}

	if err := sections.WriteFile(req.OutputPath); err != nil {
		return res, err
	}
	s.logger.DebugContext(ctx, "updated pylint config", "path", req.OutputPath, "added", len(res.Suppressed))

	return res, nil
}
