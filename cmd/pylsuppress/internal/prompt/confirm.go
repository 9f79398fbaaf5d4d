// Package prompt asks the user before the pylint config is rewritten.
package prompt

import (
	"fmt"
	"strings"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
)

type Confirmer struct {
	runner FormRunner
}

func NewConfirmer(runner FormRunner) *Confirmer {
	return &Confirmer{runner: runner}
}

// Confirm asks whether ids may be added to the config at path. Aborting the
// form counts as a refusal.
func (c *Confirmer) Confirm(ids []lintout.Identifier, path string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Suppress %d message(s) in %s?", len(ids), path)).
				Description(describe(ids)).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)

	if err := c.runner.Run(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, errors.Wrap(err, "confirmation failed")
	}

	return ok, nil
}

func describe(ids []lintout.Identifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
