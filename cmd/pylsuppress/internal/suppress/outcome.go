package suppress

import (
	"fmt"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
)

// Outcome is how a run ended. Everything except Written ends the process with
// exit code 1.
type Outcome int

const (
	// Written means the config was rendered and, unless dry-running, written.
	Written Outcome = iota
	// NoLintErrors means the linter exited cleanly, so there is nothing to add.
	NoLintErrors
	// NoSection means the config has no section to add identifiers to.
	NoSection
	// Declined means the user refused the confirmation prompt.
	Declined
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case NoLintErrors:
		return "no-lint-errors"
	case NoSection:
		return "no-section"
	case Declined:
		return "declined"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

func (o Outcome) ExitCode() int {
	if o == Written {
		return 0
	}
	return 1
}

// Result describes a finished run.
type Result struct {
	Outcome Outcome
	// Suppressed holds the identifiers added to the section, sorted.
	Suppressed []lintout.Identifier
	// Kept holds identifiers found in the output but held back by keep patterns.
	Kept []lintout.Identifier
	// Rendered is the full new config content.
	Rendered string
	// Section is the marker that was searched for.
	Section string
	// OutputPath is where Rendered goes.
	OutputPath string
}

// Message is the text shown to the user for the outcome.
func (r Result) Message() string {
	switch r.Outcome {
	case Written:
		return fmt.Sprintf("Suppressed %d message(s) in %s.", len(r.Suppressed), r.OutputPath)
	case NoLintErrors:
		return "No pylint errors found."
	case NoSection:
		return "No messages control section found in pylintrc file.\n" +
			fmt.Sprintf("Add one by placing %s in the pylintrc file.", r.Section)
	case Declined:
		return "Aborted, nothing written."
	default:
		return ""
	}
}
