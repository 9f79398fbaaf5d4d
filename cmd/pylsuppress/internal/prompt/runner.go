package prompt

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// FormRunner runs a form to completion.
type FormRunner interface {
	Run(form *huh.Form) error
}

// Runner runs forms on the command's own streams. A terminal gets the full
// form, anything else is asked line by line.
type Runner struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

func NewRunner(input io.Reader, output io.Writer) *Runner {
	return &Runner{
		input:      input,
		output:     output,
		accessible: !isTerminal(input),
	}
}

// Accessible reports whether forms are asked line by line.
func (r *Runner) Accessible() bool {
	return r.accessible
}

func (r *Runner) Run(form *huh.Form) error {
	return form.
		WithAccessible(r.accessible).
		WithInput(r.input).
		WithOutput(r.output).
		Run()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
