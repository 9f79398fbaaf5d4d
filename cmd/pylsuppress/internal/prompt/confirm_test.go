package prompt_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/prompt"
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
)

type mockRunner struct {
	runFunc func(*huh.Form) error
}

func (m *mockRunner) Run(form *huh.Form) error {
	if m.runFunc != nil {
		return m.runFunc(form)
	}
	return nil
}

var ids = []lintout.Identifier{"fixme", "missing-docstring"}

func TestConfirmer(t *testing.T) {
	t.Parallel()

	t.Run("defaults to no", func(t *testing.T) {
		t.Parallel()
		ok, err := prompt.NewConfirmer(&mockRunner{}).Confirm(ids, ".pylintrc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected refusal by default")
		}
	})

	t.Run("treats abort as refusal", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{
			runFunc: func(_ *huh.Form) error {
				return huh.ErrUserAborted
			},
		}

		ok, err := prompt.NewConfirmer(runner).Confirm(ids, ".pylintrc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected refusal on abort")
		}
	})

	t.Run("propagates runner error", func(t *testing.T) {
		t.Parallel()
		expectedErr := errors.New("no terminal")
		runner := &mockRunner{
			runFunc: func(_ *huh.Form) error {
				return expectedErr
			},
		}

		_, err := prompt.NewConfirmer(runner).Confirm(ids, ".pylintrc")
		if !errors.Is(err, expectedErr) {
			t.Fatalf("expected wrapped runner error, got %v", err)
		}
	})

	t.Run("accepts yes in accessible mode", func(t *testing.T) {
		t.Parallel()
		var output bytes.Buffer
		runner := prompt.NewRunner(strings.NewReader("y\n"), &output)

		ok, err := prompt.NewConfirmer(runner).Confirm(ids, ".pylintrc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected confirmation")
		}
		if !strings.Contains(output.String(), "Suppress 2 message(s) in .pylintrc?") {
			t.Errorf("expected title in output, got %q", output.String())
		}
	})

	t.Run("declines no in accessible mode", func(t *testing.T) {
		t.Parallel()
		var output bytes.Buffer
		runner := prompt.NewRunner(strings.NewReader("n\n"), &output)

		ok, err := prompt.NewConfirmer(runner).Confirm(ids, ".pylintrc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected refusal")
		}
	})
}

func TestNewRunner(t *testing.T) {
	t.Parallel()

	t.Run("asks line by line on a reader", func(t *testing.T) {
		t.Parallel()
		runner := prompt.NewRunner(strings.NewReader(""), &bytes.Buffer{})
		if !runner.Accessible() {
			t.Error("expected line prompts for a plain reader")
		}
	})

	t.Run("asks line by line on a regular file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "answers")
		if err := os.WriteFile(path, []byte("y\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		var output bytes.Buffer
		runner := prompt.NewRunner(f, &output)
		if !runner.Accessible() {
			t.Fatal("expected line prompts for a regular file")
		}

		ok, err := prompt.NewConfirmer(runner).Confirm(ids, ".pylintrc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected confirmation read from the file")
		}
	})
}
