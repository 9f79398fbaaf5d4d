package cmdexec_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/cmdexec"
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		WorkDir: "/test/project",
	}

	exec := cmdexec.New(cfg)
	if exec.Dir() != "/test/project" {
		t.Errorf("expected dir /test/project, got %s", exec.Dir())
	}
}

func TestNewWithDir(t *testing.T) {
	t.Parallel()

	exec := cmdexec.NewWithDir("/custom/dir")
	if exec.Dir() != "/custom/dir" {
		t.Errorf("expected dir /custom/dir, got %s", exec.Dir())
	}
}

func TestCapture(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exec := cmdexec.NewWithDir(dir)

	got, err := exec.Capture(context.Background(), "echo", "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Stdout != "hello world\n" {
		t.Errorf("expected 'hello world\\n', got %q", got.Stdout)
	}
	if got.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", got.ExitCode)
	}
}

func TestCaptureNonZeroExit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exec := cmdexec.NewWithDir(dir)

	got, err := exec.Capture(context.Background(), "sh", "-c", "echo 'x.py:1:0: C0114: Missing (missing-docstring)'; exit 16")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}

	if got.ExitCode != 16 {
		t.Errorf("expected exit code 16, got %d", got.ExitCode)
	}
	if got.Stdout != "x.py:1:0: C0114: Missing (missing-docstring)\n" {
		t.Errorf("unexpected stdout %q", got.Stdout)
	}
}

func TestCaptureInCorrectDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exec := cmdexec.NewWithDir(dir)

	got, err := exec.Capture(context.Background(), "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Resolve symlinks for macOS /private/var -> /var
	expectedDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(got.Stdout[:len(got.Stdout)-1])

	if gotDir != expectedDir {
		t.Errorf("expected dir %s, got %s", expectedDir, gotDir)
	}
}

func TestCaptureWithEnv(t *testing.T) {
	t.Parallel()

	exec := cmdexec.NewWithDir(t.TempDir()).WithEnv("PYLSUPPRESS_TEST_VALUE", "from-env")

	got, err := exec.Capture(context.Background(), "sh", "-c", "printf %s \"$PYLSUPPRESS_TEST_VALUE\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Stdout != "from-env" {
		t.Errorf("expected 'from-env', got %q", got.Stdout)
	}
}

func TestNewAppliesConfigEnv(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Inner: config.InnerConfig{Env: map[string]string{
			"PYLSUPPRESS_TEST_HOME": "/tmp/lint",
			"PYLSUPPRESS_TEST_JOBS": "2",
		}},
		WorkDir: t.TempDir(),
	}

	got, err := cmdexec.New(cfg).Capture(context.Background(), "sh", "-c", "printf '%s %s' \"$PYLSUPPRESS_TEST_HOME\" \"$PYLSUPPRESS_TEST_JOBS\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Stdout != "/tmp/lint 2" {
		t.Errorf("expected '/tmp/lint 2', got %q", got.Stdout)
	}
}

func TestCaptureStderr(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	exec := cmdexec.NewWithDir(t.TempDir()).WithStderr(&stderr)

	got, err := exec.Capture(context.Background(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Stdout != "out\n" {
		t.Errorf("expected only stdout captured, got %q", got.Stdout)
	}
	if stderr.String() != "err\n" {
		t.Errorf("expected stderr forwarded, got %q", stderr.String())
	}
}

func TestCaptureMissingBinary(t *testing.T) {
	t.Parallel()

	exec := cmdexec.NewWithDir(t.TempDir())

	_, err := exec.Capture(context.Background(), "pylsuppress-definitely-not-a-binary")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCaptureCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cmdexec.NewWithDir(t.TempDir()).Capture(ctx, "sleep", "5")
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}
