package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/config"
	"github.com/terraincognita07/caixa/internal/logging"
)

type harness struct {
	env *Env
	dir string
}

type outcome struct {
	status subcommands.ExitStatus
	stdout string
	stderr string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.LoadFrom(map[string]string{
		"CAIXA_DB_PATH": filepath.Join(dir, "caixa-cli-test.db"),
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return &harness{env: &Env{Config: cfg, Logger: logging.Discard()}, dir: dir}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()

	var stdout, stderr bytes.Buffer
	h.env.Stdin = strings.NewReader(stdin)
	h.env.Stdout = &stdout
	h.env.Stderr = &stderr
	h.env.reader = nil

	flags := flag.NewFlagSet("caixa", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	commander := subcommands.NewCommander(flags, "caixa")
	commander.Output = &stdout
	commander.Error = &stderr
	Register(commander, h.env)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	status := commander.Execute(context.Background())
	return outcome{status: status, stdout: stdout.String(), stderr: stderr.String()}
}

func (h *harness) mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	result := h.run(t, stdin, args...)
	if result.status != subcommands.ExitSuccess {
		t.Fatalf("caixa %s: status %d stderr=%q", strings.Join(args, " "), result.status, result.stderr)
	}
	return result.stdout
}

func (h *harness) expectFailure(t *testing.T, status subcommands.ExitStatus, message string, args ...string) {
	t.Helper()

	result := h.run(t, "", args...)
	if result.status != status {
		t.Fatalf("caixa %s: expected status %d, got %d stderr=%q", strings.Join(args, " "), status, result.status, result.stderr)
	}
	if !strings.Contains(result.stderr, message) {
		t.Fatalf("caixa %s: expected stderr to contain %q, got %q", strings.Join(args, " "), message, result.stderr)
	}
}

// open gives a test direct access to the store between commands.
func (h *harness) open(t *testing.T) *app.App {
	t.Helper()

	application, err := app.Open(h.env.Config, nil)
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	t.Cleanup(func() {
		_ = application.Close()
	})
	return application
}

func (h *harness) registerMEI(t *testing.T) {
	t.Helper()

	h.mustRun(t, "1234\n1234\n", "register",
		"-name", "Loja",
		"-email", "loja@x.com",
		"-type", "PJ",
		"-company", "Loja ME",
		"-cnpj", "12.345.678/0001-90",
		"-category", "MEI",
	)
	h.mustRun(t, "1234\n", "login", "-email", "loja@x.com")
}

func (h *harness) registerPF(t *testing.T) {
	t.Helper()

	h.mustRun(t, "abcd\nabcd\n", "register", "-name", "Ana", "-email", "ana@x.com", "-type", "PF")
	h.mustRun(t, "abcd\n", "login", "-email", "ana@x.com")
}
