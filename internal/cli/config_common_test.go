package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/internal/platform"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func newEnvTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("backend", platform.BackendAuto, "")
	cmd.Flags().String("log-format", logging.FormatText, "")
	return cmd
}

func captureBackendName(t *testing.T) *string {
	t.Helper()
	var got string
	original := newBackend
	newBackend = func(name string) (platform.Backend, error) {
		got = name
		return platform.New(platform.BackendFake)
	}
	t.Cleanup(func() { newBackend = original })
	return &got
}

func TestNewCommandEnv_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	backend := captureBackendName(t)

	env, err := newCommandEnv(newEnvTestCommand())
	if err != nil {
		t.Fatalf("newCommandEnv failed: %v", err)
	}
	if *backend != platform.BackendAuto {
		t.Errorf("backend = %q, want %q", *backend, platform.BackendAuto)
	}
	if env.verbose {
		t.Error("verbose must default to false")
	}
	if _, ok := env.logger.(*logging.ConsoleLogger); !ok {
		t.Errorf("expected ConsoleLogger, got %T", env.logger)
	}
	if env.cfg.Recover.OutputDir != shadowforensic.DefaultOutputDir {
		t.Errorf("output dir = %q", env.cfg.Recover.OutputDir)
	}
}

func TestNewCommandEnv_ConfigThenEnvThenFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	backend := captureBackendName(t)

	cfg := "backend: native\nlog_format: json\nverbose: true\n"
	if err := os.WriteFile(filepath.Join(dir, "shadowforensic.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	env, err := newCommandEnv(newEnvTestCommand())
	if err != nil {
		t.Fatalf("newCommandEnv failed: %v", err)
	}
	if *backend != platform.BackendNative {
		t.Errorf("backend = %q, want native from file", *backend)
	}
	if _, ok := env.logger.(*logging.LogrusLogger); !ok {
		t.Errorf("expected LogrusLogger from log_format json, got %T", env.logger)
	}
	if !env.verbose {
		t.Error("verbose should come from the config file")
	}

	t.Setenv("SHADOWFORENSIC_BACKEND", "fake")
	if _, err := newCommandEnv(newEnvTestCommand()); err != nil {
		t.Fatal(err)
	}
	if *backend != platform.BackendFake {
		t.Errorf("backend = %q, want fake from environment", *backend)
	}

	cmd := newEnvTestCommand()
	if err := cmd.Flags().Set("backend", "auto"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("verbose", "false"); err != nil {
		t.Fatal(err)
	}
	env, err = newCommandEnv(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if *backend != platform.BackendAuto {
		t.Errorf("backend = %q, want auto from flag", *backend)
	}
	if env.verbose {
		t.Error("--verbose=false must override the config file")
	}
}

func TestNewCommandEnv_MissingExplicitConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	captureBackendName(t)

	cmd := newEnvTestCommand()
	if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatal(err)
	}
	if _, err := newCommandEnv(cmd); err == nil {
		t.Fatal("expected error for a missing --config file")
	}
}

func TestNewCommandEnv_InvalidLogFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	captureBackendName(t)

	cmd := newEnvTestCommand()
	if err := cmd.Flags().Set("log-format", "xml"); err != nil {
		t.Fatal(err)
	}
	if _, err := newCommandEnv(cmd); err == nil {
		t.Fatal("expected error for an unknown log format")
	}
}
