package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/config"
	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/internal/platform"
	"github.com/vvka-141/shadowforensic/internal/services"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// newBackend builds the snapshot service and mounter. Tests replace it.
var newBackend = platform.New

// commandEnv is what every command needs after global flags and
// configuration are resolved.
type commandEnv struct {
	cfg     *config.Config
	verbose bool
	logger  shadowforensic.Logger
	backend platform.Backend
}

// newCommandEnv resolves configuration and global flags, then selects the backend.
// A flag set on the command line overrides the config file and environment.
func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose := cfg.Verbose
	if cmd.Flags().Changed("verbose") {
		verbose = getVerboseFlag(cmd)
	}

	logFormat := cfg.LogFormat
	if cmd.Flags().Changed("log-format") {
		logFormat, _ = cmd.Flags().GetString("log-format")
	}
	logger, err := logging.New(logFormat, os.Stderr, verbose)
	if err != nil {
		return nil, err
	}

	backendName := cfg.Backend
	if cmd.Flags().Changed("backend") {
		backendName, _ = cmd.Flags().GetString("backend")
	}
	backend, err := newBackend(backendName)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Using %s snapshot backend", backend.Name)

	return &commandEnv{
		cfg:     cfg,
		verbose: verbose,
		logger:  logger,
		backend: backend,
	}, nil
}

// recoverer returns an orchestrator over the selected backend.
func (e *commandEnv) recoverer(opts ...services.RecovererOption) *services.Recoverer {
	return services.NewRecoverer(e.backend.Snapshot, e.backend.Mounter, e.logger, opts...)
}
