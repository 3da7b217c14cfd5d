package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/output"
	"github.com/vvka-141/shadowforensic/internal/recovery"
	"github.com/vvka-141/shadowforensic/internal/services"
	"github.com/vvka-141/shadowforensic/internal/tui"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

var recoverCmd = &cobra.Command{
	Use:   "recover <snapshot_id>",
	Short: "Recover files from a shadow copy",
	Long: `Recover mounts a shadow copy under a private temporary directory, copies
every file matching the filters into the output directory and unmounts again.

The directory structure below the volume root is reproduced in the output
directory. Existing files there are overwritten. Files that cannot be read are
listed in the report; they never abort the run.

Filters are glob patterns matched against the file name only ("*.docx" does not
match "report.docx.bak"). Size bounds are inclusive; --max-size 0 means no
upper bound.

Examples:
  # Recover everything into ./recovered
  shadowforensic recover {1111-2222-3333}

  # Office documents between 1 KiB and 10 MiB
  shadowforensic recover {1111-2222-3333} --output-dir D:\case42 \
    --filter "*.docx" --filter "*.xlsx" --min-size 1024 --max-size 10485760

  # Machine-readable report and Prometheus textfile metrics
  shadowforensic recover {1111-2222-3333} --format json \
    --metrics-file /var/lib/node_exporter/shadowforensic.prom`,
	Args:              RequireSnapshotID,
	ValidArgsFunction: completeSnapshotIDs,
	RunE:              runRecover,
}

type recoverFlagValues struct {
	outputDir          string
	output             string
	filters            []string
	minSize, maxSize   int64
	noPreserveMetadata bool
	workers            int
	stream             bool
	metricsFile        string
	format             string
}

var recoverFlags recoverFlagValues

func init() {
	rootCmd.AddCommand(recoverCmd)

	f := recoverCmd.Flags()
	f.StringVar(&recoverFlags.outputDir, "output-dir", shadowforensic.DefaultOutputDir, "Directory to recover files into")
	f.StringVar(&recoverFlags.output, "output", "", "Alias of --output-dir")
	f.StringArrayVar(&recoverFlags.filters, "filter", nil, "Glob matched against file names (repeatable, default \"*\")")
	f.Int64Var(&recoverFlags.minSize, "min-size", 0, "Smallest file size to recover, in bytes")
	f.Int64Var(&recoverFlags.maxSize, "max-size", 0, "Largest file size to recover, in bytes (0 = no limit)")
	f.BoolVar(&recoverFlags.noPreserveMetadata, "no-preserve-metadata", false, "Do not copy modification times and permissions")
	f.IntVar(&recoverFlags.workers, "workers", 0, "Number of parallel copy workers (0 = number of CPUs)")
	f.BoolVar(&recoverFlags.stream, "stream", false, "Start copying while the snapshot is still being scanned")
	f.StringVar(&recoverFlags.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	f.StringVar(&recoverFlags.format, "format", string(output.FormatTable), "Report format: table, json or yaml")

	recoverCmd.MarkFlagsMutuallyExclusive("output-dir", "output")
	_ = recoverCmd.MarkFlagDirname("output-dir")
	_ = recoverCmd.MarkFlagDirname("output")
	_ = recoverCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func resetRecoverFlags() {
	recoverFlags = recoverFlagValues{
		outputDir: shadowforensic.DefaultOutputDir,
		format:    string(output.FormatTable),
	}
}

// buildRecoverRequest layers command-line flags over the resolved configuration.
func buildRecoverRequest(cmd *cobra.Command, env *commandEnv, id string) (services.RecoverRequest, string) {
	flags := cmd.Flags()
	rc := env.cfg.Recover
	opts := env.cfg.RecoveryOptions()

	outputDir := rc.OutputDir
	switch {
	case flags.Changed("output"):
		outputDir = recoverFlags.output
	case flags.Changed("output-dir"):
		outputDir = recoverFlags.outputDir
	}
	if outputDir == "" {
		outputDir = shadowforensic.DefaultOutputDir
	}

	if flags.Changed("filter") {
		opts.Filters = append([]string(nil), recoverFlags.filters...)
	}
	if flags.Changed("min-size") {
		opts.MinSize = recoverFlags.minSize
	}
	if flags.Changed("max-size") {
		opts.MaxSize = recoverFlags.maxSize
	}
	if flags.Changed("no-preserve-metadata") {
		opts.PreserveMetadata = !recoverFlags.noPreserveMetadata
	}
	if flags.Changed("workers") {
		opts.Workers = recoverFlags.workers
	}
	if flags.Changed("stream") {
		opts.Stream = recoverFlags.stream
	}

	metricsFile := rc.MetricsFile
	if flags.Changed("metrics-file") {
		metricsFile = recoverFlags.metricsFile
	}

	return services.RecoverRequest{
		SnapshotID: id,
		Output:     outputDir,
		Options:    opts,
	}, metricsFile
}

func runRecover(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(recoverFlags.format)
	if err != nil {
		return err
	}

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	req, metricsFile := buildRecoverRequest(cmd, env, args[0])

	var metrics recovery.GlobalMetrics
	if metricsFile != "" {
		metrics = recovery.NewGlobalMetrics()
		req.Metrics = &metrics
	}

	env.logger.Info("Recovering files from %s into %s...", req.SnapshotID, req.Output)
	env.logger.Verbose("Filters %v, size %d..%d, workers %d, stream %v, preserve metadata %v",
		req.Options.Patterns(), req.Options.MinSize, req.Options.MaxSize,
		req.Options.WorkerCount(), req.Options.Stream, req.Options.PreserveMetadata)

	var result services.RecoverResult
	title := fmt.Sprintf("Recovering %s", req.SnapshotID)
	err = tui.RunWithProgress(title, cmd.ErrOrStderr(), func(sink shadowforensic.Sink) error {
		var runErr error
		logged := &outcomeLogger{logger: env.logger, next: sink}
		result, runErr = env.recoverer(services.WithSink(logged)).Recover(cmd.Context(), req)
		return runErr
	})

	if req.Metrics != nil {
		if mErr := req.Metrics.WriteTextfile(metricsFile); mErr != nil {
			env.logger.Error("Failed to write metrics to %s: %v", metricsFile, mErr)
		} else {
			env.logger.Verbose("Wrote metrics to %s", metricsFile)
		}
	}
	if err != nil {
		return err
	}

	if err := output.WriteRecoverResult(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	env.logger.Verbose("Run %s finished", result.RunID)
	return nil
}

// outcomeLogger logs every per-file outcome at verbose level and forwards it.
type outcomeLogger struct {
	logger shadowforensic.Logger
	next   shadowforensic.Sink
}

func (s *outcomeLogger) Record(o shadowforensic.Outcome) {
	switch o.Status {
	case shadowforensic.StatusRecovered:
		s.logger.Verbose("Recovered %s (%d bytes)", o.Path, o.Bytes)
	case shadowforensic.StatusSkipped:
		s.logger.Verbose("Skipped %s: %s", o.Path, o.Reason)
	case shadowforensic.StatusFailed:
		s.logger.Verbose("Failed %s: %s: %v", o.Path, o.Reason, o.Err)
	}
	s.next.Record(o)
}

func (s *outcomeLogger) Flush() error {
	return s.next.Flush()
}
