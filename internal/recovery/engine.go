package recovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/shadowforensic/internal/files/filesystem"
	"github.com/vvka-141/shadowforensic/internal/files/scanner"
	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/internal/retry"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Engine recovers files from a snapshot tree into a destination directory.
// An Engine holds no per-run state and may be reused.
type Engine struct {
	source   filesystem.FileSystemProvider
	scanner  *scanner.Scanner
	executor *retry.Executor
	logger   shadowforensic.Logger
	sink     shadowforensic.Sink
	metrics  *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger shadowforensic.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSink sets the sink that receives every outcome as it happens.
func WithSink(sink shadowforensic.Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithMetrics records outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithExecutor replaces the retry executor wrapped around every copy.
func WithExecutor(executor *retry.Executor) Option {
	return func(e *Engine) { e.executor = executor }
}

// NewEngine creates an engine that reads snapshots through source.
// Panics if source is nil.
func NewEngine(source filesystem.FileSystemProvider, opts ...Option) *Engine {
	if source == nil {
		panic("source filesystem cannot be nil")
	}

	e := &Engine{
		source:   source,
		scanner:  scanner.NewScannerWithFS(source),
		executor: retry.NewIOExecutor(),
		logger:   logging.NewNullLogger(),
		sink:     shadowforensic.NopSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run copies every file under sourceRoot that passes opts into destRoot,
// mirroring the directory structure. It blocks until every copy task has
// finished.
//
// Run fails only when the options are invalid, sourceRoot is not a readable
// directory, the roots overlap, or destRoot cannot be created. Everything
// that goes wrong with individual files is recorded in the report.
func (e *Engine) Run(sourceRoot, destRoot string, opts shadowforensic.RecoveryOptions) (shadowforensic.Report, error) {
	start := time.Now()

	if err := opts.Validate(); err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("validate", "", err)
	}
	matcher, err := scanner.NewMatcher(opts.Patterns())
	if err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("validate", "", err)
	}

	root, err := e.scanner.ResolveRoot(sourceRoot)
	if err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("run", sourceRoot, err)
	}

	dest, err := resolveDestination(destRoot)
	if err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("run", destRoot, err)
	}
	if overlaps(root, dest) {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("run", destRoot,
			fmt.Errorf("%w: %s and %s", shadowforensic.ErrRootsOverlap, root, dest))
	}
	if err := os.MkdirAll(dest, dirPerm); err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("run", destRoot, err)
	}

	workers := opts.WorkerCount()
	e.logger.Verbose("Recovering %s into %s with %d workers", root, dest, workers)

	col := newCollector(e.sink, e.metrics)
	cp := &copier{
		source:   e.source,
		executor: e.executor,
		preserve: opts.PreserveMetadata,
		logger:   e.logger,
	}

	var g errgroup.Group
	g.SetLimit(workers)
	schedule := func(candidate shadowforensic.CandidateFile) {
		dst := filepath.Join(dest, filepath.FromSlash(candidate.RelativePath))
		g.Go(func() error {
			col.record(cp.copy(candidate, dst))
			return nil
		})
	}

	sizes := scanner.SizeRange{Min: opts.MinSize, Max: opts.MaxSize}
	var summary scanner.Summary
	if opts.Stream {
		summary, err = e.scanner.Walk(root, matcher, sizes, schedule)
	} else {
		var candidates []shadowforensic.CandidateFile
		summary, err = e.scanner.Walk(root, matcher, sizes, func(c shadowforensic.CandidateFile) {
			candidates = append(candidates, c)
		})
		if err == nil {
			e.logger.Verbose("Found %d candidates (%d excluded)", len(candidates), summary.Excluded)
			for _, c := range candidates {
				schedule(c)
			}
		}
	}

	// Tasks already scheduled always run to completion.
	_ = g.Wait()
	if err != nil {
		return shadowforensic.Report{}, shadowforensic.RecoveryError("walk", sourceRoot, err)
	}

	for _, skip := range summary.Skipped {
		col.record(shadowforensic.Outcome{
			Status: shadowforensic.StatusSkipped,
			Path:   skip.Path,
			Reason: shadowforensic.Reason(skip.Reason),
		})
	}

	report, err := col.finish(summary.Excluded, time.Since(start))
	if err != nil {
		e.logger.Error("Failed to flush outcome sink: %v", err)
	}

	return report, nil
}

// resolveDestination makes dest absolute and resolves symlinks in its
// longest existing prefix, so overlap checks see the real location.
func resolveDestination(dest string) (string, error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}

	existing := abs
	var rest []string
	for {
		_, err := os.Lstat(existing)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, rest...)...), nil
}

// overlaps reports whether either root contains the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

func within(parent, child string) bool {
	if runtime.GOOS == "windows" {
		parent, child = strings.ToLower(parent), strings.ToLower(child)
	}
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
