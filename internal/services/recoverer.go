package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vvka-141/shadowforensic/internal/files/filesystem"
	"github.com/vvka-141/shadowforensic/internal/recovery"
	"github.com/vvka-141/shadowforensic/internal/snapshot"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// mountDirName is the name of the mount point inside the temporary base.
const mountDirName = "mnt"

// RecoverRequest describes one `recover` invocation.
type RecoverRequest struct {
	SnapshotID string
	Output     string
	Options    shadowforensic.RecoveryOptions

	// Metrics, if set, receives per-file counters scoped to SnapshotID.
	Metrics *recovery.GlobalMetrics
}

// RecoverResult is the outcome of a successful Recover call.
type RecoverResult struct {
	RunID    string                        `json:"run_id" yaml:"run_id"`
	Snapshot shadowforensic.SnapshotRecord `json:"snapshot" yaml:"snapshot"`
	Output   string                        `json:"output" yaml:"output"`
	Report   shadowforensic.Report         `json:"report" yaml:"report"`
}

// Recoverer resolves a snapshot, mounts it, runs the recovery engine and
// tears the mount down again.
// Thread-Safety: safe for concurrent Recover calls; every call uses its own
// temporary mount base.
type Recoverer struct {
	snapshots shadowforensic.SnapshotService
	mounter   shadowforensic.Mounter
	logger    shadowforensic.Logger
	sink      shadowforensic.Sink
	tempDir   string
}

// RecovererOption configures a Recoverer.
type RecovererOption func(*Recoverer)

// WithSink forwards every per-file outcome to sink.
func WithSink(sink shadowforensic.Sink) RecovererOption {
	return func(r *Recoverer) { r.sink = sink }
}

// WithTempDir sets the directory in which mount bases are created.
// Empty means os.TempDir().
func WithTempDir(dir string) RecovererOption {
	return func(r *Recoverer) { r.tempDir = dir }
}

// NewRecoverer creates a Recoverer.
// Panics if any dependency is nil.
func NewRecoverer(
	snapshots shadowforensic.SnapshotService,
	mounter shadowforensic.Mounter,
	logger shadowforensic.Logger,
	opts ...RecovererOption,
) *Recoverer {
	if snapshots == nil {
		panic("snapshots cannot be nil")
	}
	if mounter == nil {
		panic("mounter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	r := &Recoverer{
		snapshots: snapshots,
		mounter:   mounter,
		logger:    logger,
		sink:      shadowforensic.NopSink{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recover copies files matching req.Options out of snapshot req.SnapshotID
// into req.Output.
//
// An unknown snapshot ID fails before anything is mounted or created. Once a
// mount was attempted, it is unmounted exactly once, whatever happens next.
func (r *Recoverer) Recover(ctx context.Context, req RecoverRequest) (result RecoverResult, err error) {
	if err := req.Options.Validate(); err != nil {
		return RecoverResult{}, shadowforensic.RecoveryError("validate", "", err)
	}

	record, err := snapshot.Find(ctx, r.snapshots, req.SnapshotID)
	if err != nil {
		return RecoverResult{}, err
	}

	output, err := filepath.Abs(req.Output)
	if err != nil {
		return RecoverResult{}, shadowforensic.RecoveryError("run", req.Output, err)
	}

	runID := uuid.New().String()
	r.logger.Verbose("Run %s: recovering snapshot %s (%s) into %s", runID, record.ID, record.Volume, output)

	base, err := os.MkdirTemp(r.tempDir, "shadowforensic-")
	if err != nil {
		return RecoverResult{}, shadowforensic.MountError("mount", r.tempDir, err)
	}
	defer func() {
		if rmErr := os.Remove(base); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			r.logger.Error("Failed to remove temporary mount base %s: %v", base, rmErr)
		}
	}()

	if isWithin(base, output) {
		return RecoverResult{}, shadowforensic.RecoveryError("run", req.Output,
			fmt.Errorf("%w: output is inside the temporary mount base %s", shadowforensic.ErrRootsOverlap, base))
	}

	mountPath := filepath.Join(base, mountDirName)
	mountErr := r.mounter.Mount(record.DeviceObject, mountPath)
	defer func() {
		unmounted, unmountErr := r.mounter.Unmount(mountPath)
		switch {
		case unmountErr != nil:
			r.logger.Error("Failed to unmount %s: %v", mountPath, unmountErr)
			if err == nil {
				err = unmountErr
			}
		case unmounted:
			r.logger.Verbose("Unmounted %s", mountPath)
		}
	}()
	if mountErr != nil {
		return RecoverResult{}, mountErr
	}
	r.logger.Verbose("Mounted %s at %s", record.DeviceObject, mountPath)

	engineOpts := []recovery.Option{
		recovery.WithLogger(r.logger),
		recovery.WithSink(r.sink),
	}
	if req.Metrics != nil {
		engineOpts = append(engineOpts, recovery.WithMetrics(req.Metrics.Scope(record.ID)))
	}
	engine := recovery.NewEngine(filesystem.NewOSFileSystem(), engineOpts...)

	report, err := engine.Run(mountPath, output, req.Options)
	if err != nil {
		return RecoverResult{}, err
	}

	return RecoverResult{
		RunID:    runID,
		Snapshot: record,
		Output:   output,
		Report:   report,
	}, nil
}

// MountSnapshot exposes snapshot id at path and returns its record.
func (r *Recoverer) MountSnapshot(ctx context.Context, id, path string) (shadowforensic.SnapshotRecord, error) {
	record, err := snapshot.Find(ctx, r.snapshots, id)
	if err != nil {
		return shadowforensic.SnapshotRecord{}, err
	}
	if err := r.mounter.Mount(record.DeviceObject, path); err != nil {
		return shadowforensic.SnapshotRecord{}, err
	}
	r.logger.Verbose("Mounted %s at %s", record.DeviceObject, path)
	return record, nil
}

// UnmountPath removes a mount created by MountSnapshot. It reports false if
// nothing was mounted at path.
func (r *Recoverer) UnmountPath(path string) (bool, error) {
	return r.mounter.Unmount(path)
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}
