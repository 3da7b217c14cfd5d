package shadowforensic

import (
	"fmt"
	"path"
	"runtime"
	"sort"
	"time"
)

// SnapshotRecord describes one point-in-time snapshot as reported by the
// platform snapshot service. Records are never mutated after they are returned.
type SnapshotRecord struct {
	// ID is the opaque identifier assigned by the snapshot service.
	ID string `json:"id" yaml:"id"`

	// Volume is the label of the source volume, e.g. `C:\`.
	Volume string `json:"volume" yaml:"volume"`

	// CreatedAt is the creation time of the snapshot.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// DeviceObject is the device handle consumed by the Mounter.
	DeviceObject string `json:"device_object" yaml:"device_object"`
}

func (r SnapshotRecord) String() string {
	return fmt.Sprintf("<Snapshot %s on %s>", r.ID, r.Volume)
}

// RecoveryOptions configures one recovery run.
type RecoveryOptions struct {
	// Filters are glob patterns matched against the file name.
	// A file matches if it matches any of them. Empty means "*".
	Filters []string

	// MinSize is the inclusive lower size bound in bytes.
	MinSize int64

	// MaxSize is the inclusive upper size bound in bytes. Zero means unbounded.
	MaxSize int64

	// PreserveMetadata propagates modification time and permission bits.
	PreserveMetadata bool

	// Workers bounds the copy pool. Zero means the number of logical CPUs.
	Workers int

	// Stream overlaps directory enumeration with copying.
	Stream bool
}

// DefaultRecoveryOptions returns options matching every file with metadata preserved.
func DefaultRecoveryOptions() RecoveryOptions {
	return RecoveryOptions{
		Filters:          []string{DefaultFilter},
		PreserveMetadata: true,
	}
}

// Patterns returns the effective filter list; an empty list becomes ["*"].
func (o RecoveryOptions) Patterns() []string {
	if len(o.Filters) == 0 {
		return []string{DefaultFilter}
	}
	return o.Filters
}

// WorkerCount returns the effective pool size, never less than one.
func (o RecoveryOptions) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Validate checks size bounds and glob syntax.
func (o RecoveryOptions) Validate() error {
	if o.MinSize < 0 {
		return fmt.Errorf("min size must not be negative: %w", ErrInvalidConfig)
	}
	if o.MaxSize < 0 {
		return fmt.Errorf("max size must not be negative: %w", ErrInvalidConfig)
	}
	if o.MaxSize > 0 && o.MaxSize < o.MinSize {
		return fmt.Errorf("max size %d is below min size %d: %w", o.MaxSize, o.MinSize, ErrInvalidConfig)
	}
	for _, p := range o.Patterns() {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("%q: %w", p, ErrInvalidPattern)
		}
	}
	return nil
}

// CandidateFile is a file selected for copying during a walk.
type CandidateFile struct {
	SourcePath   string // absolute path under the scan root
	RelativePath string // path relative to the scan root
	Size         int64
}

// OutcomeStatus is the result category of one file.
type OutcomeStatus int

const (
	StatusRecovered OutcomeStatus = iota
	StatusSkipped
	StatusFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusRecovered:
		return "recovered"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-file result of a recovery run.
type Outcome struct {
	Status  OutcomeStatus
	Path    string // relative to the scan root
	Bytes   int64
	Reason  Reason
	Err     error
	Elapsed time.Duration
}

// Failure is a per-file copy failure recorded in a Report.
type Failure struct {
	Path   string `json:"path" yaml:"path"`
	Reason Reason `json:"reason" yaml:"reason"`
	Error  string `json:"error" yaml:"error"`
}

// Skip is a file excluded because it could not be inspected.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report aggregates every per-file outcome of a run.
type Report struct {
	Recovered []string      `json:"recovered" yaml:"recovered"`
	Failures  []Failure     `json:"failures" yaml:"failures"`
	Skipped   []Skip        `json:"skipped" yaml:"skipped"`
	Excluded  int           `json:"excluded" yaml:"excluded"`
	Bytes     int64         `json:"bytes" yaml:"bytes"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// RecoveredCount returns the number of files copied successfully.
func (r Report) RecoveredCount() int { return len(r.Recovered) }

// FailedCount returns the number of files that could not be copied.
func (r Report) FailedCount() int { return len(r.Failures) }

// Sort orders every list by path so reports are comparable across runs.
func (r *Report) Sort() {
	sort.Strings(r.Recovered)
	sort.Slice(r.Failures, func(i, j int) bool { return r.Failures[i].Path < r.Failures[j].Path })
	sort.Slice(r.Skipped, func(i, j int) bool { return r.Skipped[i].Path < r.Skipped[j].Path })
}
