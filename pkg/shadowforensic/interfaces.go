package shadowforensic

import (
	"context"
	"time"
)

// SnapshotService enumerates, creates and deletes snapshots on the host.
// Failures are returned as *Error of KindSnapshotService. Calls are never retried.
type SnapshotService interface {
	// List returns every snapshot known to the service.
	List(ctx context.Context) ([]SnapshotRecord, error)

	// Create takes a snapshot of volume and returns its ID.
	Create(ctx context.Context, volume string) (string, error)

	// Delete removes a snapshot. It reports false if no snapshot had that ID.
	Delete(ctx context.Context, id string) (bool, error)
}

// Mounter exposes a snapshot device as a directory and removes that exposure.
// Failures are returned as *Error of KindMount.
type Mounter interface {
	// Mount exposes deviceObject at mountPath. It fails with ErrMountOccupied
	// if anything already exists at mountPath.
	Mount(deviceObject, mountPath string) error

	// Unmount removes the exposure at mountPath. It returns false, nil when
	// nothing is mounted there.
	Unmount(mountPath string) (bool, error)
}

// Sink receives per-file outcomes while a recovery run progresses.
// The engine serialises calls, so implementations need no locking.
type Sink interface {
	Record(o Outcome)
	Flush() error
}

// Logger provides a pluggable logging interface.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}

// Approver asks for confirmation before a destructive operation.
//
// Implementations:
//   - ForcedApprover: shows a countdown and approves
//   - InteractiveApprover: asks the user to type the snapshot ID
type Approver interface {
	RequestApproval(ctx context.Context, snapshotID string) (bool, error)
}

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait before the next attempt.
	// attempt is zero-indexed (0 = first retry, 1 = second retry, etc.)
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of retry attempts (0 = no retries, -1 = unlimited)
	MaxAttempts() int
}

// NopSink discards every outcome.
type NopSink struct{}

func (NopSink) Record(Outcome) {}
func (NopSink) Flush() error   { return nil }
