// Package retry provides retry logic with exponential backoff for
// filesystem operations that fail transiently.
//
// Snapshot trees are read while other processes may hold files open or the
// shadow device may be momentarily busy. Copy operations are wrapped in an
// Executor so these conditions do not turn into per-file failures.
//
// # Example Usage
//
//	executor := retry.NewIOExecutor()
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return copyOnce(src, dst)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface determines which errors are transient
// (retryable) versus fatal. IOErrorClassifier treats EAGAIN, EBUSY, EINTR and
// ETIMEDOUT as transient, plus sharing and lock violations on Windows.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
