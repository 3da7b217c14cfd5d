package retry

import (
	"context"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Executor orchestrates retry attempts with backoff and error classification.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute().
// However, WithOnRetry() returns a NEW instance with the callback configured,
// ensuring each goroutine can have its own configuration without shared state.
// The original Executor remains unchanged.
type Executor struct {
	classifier shadowforensic.ErrorClassifier
	strategy   shadowforensic.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier shadowforensic.ErrorClassifier,
	strategy shadowforensic.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// NewIOExecutor returns an executor that retries transient filesystem errors
// with the default backoff.
func NewIOExecutor() *Executor {
	return NewExecutor(NewIOErrorClassifier(), NewDefaultBackoff())
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs the operation, retrying while it fails with transient errors.
// It returns the error of the last attempt, or nil on success.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()

	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	// A negative maxAttempts retries until the context is done.
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
