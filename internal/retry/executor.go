package retry

import (
	"context"
	"time"

	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

// OnRetryFunc is invoked before each retry with the 0-based retry index,
// the error that caused it and the delay about to be waited.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// Executor runs an operation, retrying transient failures with backoff.
// WithOnRetry returns a copy, so a shared Executor is never mutated.
type Executor struct {
	classifier dbmeta.ErrorClassifier
	strategy   dbmeta.BackoffStrategy
	onRetry    OnRetryFunc
}

// NewExecutor creates a retry executor. Panics if classifier or strategy is nil.
func NewExecutor(classifier dbmeta.ErrorClassifier, strategy dbmeta.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a new Executor with the specified retry callback.
func (e *Executor) WithOnRetry(callback OnRetryFunc) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation once and then up to MaxAttempts more times while
// it keeps failing with a transient error. A negative MaxAttempts retries
// until ctx is done. The last error is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return err
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
	}

	return err
}
