// Package retry retries transient failures with exponential backoff.
// It is used to wait for a Firebird server that is not accepting
// connections yet.
//
//	executor := retry.NewExecutor(
//	    retry.NewFirebirdErrorClassifier(),
//	    retry.NewExponentialBackoff(5),
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
package retry
