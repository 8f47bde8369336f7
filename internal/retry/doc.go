// Package retry provides automatic retry logic with exponential backoff
// for transient document store failures.
//
// The executor is configured with an ErrorClassifier, which decides whether
// an error is worth another attempt, and a BackoffStrategy, which decides how
// long to wait before it.
//
//	classifier := retry.NewMongoErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return client.Ping(ctx, readpref.Primary())
//	})
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
