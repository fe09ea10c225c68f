package room

import (
	"context"
	"time"

	apperrors "chain-reaction/internal/platform/errors"

	"github.com/cenkalti/backoff/v5"
)

// RetryConflicts re-runs op while it fails with a Conflict, up to maxTries
// attempts in total. Each attempt re-reads the room, so a retried move is
// judged against whatever committed first. Any other error stops at once.
func RetryConflicts[T any](ctx context.Context, maxTries uint, op func(context.Context) (T, error)) (T, error) {
	if maxTries == 0 {
		maxTries = 1
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 200 * time.Millisecond

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op(ctx)
		if err != nil && !apperrors.CodeOf(err).Retryable() {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(maxTries))
}
