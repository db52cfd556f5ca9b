package x

import (
	"context"
	"time"

	"github.com/avast/retry-go"
)

// Policy describes a retry schedule for one call site. Each call site
// (content fetch, remote delete) carries its own attempt budget and
// backoff; pagination deliberately has none.
type Policy struct {
	Attempts uint
	// Delay computes the sleep before the next attempt. attempt is
	// 1-based and names the attempt that just failed; err is the error
	// it failed with.
	Delay func(attempt uint, err error) time.Duration
}

// Do runs fn under the policy until it succeeds, the attempts run out,
// or fn returns an error wrapped with Unrecoverable.
func Do(ctx context.Context, p Policy, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(p.Attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, _ *retry.Config) time.Duration {
			return p.Delay(n+1, err)
		}),
	)
}

// Unrecoverable marks err as terminal so Do stops retrying immediately.
func Unrecoverable(err error) error { return retry.Unrecoverable(err) }
