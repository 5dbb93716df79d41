// Package retry runs blocking calls against unreliable collaborators with
// exponential backoff, stopping early on errors a classifier marks terminal.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"tourbook/config"
)

// Class tells the engine whether another attempt could change the outcome.
type Class int

const (
	Retryable Class = iota
	Terminal
)

func (c Class) String() string {
	if c == Terminal {
		return "terminal"
	}

	return "retryable"
}

// Classifier maps a collaborator error to a Class.
type Classifier func(err error) Class

// Policy bounds one retried call.
type Policy struct {
	Name                string
	MaxAttempts         int
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64
	// AttemptTimeout bounds each attempt. Zero means attempts only inherit the caller's deadline.
	AttemptTimeout time.Duration
}

// FromConfig builds a named Policy from a config section.
func FromConfig(name string, cfg config.Retry) Policy {
	return Policy{
		Name:                name,
		MaxAttempts:         cfg.MaxAttempts,
		InitialInterval:     cfg.InitialInterval(),
		MaxInterval:         cfg.MaxInterval(),
		Multiplier:          cfg.Multiplier,
		RandomizationFactor: cfg.Jitter,
		AttemptTimeout:      cfg.AttemptTimeout(),
	}
}

// Error is returned once the engine gives up. Err is the last error seen.
type Error struct {
	Attempts int
	Terminal bool
	Err      error
}

func (e *Error) Error() string {
	if e.Terminal {
		return fmt.Sprintf("terminal error after %d attempt(s): %v", e.Attempts, e.Err)
	}

	return fmt.Sprintf("gave up after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Attempts reports how many attempts produced err, 1 for errors the engine never saw.
func Attempts(err error) int {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Attempts
	}

	return 1
}

// Operation is one attempt. attempt starts at 1.
type Operation[T any] func(ctx context.Context, attempt int) (T, error)

// Do runs op until it succeeds, classify reports Terminal, or the policy is
// exhausted. An attempt that hits its own timeout while ctx is still alive is
// always retried.
func Do[T any](ctx context.Context, policy Policy, classify Classifier, op Operation[T]) (T, error) {
	var (
		attempts int
		lastErr  error
		terminal bool
	)

	maxAttempts := max(policy.MaxAttempts, 1)

	res, err := backoff.Retry(ctx, func() (T, error) {
		attempts++

		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if policy.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, policy.AttemptTimeout)
		}
		defer cancel()

		val, err := op(attemptCtx, attempts)
		if err == nil {
			return val, nil
		}

		lastErr = err

		if attemptTimedOut(ctx, attemptCtx, err) {
			return val, err
		}

		if classify != nil && classify(err) == Terminal {
			terminal = true

			return val, backoff.Permanent(err)
		}

		return val, err
	},
		backoff.WithBackOff(newBackOff(policy)),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().
				Err(err).
				Str("policy", policy.Name).
				Int("attempt", attempts).
				Int("max_attempts", maxAttempts).
				Dur("next_in", next).
				Msg("attempt failed, retrying")
		}),
	)
	if err == nil {
		return res, nil
	}

	if lastErr == nil {
		lastErr = err
	}

	return res, &Error{Attempts: attempts, Terminal: terminal, Err: lastErr}
}

func attemptTimedOut(parent, attemptCtx context.Context, err error) bool {
	return parent.Err() == nil &&
		attemptCtx.Err() != nil &&
		errors.Is(err, context.DeadlineExceeded)
}

func newBackOff(policy Policy) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.MaxInterval = policy.MaxInterval
	b.RandomizationFactor = policy.RandomizationFactor

	if policy.Multiplier >= 1 {
		b.Multiplier = policy.Multiplier
	}

	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}

	return b
}
