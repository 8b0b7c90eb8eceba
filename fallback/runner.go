// Package fallback runs an attempt against an ordered list of model
// candidates, stopping at the first success.
//
// Provider model availability and quality degrade independently, so a strict
// sequential trial with short-circuit on first success bounds latency and
// cost while making forward progress as long as one candidate is healthy.
// Candidates share no state; one attempt fully resolves before the next
// starts, and no two candidates for the same request ever run concurrently.
package fallback

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
)

// ErrNoCandidates is returned when Run is called with an empty candidate list.
var ErrNoCandidates = errors.New("fallback: no candidates configured")

// AttemptFunc resolves one candidate completely: payload construction,
// submission, polling and payload fetch for asynchronous jobs, or the call
// (with any retry policy) for synchronous ones. Any error fails the candidate.
type AttemptFunc[T any] func(ctx context.Context, model string) (T, error)

// Run tries each candidate in list order and returns the first success along
// with the identifier of the candidate that produced it. Every failure is
// recorded; when the list is exhausted the returned error is a
// *mediaforge.AllCandidatesError carrying the attempt records. Context
// cancellation aborts the loop immediately instead of advancing to the next
// candidate.
func Run[T any](ctx context.Context, log zerolog.Logger, candidates []string, attempt AttemptFunc[T]) (T, string, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, "", ErrNoCandidates
	}

	attempts := make([]mediaforge.AttemptRecord, 0, len(candidates))
	for _, model := range candidates {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}

		result, err := attempt(ctx, model)
		if err == nil {
			return result, model, nil
		}
		if ctx.Err() != nil {
			// The attempt failed because the caller went away; trying the
			// remaining candidates would outlive the request.
			return zero, "", ctx.Err()
		}

		attempts = append(attempts, mediaforge.AttemptRecord{
			Model: model,
			Err:   err,
			At:    time.Now(),
		})
		log.Warn().Err(err).Str("model", model).Msg("candidate failed, trying next")
	}

	return zero, "", &mediaforge.AllCandidatesError{Attempts: attempts}
}
