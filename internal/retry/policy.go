// Package retry implements the reauthorize-and-retry policy applied to every
// token-authenticated API call.
//
// A non-success envelope is assumed to mean a stale access token, so the
// policy refreshes the credentials, waits a fixed delay and runs the call
// again. The trigger is deliberately coarse: any failure reauthorizes, even
// ones a refresh cannot fix; those simply fail again and exhaust the budget.
package retry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carlcarl/imgurup/internal/imgur"
)

// Operation performs one API call and returns its response envelope.
type Operation func(ctx context.Context) (*imgur.Envelope, error)

// Policy retries a failed operation after reauthorizing, up to a fixed
// number of attempts with a constant delay between them.
type Policy struct {
	maxAttempts int
	delay       time.Duration
	reauthorize func(ctx context.Context) error
	log         *slog.Logger

	// Sleep replaces the inter-attempt wait when non-nil.
	Sleep func(d time.Duration)
}

// New validates the configuration and returns a policy. maxAttempts must be
// at least 1 and delay positive; both are checked before any call is made.
func New(maxAttempts int, delay time.Duration, reauthorize func(ctx context.Context) error, log *slog.Logger) (*Policy, error) {
	if maxAttempts < 1 {
		return nil, errors.New("retry: max attempts must be at least 1")
	}
	if delay <= 0 {
		return nil, errors.New("retry: delay must be positive")
	}
	if reauthorize == nil {
		return nil, errors.New("retry: reauthorize func is required")
	}
	return &Policy{
		maxAttempts: maxAttempts,
		delay:       delay,
		reauthorize: reauthorize,
		log:         log,
	}, nil
}

// Do runs op until it yields a success envelope or the attempt budget is
// spent. On success the envelope's data is returned untouched. Between
// failed attempts the policy reauthorizes and waits; the final failure
// becomes an APIError carrying the operation name.
//
// Transport errors and reauthorization failures abort immediately, they are
// not part of the retry loop.
func (p *Policy) Do(ctx context.Context, op string, fn Operation) (json.RawMessage, error) {
	for remaining := p.maxAttempts; remaining > 1; remaining-- {
		envelope, err := fn(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if envelope.Success {
			return envelope.Data, nil
		}

		p.log.Info("reauthorize", "op", op, "error", envelope.ErrorMessage())
		if err := p.reauthorize(ctx); err != nil {
			return nil, err
		}
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
	}

	envelope, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if envelope.Success {
		return envelope.Data, nil
	}
	return nil, &imgur.APIError{Op: op, Message: envelope.ErrorMessage()}
}

func (p *Policy) wait(ctx context.Context) error {
	if p.Sleep != nil {
		p.Sleep(p.delay)
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}
