package retry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carlcarl/imgurup/internal/imgur"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func failure(msg string) *imgur.Envelope {
	return &imgur.Envelope{Success: false, Data: json.RawMessage(`{"error":"` + msg + `"}`)}
}

func success(data string) *imgur.Envelope {
	return &imgur.Envelope{Success: true, Data: json.RawMessage(data)}
}

// newPolicy builds a policy with an instrumented sleep.
func newPolicy(t *testing.T, maxAttempts int, reauthorize func(ctx context.Context) error, slept *[]time.Duration) *Policy {
	t.Helper()
	policy, err := New(maxAttempts, time.Second, reauthorize, testLogger())
	require.NoError(t, err)
	policy.Sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return policy
}

func TestNew_RejectsBadConfig(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }

	_, err := New(0, time.Second, noop, testLogger())
	require.Error(t, err)

	_, err = New(-3, time.Second, noop, testLogger())
	require.Error(t, err)

	_, err = New(2, 0, noop, testLogger())
	require.Error(t, err)

	_, err = New(2, time.Second, nil, testLogger())
	require.Error(t, err)
}

func TestDo_SuccessShortCircuits(t *testing.T) {
	var refreshes int
	var slept []time.Duration
	policy := newPolicy(t, 2, func(ctx context.Context) error {
		refreshes++
		return nil
	}, &slept)

	calls := 0
	data, err := policy.Do(context.Background(), "album list", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		return success(`[{"id":"a1"}]`), nil
	})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"a1"}]`, string(data))
	require.Equal(t, 1, calls)
	require.Zero(t, refreshes)
	require.Empty(t, slept)
}

func TestDo_AlwaysFailingRunsExactBudget(t *testing.T) {
	const maxAttempts = 4

	var refreshes int
	var slept []time.Duration
	policy := newPolicy(t, maxAttempts, func(ctx context.Context) error {
		refreshes++
		return nil
	}, &slept)

	calls := 0
	_, err := policy.Do(context.Background(), "image upload", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		return failure("still broken"), nil
	})

	var apiErr *imgur.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "image upload", apiErr.Op)
	require.Equal(t, "still broken", apiErr.Message)

	require.Equal(t, maxAttempts, calls)
	require.Equal(t, maxAttempts-1, refreshes)
	require.Len(t, slept, maxAttempts-1)
	for _, d := range slept {
		require.Equal(t, time.Second, d)
	}
}

func TestDo_RecoversAfterReauthorize(t *testing.T) {
	var refreshes int
	var slept []time.Duration
	policy := newPolicy(t, 2, func(ctx context.Context) error {
		refreshes++
		return nil
	}, &slept)

	calls := 0
	data, err := policy.Do(context.Background(), "image upload", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		if calls == 1 {
			return failure("The access token provided is invalid."), nil
		}
		return success(`{"link":"http://i.imgur.com/x.png"}`), nil
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"link":"http://i.imgur.com/x.png"}`, string(data))
	require.Equal(t, 2, calls)
	require.Equal(t, 1, refreshes)
	require.Len(t, slept, 1)
}

func TestDo_SingleAttemptNeverReauthorizes(t *testing.T) {
	var refreshes int
	var slept []time.Duration
	policy := newPolicy(t, 1, func(ctx context.Context) error {
		refreshes++
		return nil
	}, &slept)

	calls := 0
	_, err := policy.Do(context.Background(), "image upload", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		return failure("nope"), nil
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
	require.Zero(t, refreshes)
	require.Empty(t, slept)
}

func TestDo_ReauthorizeFailureAborts(t *testing.T) {
	authErr := &imgur.AuthError{Reason: "no credentials"}
	var slept []time.Duration
	policy := newPolicy(t, 3, func(ctx context.Context) error {
		return authErr
	}, &slept)

	calls := 0
	_, err := policy.Do(context.Background(), "image upload", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		return failure("expired"), nil
	})
	require.ErrorIs(t, err, authErr)
	require.Equal(t, 1, calls)
	require.Empty(t, slept)
}

func TestDo_TransportErrorIsNotRetried(t *testing.T) {
	boom := errors.New("connection refused")
	var refreshes int
	var slept []time.Duration
	policy := newPolicy(t, 3, func(ctx context.Context) error {
		refreshes++
		return nil
	}, &slept)

	calls := 0
	_, err := policy.Do(context.Background(), "album list", func(ctx context.Context) (*imgur.Envelope, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
	require.Zero(t, refreshes)
}
