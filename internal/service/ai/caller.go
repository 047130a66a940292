package ai

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"github.com/nodegrowth/dorm-chatbot/backend/internal/model/chat"
)

// RetryPolicy bounds the attempts made for one completion.
type RetryPolicy struct {
	MaxAttempts uint
	BaseDelay   time.Duration
}

// DefaultRetryPolicy allows 5 attempts with 2, 4, 8 and 16 second base waits.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Second,
	}
}

// CallerOption customises a Caller.
type CallerOption func(*Caller)

// WithTimer replaces the timer used between attempts.
func WithTimer(timer retry.Timer) CallerOption {
	return func(c *Caller) { c.timer = timer }
}

// WithJitter replaces the U(0,1) source used to stretch each delay.
func WithJitter(jitter func() float64) CallerOption {
	return func(c *Caller) { c.jitter = jitter }
}

// Caller wraps a Provider with bounded exponential backoff on transient errors.
type Caller struct {
	provider Provider
	policy   RetryPolicy
	logger   *zap.Logger
	timer    retry.Timer
	jitter   func() float64
}

// NewCaller returns a Caller for provider.
func NewCaller(provider Provider, policy RetryPolicy, logger *zap.Logger, opts ...CallerOption) *Caller {
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Caller{
		provider: provider,
		policy:   policy,
		logger:   logger,
		jitter:   rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete returns the model's answer. Transient failures are retried up to
// the policy's attempt ceiling; anything else is returned after one call.
func (c *Caller) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	var (
		answer   string
		attempts uint
		waits    uint
	)

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.policy.MaxAttempts),
		retry.RetryIf(IsTransient),
		retry.DelayType(func(_ uint, err error, _ *retry.Config) time.Duration {
			wait := c.backoff(waits, err)
			waits++
			return wait
		}),
		retry.LastErrorOnly(true),
	}
	if c.timer != nil {
		opts = append(opts, retry.WithTimer(c.timer))
	}

	err := retry.Do(func() error {
		attempts++
		out, err := c.provider.Complete(ctx, req)
		if err != nil {
			return err
		}
		answer = out
		return nil
	}, opts...)
	if err == nil {
		return answer, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("completion abandoned after %d attempts: %w", attempts, ctxErr)
	}
	if IsTransient(err) {
		c.logger.Error("completion retries exhausted",
			zap.Uint("attempts", attempts),
			zap.Error(err))
		return "", fmt.Errorf("%w after %d attempts: %v", ErrExhaustedRetries, attempts, err)
	}
	return "", err
}

// backoff is BaseDelay·2^n stretched by a factor in [1, 2).
func (c *Caller) backoff(n uint, err error) time.Duration {
	base := c.policy.BaseDelay << n
	wait := time.Duration(float64(base) * (1 + c.jitter()))

	c.logger.Warn("completion call failed, retrying",
		zap.Uint("attempt", n+1),
		zap.Uint("max_attempts", c.policy.MaxAttempts),
		zap.Duration("delay", wait),
		zap.Error(err))
	return wait
}
