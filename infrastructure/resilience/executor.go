// Package resilience bounds concurrent work using fortify.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
)

// Executor runs work behind a bulkhead with an optional per-call timeout.
type Executor[T any] struct {
	bulkhead      bulkhead.Bulkhead[T]
	maxConcurrent int
	timeout       time.Duration
}

// ExecutorConfig configures the executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent executions.
	MaxConcurrent int

	// DefaultTimeout bounds each execution. Zero disables it.
	DefaultTimeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:  10,
		DefaultTimeout: 30 * time.Second,
	}
}

// NewExecutor creates a new executor.
func NewExecutor[T any](config ExecutorConfig) *Executor[T] {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultExecutorConfig().MaxConcurrent
	}
	timeout := config.DefaultTimeout
	if timeout < 0 {
		timeout = 0
	}

	return &Executor[T]{
		bulkhead: bulkhead.New[T](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		maxConcurrent: maxConcurrent,
		timeout:       timeout,
	}
}

// NewExecutorWithOptions creates an executor with the given options.
func NewExecutorWithOptions[T any](opts ...Option) *Executor[T] {
	config := DefaultExecutorConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewExecutor[T](config)
}

// MaxConcurrent returns the effective concurrency limit.
func (e *Executor[T]) MaxConcurrent() int {
	return e.maxConcurrent
}

// Timeout returns the per-call timeout, zero when disabled.
func (e *Executor[T]) Timeout() time.Duration {
	return e.timeout
}

// Execute runs fn through the bulkhead, then under the timeout.
func (e *Executor[T]) Execute(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return e.bulkhead.Execute(ctx, func(ctx context.Context) (T, error) {
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}
		return fn(ctx)
	})
}
