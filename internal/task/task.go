// Package task runs units of work asynchronously on a bounded worker pool
// with retry. It stands in for an external task queue: callers dispatch with
// Delay and observe the outcome through a Result.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/project-locus/internal/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Func is one attempt of a task body.
type Func[T any] func(ctx context.Context) (T, error)

// Policy bounds retries. Attempt n (0-based) waits Backoff*2^n before the
// next one, capped at MaxBackoff.
type Policy struct {
	MaxRetries int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// DefaultPolicy allows 3 retries (4 attempts).
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		Backoff:    100 * time.Millisecond,
		MaxBackoff: 5 * time.Second,
	}
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Backoff <= 0 {
		return 0
	}
	d := p.Backoff
	for i := 0; i < attempt; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// ErrPanicked wraps the value recovered from a panicking task body.
var ErrPanicked = errors.New("task panicked")

// Permanent marks err as not retryable. The task fails on the current attempt
// and Get returns err itself.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// RetriesExhaustedError is returned when every allowed attempt failed.
type RetriesExhaustedError struct {
	Task     string
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("task %s failed after %d attempts: %v", e.Task, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Err }

// Runner executes tasks with at most `workers` running at once.
type Runner struct {
	sem    *semaphore.Weighted
	policy Policy
	wg     sync.WaitGroup
}

// NewRunner creates a runner. workers < 1 is treated as 1.
func NewRunner(workers int, policy Policy) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		sem:    semaphore.NewWeighted(int64(workers)),
		policy: policy,
	}
}

// Wait blocks until every dispatched task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

type options struct {
	policy    *Policy
	onAttempt func(attempt int, err error)
}

// Option customizes a single dispatch.
type Option func(*options)

// WithPolicy overrides the runner's retry policy for one task.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = &p }
}

// WithOnAttempt registers a hook called after every attempt with its
// 1-based number and outcome.
func WithOnAttempt(fn func(attempt int, err error)) Option {
	return func(o *options) { o.onAttempt = fn }
}

// Result is the handle of a dispatched task.
type Result[T any] struct {
	ID uuid.UUID

	done     chan struct{}
	value    T
	err      error
	attempts atomic.Int32
}

func newResult[T any]() *Result[T] {
	return &Result[T]{ID: uuid.New(), done: make(chan struct{})}
}

// Get blocks until the task finishes or ctx is done.
func (r *Result[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Ready reports whether the task has finished.
func (r *Result[T]) Ready() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Successful reports whether the task finished without error.
func (r *Result[T]) Successful() bool {
	return r.Ready() && r.err == nil
}

// Attempts returns the number of attempts made so far.
func (r *Result[T]) Attempts() int {
	return int(r.attempts.Load())
}

// Delay dispatches fn to the runner and returns immediately. The task runs
// under ctx; detach it (context.WithoutCancel) when it must outlive a request.
func Delay[T any](ctx context.Context, r *Runner, name string, fn Func[T], opts ...Option) *Result[T] {
	res := newResult[T]()
	o := r.options(opts)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(res.done)

		if err := r.sem.Acquire(ctx, 1); err != nil {
			res.err = fmt.Errorf("task %s: acquire worker: %w", name, err)
			metrics.TaskFailures.WithLabelValues(name).Inc()
			return
		}
		defer r.sem.Release(1)

		metrics.TasksInFlight.Inc()
		defer metrics.TasksInFlight.Dec()

		res.value, res.err = execute(ctx, name, res, fn, o)
	}()

	return res
}

func (r *Runner) options(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == nil {
		p := r.policy
		o.policy = &p
	}
	return o
}

// call runs one attempt. A panic becomes a permanent ErrPanicked failure.
func call[T any](ctx context.Context, fn Func[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Permanent(fmt.Errorf("%w: %v", ErrPanicked, r))
		}
	}()
	return fn(ctx)
}

func execute[T any](ctx context.Context, name string, res *Result[T], fn Func[T], o options) (T, error) {
	var zero T
	policy := *o.policy

	for attempt := 0; ; attempt++ {
		res.attempts.Add(1)
		metrics.TaskAttempts.WithLabelValues(name).Inc()

		v, err := call(ctx, fn)
		if o.onAttempt != nil {
			o.onAttempt(attempt+1, err)
		}
		if err == nil {
			slog.Debug("[Task] Succeeded", "task", name, "id", res.ID, "attempts", attempt+1)
			return v, nil
		}

		if IsPermanent(err) {
			var p *permanentError
			errors.As(err, &p)
			slog.Error("[Task] Failed permanently", "task", name, "id", res.ID, "attempt", attempt+1, "error", p.err)
			metrics.TaskFailures.WithLabelValues(name).Inc()
			return zero, p.err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.TaskFailures.WithLabelValues(name).Inc()
			return zero, fmt.Errorf("task %s: %w", name, errors.Join(ctxErr, err))
		}

		if attempt >= policy.MaxRetries {
			slog.Error("[Task] Retries exhausted", "task", name, "id", res.ID, "attempts", attempt+1, "error", err)
			metrics.TaskFailures.WithLabelValues(name).Inc()
			return zero, &RetriesExhaustedError{Task: name, Attempts: attempt + 1, Err: err}
		}

		wait := policy.delay(attempt)
		slog.Warn("[Task] Attempt failed, retrying",
			"task", name,
			"id", res.ID,
			"attempt", attempt+1,
			"backoff", wait,
			"error", err)
		metrics.TaskRetries.WithLabelValues(name).Inc()

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				metrics.TaskFailures.WithLabelValues(name).Inc()
				return zero, fmt.Errorf("task %s: %w", name, errors.Join(ctx.Err(), err))
			case <-timer.C:
			}
		}
	}
}
