package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job represents one unit of batch work.
type Job struct {
	ID      string
	Type    string
	Payload interface{}
	Attempt int
}

// Result pairs a job with the outcome of its last attempt.
type Result struct {
	Job   Job
	Value interface{}
	Err   error
}

// Handler processes a job and returns an optional value.
type Handler func(context.Context, Job) (interface{}, error)

// PoolConfig configures worker pool behaviour.
type PoolConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	// Retryable reports whether a failed attempt may be repeated. Nil retries every error.
	Retryable func(error) bool
	Logger    *zap.Logger
}

// Pool runs batches of jobs over a fixed number of goroutines.
type Pool struct {
	name    string
	handler Handler

	workers    int
	maxRetries int
	retryDelay time.Duration
	retryable  func(error) bool
	logger     *zap.Logger
}

// NewPool builds a pool with the provided handler.
func NewPool(name string, handler Handler, cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}
	if cfg.Retryable == nil {
		cfg.Retryable = func(error) bool { return true }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		retryable:  cfg.Retryable,
		logger:     cfg.Logger,
	}
}

// Run processes every job and blocks until all are done. Results are returned
// in the order of jobs. Jobs not dispatched before ctx ends carry ctx.Err().
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(jobs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.process(ctx, jobs[i])
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Job: jobs[j], Err: ctx.Err()}
			}
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	p.logger.Sugar().Debugw("batch finished", "pool", p.name, "jobs", len(jobs))
	return results
}

func (p *Pool) process(ctx context.Context, job Job) Result {
	for {
		job.Attempt++
		value, err := p.handler(ctx, job)
		if err == nil {
			return Result{Job: job, Value: value}
		}
		if job.Attempt > p.maxRetries || !p.retryable(err) {
			if job.Attempt > 1 {
				p.logger.Sugar().Errorw("job exceeded retries", "pool", p.name, "job_id", job.ID, "type", job.Type, "error", err)
			}
			return Result{Job: job, Err: err}
		}
		p.logger.Sugar().Warnw("job failed, retrying", "pool", p.name, "job_id", job.ID, "type", job.Type, "attempt", job.Attempt, "error", err)

		timer := time.NewTimer(p.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{Job: job, Err: fmt.Errorf("pool %s stopped: %w", p.name, ctx.Err())}
		case <-timer.C:
		}
	}
}
