// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/resumerank/core"
)

// DefaultMaxWorkers bounds batch parallelism when the caller does not choose.
const DefaultMaxWorkers = 5

// DefaultItemTimeout bounds each item's execution.
const DefaultItemTimeout = 60 * time.Second

// ItemFunc processes one batch item and returns its output.
type ItemFunc func(ctx context.Context, item core.BatchItem) (any, error)

// Coordinator executes batches of independent items on one long-lived worker
// pool. The pool is retuned to the recommended worker count before each batch.
type Coordinator struct {
	pool        *ants.Pool
	maxWorkers  int
	itemTimeout time.Duration
	monitor     *ResourceMonitor
	logger      *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithMaxWorkers sets the upper bound on parallel items.
// Default is DefaultMaxWorkers capped at the CPU count.
func WithMaxWorkers(n int) Option {
	return func(c *Coordinator) error {
		if n < 1 {
			return fmt.Errorf("maxWorkers must be at least 1, got %d", n)
		}
		c.maxWorkers = n
		return nil
	}
}

// WithItemTimeout sets the per-item execution bound.
// Default is DefaultItemTimeout.
func WithItemTimeout(d time.Duration) Option {
	return func(c *Coordinator) error {
		if d <= 0 {
			return fmt.Errorf("itemTimeout must be positive, got %v", d)
		}
		c.itemTimeout = d
		return nil
	}
}

// WithResourceMonitor sets the load monitor consulted before each batch.
// Default is no monitoring.
func WithResourceMonitor(monitor *ResourceMonitor) Option {
	return func(c *Coordinator) error {
		c.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a coordinator with its worker pool started.
func NewCoordinator(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		maxWorkers:  min(DefaultMaxWorkers, max(runtime.NumCPU(), 1)),
		itemTimeout: DefaultItemTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(c.maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	c.pool = pool
	return c, nil
}

// ProcessBatch runs fn for every item and collects one result per item,
// indexed like the input. Item failures, panics, and timeouts are recorded
// per result and never abort the batch. A timed-out task keeps running
// detached in the background; its worker is freed immediately and the late
// result is discarded.
func (c *Coordinator) ProcessBatch(ctx context.Context, items []core.BatchItem, fn ItemFunc) (*core.BatchSummary, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCoordinatorClosed
	}
	workers := c.monitor.Recommend(c.maxWorkers)
	c.pool.Tune(workers)
	c.mu.Unlock()

	start := time.Now()
	results := make([]core.BatchResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		i, item := i, item
		submitErr := c.pool.Submit(func() {
			defer wg.Done()
			results[i] = c.runItem(ctx, item, fn)
		})
		if submitErr != nil {
			results[i] = core.BatchResult{
				Ref:    item.Ref,
				Status: core.StatusFailed,
				Error:  submitErr.Error(),
			}
			wg.Done()
		}
	}
	wg.Wait()

	summary := summarize(results, time.Since(start))
	c.logger.Info("batch complete",
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"workers", workers,
		"elapsed", summary.TotalTime)
	return summary, nil
}

// runItem executes fn with the per-item timeout. The inner goroutine is the
// only place fn runs; on timeout its eventual result is discarded.
func (c *Coordinator) runItem(ctx context.Context, item core.BatchItem, fn ItemFunc) core.BatchResult {
	start := time.Now()

	itemCtx, cancel := context.WithTimeout(ctx, c.itemTimeout)
	defer cancel()

	type outcome struct {
		output any
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		output, err := fn(itemCtx, item)
		done <- outcome{output: output, err: err}
	}()

	select {
	case out := <-done:
		result := core.BatchResult{Ref: item.Ref, Duration: time.Since(start)}
		if out.err != nil {
			result.Status = core.StatusFailed
			result.Error = out.err.Error()
			c.logger.Warn("batch item failed", "ref", item.Ref, "error", out.err)
		} else {
			result.Status = core.StatusSuccess
			result.Output = out.output
		}
		return result
	case <-itemCtx.Done():
		// The task keeps running in the background; the buffered channel
		// absorbs its eventual result.
		c.logger.Warn("batch item timed out", "ref", item.Ref, "timeout", c.itemTimeout)
		return core.BatchResult{
			Ref:      item.Ref,
			Status:   core.StatusTimeout,
			Error:    ErrItemTimeout.Error(),
			Duration: time.Since(start),
		}
	}
}

// Release shuts the worker pool down. Further batches are rejected.
func (c *Coordinator) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.pool.Release()
}

func summarize(results []core.BatchResult, elapsed time.Duration) *core.BatchSummary {
	summary := &core.BatchSummary{
		Status:    core.BatchSuccess,
		Results:   results,
		Total:     len(results),
		TotalTime: elapsed,
	}
	for _, r := range results {
		if r.Status == core.StatusSuccess {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	if summary.Total > 0 {
		summary.AvgPerItem = elapsed / time.Duration(summary.Total)
	}
	switch {
	case summary.Total == 0 || summary.Failed == 0:
		summary.Status = core.BatchSuccess
	case summary.Successful == 0:
		summary.Status = core.BatchFailed
	default:
		summary.Status = core.BatchPartial
	}
	return summary
}
