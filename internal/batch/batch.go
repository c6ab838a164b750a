// Package batch runs a list of generation jobs strictly in sequence,
// isolating per-item failures and pacing calls with a fixed delay.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Job is one unit of batch work. The index is the item's position in the
// input slice and is echoed back in its result.
type Job func(ctx context.Context, index int) (any, error)

// Result records the outcome of a single item. Exactly one of Value and
// Error is meaningful, selected by Success.
type Result struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Outcome aggregates a whole batch run. Results preserve input order.
type Outcome struct {
	Total       int      `json:"total"`
	Succeeded   int      `json:"succeeded"`
	Failed      int      `json:"failed"`
	SuccessRate float64  `json:"success_rate"`
	Results     []Result `json:"results"`
}

// Runner executes jobs one at a time with a delay between consecutive
// items. There is no parallelism: ordering and pacing are the point.
type Runner struct {
	Delay time.Duration
}

// Run executes fn once per item, in order. A panicking or failing item is
// recorded and the batch continues. The delay is applied between items,
// never after the last one. Context cancellation stops the batch early
// with the error; results gathered so far are discarded.
func (r Runner) Run(ctx context.Context, items int, fn Job) (Outcome, error) {
	if items <= 0 {
		return Outcome{}, fmt.Errorf("batch: no items to process")
	}

	out := Outcome{Total: items, Results: make([]Result, 0, items)}
	for i := 0; i < items; i++ {
		if i > 0 && r.Delay > 0 {
			select {
			case <-ctx.Done():
				return Outcome{}, ctx.Err()
			case <-time.After(r.Delay):
			}
		}

		value, err := runOne(ctx, i, fn)
		if err != nil {
			slog.Warn("batch item failed", "index", i, "err", err)
			out.Failed++
			out.Results = append(out.Results, Result{Index: i, Error: err.Error()})
			continue
		}
		out.Succeeded++
		out.Results = append(out.Results, Result{Index: i, Success: true, Value: value})
	}

	out.SuccessRate = rate(out.Succeeded, out.Total)
	slog.Info("batch finished", "total", out.Total, "succeeded", out.Succeeded, "failed", out.Failed)
	return out, nil
}

// runOne isolates a single item so a panic inside fn is reported as that
// item's failure instead of aborting the batch.
func runOne(ctx context.Context, index int, fn Job) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx, index)
}

// rate returns the success percentage rounded to one decimal place.
func rate(succeeded, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(succeeded)/float64(total)*1000) / 10
}
