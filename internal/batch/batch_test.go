package batch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunPreservesOrderAndIsolatesFailures(t *testing.T) {
	r := Runner{}
	out, err := r.Run(context.Background(), 3, func(_ context.Context, i int) (any, error) {
		if i == 1 {
			return nil, errors.New("boom")
		}
		return i * 10, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Total != 3 || out.Succeeded != 2 || out.Failed != 1 {
		t.Fatalf("counters wrong: %+v", out)
	}
	if len(out.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out.Results))
	}
	for i, res := range out.Results {
		if res.Index != i {
			t.Fatalf("result %d has index %d", i, res.Index)
		}
	}
	if out.Results[1].Success || out.Results[1].Error != "boom" {
		t.Fatalf("failure not recorded: %+v", out.Results[1])
	}
	if !out.Results[2].Success || out.Results[2].Value != 20 {
		t.Fatalf("item after failure not processed: %+v", out.Results[2])
	}
}

func TestRunSuccessRateRounding(t *testing.T) {
	r := Runner{}
	out, err := r.Run(context.Background(), 3, func(_ context.Context, i int) (any, error) {
		if i == 2 {
			return nil, errors.New("no")
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.SuccessRate != 66.7 {
		t.Fatalf("success rate = %v, want 66.7", out.SuccessRate)
	}
}

func TestRunEmptyInput(t *testing.T) {
	if _, err := (Runner{}).Run(context.Background(), 0, nil); err == nil {
		t.Fatalf("empty batch should error")
	}
}

func TestRunRecoversPanics(t *testing.T) {
	out, err := (Runner{}).Run(context.Background(), 2, func(_ context.Context, i int) (any, error) {
		if i == 0 {
			panic("unexpected state")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Results[0].Success {
		t.Fatalf("panicking item recorded as success")
	}
	if out.Results[0].Error == "" {
		t.Fatalf("panic message missing")
	}
	if !out.Results[1].Success {
		t.Fatalf("batch did not continue after panic")
	}
}

func TestRunDelayBetweenItemsOnly(t *testing.T) {
	r := Runner{Delay: 30 * time.Millisecond}
	start := time.Now()
	if _, err := r.Run(context.Background(), 3, func(_ context.Context, _ int) (any, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 60*time.Millisecond {
		t.Fatalf("delays not applied between items: %v", elapsed)
	}
	if elapsed > 150*time.Millisecond {
		t.Fatalf("delay appears to run after the final item too: %v", elapsed)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := Runner{Delay: time.Hour}
	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx, 2, func(_ context.Context, _ int) (any, error) {
			return nil, nil
		})
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("batch did not stop on cancellation")
	}
}
