package mcts

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := LimiterLike(NewLimiter())

	if !limiter.Ok(1000000, 1000000, 1000000) {
		t.Error("Default limiter should search infinitely")
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	if ok := limiter.Ok(101, 1, 1); ok {
		t.Errorf("<Nodes=%d: ok=%v, want=%v", 101, ok, !ok)
	}

	if ok := limiter.Ok(99, 1, 1); !ok {
		t.Errorf(">Nodes=%d: ok=%v, want=%v", 99, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetCycles(10))
	limiter.Reset()
	if ok := limiter.Ok(1, 1, 10); ok {
		t.Errorf("<Cycles=%d: ok=%v, want=%v", 10, ok, !ok)
	}
	if ok := limiter.Ok(1, 1, 9); !ok {
		t.Errorf(">Cycles=%d: ok=%v, want=%v", 9, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetDepth(5))
	limiter.Reset()
	if ok := limiter.Ok(1, 5, 1); ok {
		t.Errorf("<Depth=%d: ok=%v, want=%v", 5, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(100))
	limiter.Reset()
	time.Sleep(time.Millisecond * 101)

	if ok := limiter.Ok(1, 1, 1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}

	limiter.Reset()
	if ok := limiter.Ok(1, 1, 1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
}

func TestLimiterStopReason(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetLimits(DefaultLimits().SetCycles(10).SetNodes(50))
	limiter.Reset()

	limiter.EvaluateStopReason(60, 1, 10)
	if got := limiter.StopReason(); got != StopNodes|StopCycles {
		t.Errorf("stop reason %v, want %v", got, StopNodes|StopCycles)
	}
	if got := limiter.StopReason().String(); got != "Nodes|Cycles" {
		t.Errorf("stop reason string %q", got)
	}

	limiter.Reset()
	if limiter.StopReason() != StopNone || StopNone.String() != "None" {
		t.Errorf("reset should clear the stop reason, got %v", limiter.StopReason())
	}
}

func TestLimiterInterrupt(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetLimits(DefaultLimits())
	limiter.Reset()

	limiter.SetStop(true)
	if limiter.Ok(1, 1, 1) {
		t.Error("stop signal should end an infinite search")
	}

	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.Reset()
	if !limiter.Ok(1, 1, 1) {
		t.Error("reset should clear the stop signal")
	}

	cancel()
	if limiter.Ok(1, 1, 1) {
		t.Error("cancelled context should stop the search")
	}
	limiter.EvaluateStopReason(1, 1, 1)
	if limiter.StopReason() != StopInterrupt {
		t.Errorf("stop reason %v, want %v", limiter.StopReason(), StopInterrupt)
	}
}
