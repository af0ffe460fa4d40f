package mcts

import (
	"context"
	"strings"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // Stopped by user, by calling .Stop() or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached
	StopNodes     StopReason = 4  // Table size limit reached
	StopDepth     StopReason = 8  // Depth limit reached
	StopCycles    StopReason = 16 // Cycle limit reached
	StopDecisive  StopReason = 32 // Root has a winning move, nothing to search
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
		{StopDepth, "Depth"},
		{StopCycles, "Cycles"},
		{StopDecisive, "Decisive"},
	}

	names := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			names = append(names, r.name)
		}
	}
	return strings.Join(names, "|")
}

func (sr StopReason) MarshalText() ([]byte, error) {
	return []byte(sr.String()), nil
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Whether the search may run another iteration
	Ok(size, depth, cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally,
	// called once after search ends
	EvaluateStopReason(size, depth, cycles uint32)
}

type Limiter struct {
	limits *Limits
	timer  *timer
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		timer:  newTimer(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.timer.Movetime(l.limits.Movetime)
	l.timer.Reset()
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) EvaluateStopReason(size, depth, cycles uint32) {
	l.reason = StopReason(l.LimitMask(size, depth, cycles))
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.timer.Deltatime())
}

func toMask(val bool, flag StopReason) int {
	if val {
		return int(flag)
	}
	return 0
}

// Bit mask of reached limits, same bits as StopReason
func (l *Limiter) LimitMask(size, depth, cycles uint32) int {
	stop := l.Stop()
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return toMask(stop, StopInterrupt)
	}

	return toMask(stop, StopInterrupt) |
		toMask(l.timer.IsEnd(), StopMovetime) |
		toMask(l.limits.Nodes <= size, StopNodes) |
		toMask(l.limits.Depth <= int(depth), StopDepth) |
		toMask(l.limits.Cycles <= cycles, StopCycles)
}

func (l *Limiter) Ok(size, depth, cycles uint32) bool {
	return l.LimitMask(size, depth, cycles) == 0
}
