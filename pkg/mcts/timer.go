package mcts

import "time"

type timer struct {
	start    time.Time
	duration time.Duration
}

func newTimer() *timer {
	return &timer{time.Now(), -1}
}

// Check if this timer has ended
func (t *timer) IsEnd() bool {
	return t.duration >= 0 && time.Since(t.start) >= t.duration
}

// Set the 'start' as now
func (t *timer) Reset() {
	t.start = time.Now()
}

// Elapsed milliseconds, at least 1
func (t *timer) Deltatime() int {
	return max(int(time.Since(t.start).Milliseconds()), 1)
}

// In milliseconds, negative disables the timer
func (t *timer) Movetime(movetime int) {
	if movetime < 0 {
		t.duration = -1
	} else {
		t.duration = time.Duration(movetime) * time.Millisecond
	}
}
