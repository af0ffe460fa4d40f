package mcts

type ListenerTreeStats[T MoveLike] struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       int
	Lines      []SearchLine[T]
	StopReason StopReason
}

// Convert engine state to 'ListenerTreeStats' struct
func toListenerStats[T MoveLike, S any](e *Engine[T, S]) ListenerTreeStats[T] {
	return ListenerTreeStats[T]{
		Lines:      e.MultiPv(BestChildMostVisits),
		Maxdepth:   e.MaxDepth(),
		Cycles:     e.Cycles(),
		TimeMs:     int(e.Limiter.Elapsed()),
		Cps:        e.Cps(),
		Size:       e.Size(),
		StopReason: e.StopReason(),
	}
}

// Listener function callback, will receive current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc[T MoveLike] func(ListenerTreeStats[T])

type StatsListener[T MoveLike] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[T]

	// called every N full iterations
	onCycle ListenerFunc[T]
	nCycles int

	// called when the search stops
	onStop ListenerFunc[T]
}

func NewStatsListener[T MoveLike]() StatsListener[T] {
	return StatsListener[T]{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener[T]) OnDepth(onDepth ListenerFunc[T]) *StatsListener[T] {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration callback, the principal variations are computed
// for every call, so keep the interval large
func (listener *StatsListener[T]) OnCycle(onCycle ListenerFunc[T]) *StatsListener[T] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[T]) SetCycleInterval(n int) *StatsListener[T] {
	listener.nCycles = max(1, n)
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener[T]) OnStop(onStop ListenerFunc[T]) *StatsListener[T] {
	listener.onStop = onStop
	return listener
}

type statsSource[T MoveLike] interface {
	listenerStats() ListenerTreeStats[T]
	Cycles() int
}

func (listener *StatsListener[T]) invokeCycle(e statsSource[T]) {
	if listener.onCycle != nil && e.Cycles()%max(1, listener.nCycles) == 0 {
		listener.onCycle(e.listenerStats())
	}
}

func (listener *StatsListener[T]) invoke(f ListenerFunc[T], e statsSource[T]) {
	if f != nil {
		f(e.listenerStats())
	}
}

func (e *Engine[T, S]) listenerStats() ListenerTreeStats[T] {
	return toListenerStats(e)
}
