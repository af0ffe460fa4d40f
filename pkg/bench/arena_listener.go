package bench

import "github.com/IlikeChooros/go-ttmcts/pkg/mcts"

// Distributes arena events to several listeners
type ArenaListener[T mcts.MoveLike] struct {
	listeners []ListenerLike[T]
}

func NewArenaListener[T mcts.MoveLike](listeners ...ListenerLike[T]) *ArenaListener[T] {
	return &ArenaListener[T]{listeners: listeners}
}

func (al *ArenaListener[T]) Add(listener ListenerLike[T]) {
	al.listeners = append(al.listeners, listener)
}

func (al *ArenaListener[T]) OnMoveMade(info VersusWorkerInfo[T]) {
	for _, l := range al.listeners {
		l.OnMoveMade(info)
	}
}

func (al *ArenaListener[T]) OnFinishedGame(info VersusWorkerInfo[T]) {
	for _, l := range al.listeners {
		l.OnFinishedGame(info)
	}
}

func (al *ArenaListener[T]) OnFinishedWork(info VersusWorkerInfo[T]) {
	for _, l := range al.listeners {
		l.OnFinishedWork(info)
	}
}

func (al *ArenaListener[T]) Summary(info VersusSummaryInfo) {
	for _, l := range al.listeners {
		l.Summary(info)
	}
}
