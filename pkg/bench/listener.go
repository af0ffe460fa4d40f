package bench

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
)

// Receives arena progress, called concurrently by the workers
type ListenerLike[T mcts.MoveLike] interface {
	OnMoveMade(info VersusWorkerInfo[T])
	OnFinishedGame(info VersusWorkerInfo[T])
	OnFinishedWork(info VersusWorkerInfo[T])
	Summary(info VersusSummaryInfo)
}

// Logs finished games and the summary
type DefaultListener[T mcts.MoveLike] struct {
	logger zerolog.Logger
}

func NewDefaultListener[T mcts.MoveLike](logger zerolog.Logger) *DefaultListener[T] {
	return &DefaultListener[T]{logger: logger}
}

func (d *DefaultListener[T]) OnMoveMade(info VersusWorkerInfo[T]) {}

func (d *DefaultListener[T]) OnFinishedGame(info VersusWorkerInfo[T]) {
	d.logger.Debug().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("moves", info.GameMoveNum).
		Stringer("result", info.Result).
		Msgf("%v", info.Moves)
}

func (d *DefaultListener[T]) OnFinishedWork(info VersusWorkerInfo[T]) {
	d.logger.Debug().
		Int("worker", info.WorkerID).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker finished")
}

func (d *DefaultListener[T]) Summary(info VersusSummaryInfo) {
	d.logger.Info().Interface("summary", info).Msg("arena summary")
}

// Prints a coloured line for every worker and the final table
type TerminalListener[T mcts.MoveLike] struct {
	mu     sync.Mutex
	out    *termenv.Output
	format func(T) string
}

func NewTerminalListener[T mcts.MoveLike](w io.Writer, format func(T) string) *TerminalListener[T] {
	if format == nil {
		format = func(m T) string { return fmt.Sprint(m) }
	}
	return &TerminalListener[T]{out: termenv.NewOutput(w), format: format}
}

func (l *TerminalListener[T]) OnMoveMade(info VersusWorkerInfo[T]) {}

func (l *TerminalListener[T]) OnFinishedGame(info VersusWorkerInfo[T]) {
	moves := make([]string, len(info.Moves))
	for i, m := range info.Moves {
		moves[i] = l.format(m)
	}

	color := "244"
	switch info.Result {
	case VersusPl1Win:
		color = "10"
	case VersusPl2Win:
		color = "9"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[worker %d] game %d/%d %s %s\n",
		info.WorkerID, info.FinishedGames, info.NGames,
		l.out.String(info.Result.String()).Foreground(l.out.Color(color)).Bold(),
		strings.Join(moves, " "))
}

func (l *TerminalListener[T]) OnFinishedWork(info VersusWorkerInfo[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[worker %d] done: +%d -%d =%d\n", info.WorkerID, info.P1Wins, info.P2Wins, info.Draws)
}

func (l *TerminalListener[T]) Summary(info VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	title := l.out.String(fmt.Sprintf("%s vs %s", info.P1Name, info.P2Name)).Bold().Underline()
	fmt.Fprintf(l.out, "\n%s (%d games, %d workers, %dms)\n", title, info.TotalGames, info.Workers, info.ElapsedMs)
	fmt.Fprintf(l.out, "  %-20s %d\n", info.P1Name+" wins", info.P1Wins)
	fmt.Fprintf(l.out, "  %-20s %d\n", info.P2Name+" wins", info.P2Wins)
	fmt.Fprintf(l.out, "  %-20s %d\n", "draws", info.Draws)
	fmt.Fprintf(l.out, "  %-20s %d / %d\n", "first/second wins", info.FirstToMoveWins, info.SecondToMoveWins)
}
