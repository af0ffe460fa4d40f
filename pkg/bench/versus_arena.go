package bench

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
different engine configurations.
*/

type VersusArena[T mcts.MoveLike, P PositionLike[T, P]] struct {
	VersusArenaStats
	Player1  Player[T, P]
	Player2  Player[T, P]
	NGames   int
	NWorkers int
	Position P
	listener ListenerLike[T]
	logger   zerolog.Logger
}

func NewVersusArena[T mcts.MoveLike, P PositionLike[T, P]](position P, p1, p2 Player[T, P]) *VersusArena[T, P] {
	return &VersusArena[T, P]{
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NWorkers: 2,
		Position: position,
		listener: NewDefaultListener[T](log.Logger),
		logger:   log.Logger,
	}
}

func (va *VersusArena[T, P]) Setup(nGames, nWorkers int) *VersusArena[T, P] {
	va.NGames = max(0, nGames)
	va.NWorkers = max(1, nWorkers)
	return va
}

func (va *VersusArena[T, P]) SetListener(listener ListenerLike[T]) *VersusArena[T, P] {
	if listener != nil {
		va.listener = listener
	}
	return va
}

func (va *VersusArena[T, P]) SetLogger(logger zerolog.Logger) *VersusArena[T, P] {
	va.logger = logger
	return va
}

// Play all games, distributing them equally between the workers.
// Player 1 moves first in even games, player 2 in odd ones.
func (va *VersusArena[T, P]) Run(ctx context.Context) (VersusSummaryInfo, error) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	nGames := va.NGames / va.NWorkers
	rest := va.NGames % va.NWorkers
	offset := 0
	for id := 0; id < va.NWorkers; id++ {
		count := nGames
		if id < rest {
			count++
		}

		id := id
		first := offset
		offset += count
		g.Go(func() error {
			return va.worker(ctx, id, first, count)
		})
	}

	err := g.Wait()
	summary := va.summary(time.Since(start))
	va.listener.Summary(summary)
	if err != nil {
		return summary, err
	}

	va.logger.Info().
		Int("games", summary.TotalGames).
		Int("p1_wins", summary.P1Wins).
		Int("p2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Msgf("arena %s vs %s finished", va.Player1.Name, va.Player2.Name)
	return summary, nil
}

func (va *VersusArena[T, P]) summary(elapsed time.Duration) VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          va.NWorkers,
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
		ElapsedMs:        elapsed.Milliseconds(),
	}
}

// Plays games [first, first+nGames) on its own position copy
func (va *VersusArena[T, P]) worker(ctx context.Context, id, first, nGames int) error {
	gamePos := va.Position.Clone()
	p1 := va.Player1.New(gamePos)
	p2 := va.Player2.New(gamePos)
	local := VersusArenaStats{}

	for i := 0; i < nGames; i++ {
		p1First := (first+i)%2 == 0
		starter, other := p1, p2
		if !p1First {
			starter, other = p2, p1
		}

		info := VersusWorkerInfo[T]{
			WorkerID:      id,
			NGames:        nGames,
			FinishedGames: i,
			P1Name:        va.Player1.Name,
			P2Name:        va.Player2.Name,
		}
		moves, err := va.playGame(ctx, starter, other, gamePos, info)
		if err != nil {
			return errors.Wrapf(err, "worker %d, game %d", id, first+i)
		}

		outcome := computeOutcome[T](gamePos, len(moves))
		result := toPlayerResult(outcome, p1First)
		va.add(result, outcome)
		local.add(result, outcome)

		// back to the starting position, the searchers keep their statistics
		for range moves {
			gamePos.UndoMove()
		}

		info.FinishedGames = i + 1
		info.Moves = moves
		info.GameMoveNum = len(moves)
		info.Result = result
		info.P1Wins, info.P2Wins, info.Draws = local.P1Wins(), local.P2Wins(), local.Draws()
		va.listener.OnFinishedGame(info)
	}

	va.listener.OnFinishedWork(VersusWorkerInfo[T]{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: nGames,
		P1Wins:        local.P1Wins(),
		P2Wins:        local.P2Wins(),
		Draws:         local.Draws(),
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	})
	return nil
}

// Alternate the moves until the game ends, the moves are left on the position
func (va *VersusArena[T, P]) playGame(ctx context.Context, first, second Searcher[T], gamePos P, info VersusWorkerInfo[T]) ([]T, error) {
	moves := make([]T, 0, 16)
	players := [2]Searcher[T]{first, second}

	for !gamePos.IsTerminal() {
		if err := ctx.Err(); err != nil {
			for range moves {
				gamePos.UndoMove()
			}
			return nil, err
		}

		m, err := players[len(moves)%2].BestMove()
		if err != nil {
			for range moves {
				gamePos.UndoMove()
			}
			return nil, err
		}

		gamePos.MakeMove(m)
		moves = append(moves, m)

		info.Moves = moves
		info.GameMoveNum = len(moves)
		va.listener.OnMoveMade(info)
	}
	return moves, nil
}
