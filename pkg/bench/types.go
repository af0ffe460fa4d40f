package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "1-0"
	case VersusPl2Win:
		return "0-1"
	}
	return "1/2"
}

// Position the arena plays on, moves are taken back with UndoMove
type PositionLike[T mcts.MoveLike, P any] interface {
	MakeMove(T)
	UndoMove() bool
	IsTerminal() bool
	IsDraw() bool
	Clone() P
}

// Searcher picks a move on the position it was created with
type Searcher[T mcts.MoveLike] interface {
	BestMove() (T, error)
}

// Player builds a fresh searcher for every worker, bound to the worker's position
type Player[T mcts.MoveLike, P any] struct {
	Name string
	New  func(pos P) Searcher[T]
}

type VersusArenaStats struct {
	p1Wins           atomic.Uint32
	p2Wins           atomic.Uint32
	draws            atomic.Uint32
	firstToMoveWins  atomic.Uint32
	secondToMoveWins atomic.Uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(vas.p1Wins.Load())
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(vas.p2Wins.Load())
}

func (vas *VersusArenaStats) Draws() int {
	return int(vas.draws.Load())
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(vas.firstToMoveWins.Load())
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(vas.secondToMoveWins.Load())
}

func (vas *VersusArenaStats) add(result VersusMatchResult, outcome GameOutcome) {
	switch result {
	case VersusDraw:
		vas.draws.Add(1)
		return
	case VersusPl1Win:
		vas.p1Wins.Add(1)
	case VersusPl2Win:
		vas.p2Wins.Add(1)
	}

	if outcome.FirstPlayerWon {
		vas.firstToMoveWins.Add(1)
	} else {
		vas.secondToMoveWins.Add(1)
	}
}

type VersusWorkerInfo[T mcts.MoveLike] struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []T
	Result        VersusMatchResult
	P1Wins        int
	P2Wins        int
	Draws         int
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
	ElapsedMs        int64  `json:"elapsed_ms"`
}

// represents result from the first-player's perspective in a single game
type GameOutcome struct {
	FirstPlayerWon bool
	IsDraw         bool
}

// maps a game outcome to which player won, given player assignments
func toPlayerResult(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	if outcome.IsDraw {
		return VersusDraw
	}

	if p1WentFirst == outcome.FirstPlayerWon {
		return VersusPl1Win
	}
	return VersusPl2Win
}

// determines winner based on game state and move count,
// the player making the last move of a decided game is the winner
func computeOutcome[T mcts.MoveLike, P PositionLike[T, P]](gamePos P, moveCount int) GameOutcome {
	if !gamePos.IsTerminal() {
		panic("computeOutcome: position not terminated")
	}

	if gamePos.IsDraw() {
		return GameOutcome{IsDraw: true}
	}

	return GameOutcome{FirstPlayerWon: moveCount%2 == 1}
}
