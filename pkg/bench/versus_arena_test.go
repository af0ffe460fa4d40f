package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
	"github.com/IlikeChooros/go-ttmcts/pkg/ttt"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() uint64 {
		return 42
	})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	os.Exit(m.Run())
}

// Plays a uniformly random legal move
type randomSearcher struct {
	pos *ttt.Position
	rng *rand.Rand
}

func (r *randomSearcher) BestMove() (ttt.Move, error) {
	moves := r.pos.LegalMoves()
	return moves.Moves[r.rng.Intn(int(moves.Size))], nil
}

func enginePlayer(name string, cycles uint32) Player[ttt.Move, *ttt.Position] {
	return Player[ttt.Move, *ttt.Position]{
		Name: name,
		New: func(pos *ttt.Position) Searcher[ttt.Move] {
			return mcts.NewEngine[ttt.Move, ttt.StateData](pos,
				mcts.WithLimits(mcts.DefaultLimits().SetCycles(cycles)))
		},
	}
}

func randomPlayer(seed uint64) Player[ttt.Move, *ttt.Position] {
	var workers atomic.Uint64
	return Player[ttt.Move, *ttt.Position]{
		Name: "random",
		New: func(pos *ttt.Position) Searcher[ttt.Move] {
			return &randomSearcher{pos: pos, rng: rand.New(rand.NewSource(seed + workers.Add(1)))}
		},
	}
}

// Counts events, safe for concurrent use
type countingListener struct {
	moves, games, workers atomic.Int32
	summary               VersusSummaryInfo
}

func (c *countingListener) OnMoveMade(VersusWorkerInfo[ttt.Move])     { c.moves.Add(1) }
func (c *countingListener) OnFinishedGame(VersusWorkerInfo[ttt.Move]) { c.games.Add(1) }
func (c *countingListener) OnFinishedWork(VersusWorkerInfo[ttt.Move]) { c.workers.Add(1) }
func (c *countingListener) Summary(info VersusSummaryInfo)           { c.summary = info }

func TestArenaEngineVsRandom(t *testing.T) {
	counter := &countingListener{}
	var buf bytes.Buffer
	listener := NewArenaListener[ttt.Move](counter, NewTerminalListener[ttt.Move](&buf, nil))

	arena := NewVersusArena(ttt.NewPosition(), enginePlayer("mcts", 2000), randomPlayer(1)).
		Setup(10, 3).
		SetListener(listener)

	summary, err := arena.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 10, summary.TotalGames)
	require.Equal(t, 10, summary.P1Wins+summary.P2Wins+summary.Draws)
	require.Equal(t, summary.P1Wins+summary.P2Wins, summary.FirstToMoveWins+summary.SecondToMoveWins)
	require.Zero(t, summary.P2Wins, "the engine should never lose to random moves")
	require.Equal(t, 3, summary.Workers)

	require.Equal(t, int32(10), counter.games.Load())
	require.Equal(t, int32(3), counter.workers.Load())
	require.GreaterOrEqual(t, counter.moves.Load(), int32(10*5))
	require.Equal(t, summary, counter.summary)
	require.Contains(t, buf.String(), "mcts vs random")

	// summary is reported as json
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	require.Contains(t, string(data), `"player1_name":"mcts"`)
}

func TestArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(ttt.NewPosition(), randomPlayer(1), randomPlayer(2)).Setup(4, 2)
	_, err := arena.Run(ctx)
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, arena.Total())
}

func TestComputeOutcome(t *testing.T) {
	pos, err := ttt.ParseNotation(ttt.Standard, "xxx/oo./... o")
	require.NoError(t, err)

	outcome := computeOutcome[ttt.Move](pos, 5)
	require.True(t, outcome.FirstPlayerWon)
	require.Equal(t, VersusPl1Win, toPlayerResult(outcome, true))
	require.Equal(t, VersusPl2Win, toPlayerResult(outcome, false))

	require.Panics(t, func() { computeOutcome[ttt.Move](ttt.NewPosition(), 0) })

	draw, err := ttt.ParseNotation(ttt.Standard, "xox/xoo/oxx")
	require.NoError(t, err)
	require.Equal(t, VersusDraw, toPlayerResult(computeOutcome[ttt.Move](draw, 9), true))
}
