package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/states"
	"github.com/mitchelldurbincs/CellWarfare/internal/testutil"
)

// openBoard has both home blocks and nothing else.
var openBoard = []string{
	"a1......",
	"11......",
	"........",
	"........",
	"........",
	"........",
	"......22",
	"......2b",
}

func newTestEngine(t testing.TB, fogOfWar bool, rows ...string) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), GameConfig{
		Rng:      testutil.NewTestRNG(1),
		Logger:   testutil.NopLogger(),
		MatchID:  "test-match",
		FogOfWar: fogOfWar,
		Board:    testutil.MustParseBoard(t, rows...),
	})
	require.NoError(t, err)
	return e
}

// moveTo walks the current player's cursor to target one step at a time.
func moveTo(t testing.TB, e *Engine, target core.Coordinate) {
	t.Helper()
	for i := 0; i < 4*e.board.Size; i++ {
		cur := e.players[e.current].Cursor
		if cur == target {
			return
		}
		dir := core.Down
		switch {
		case cur.X < target.X:
			dir = core.Right
		case cur.X > target.X:
			dir = core.Left
		case cur.Y > target.Y:
			dir = core.Up
		}
		_, err := e.MoveCursor(dir)
		require.NoError(t, err)
	}
	t.Fatalf("cursor never reached %v", target)
}

func availableCount(s Snapshot) int {
	n := 0
	for _, cv := range s.Cells {
		if cv.Available {
			n++
		}
	}
	return n
}

func TestNewEngine_PrebuiltBoard(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)

	assert.Equal(t, "test-match", e.MatchID())
	assert.Equal(t, 1, e.Turn())
	assert.Equal(t, core.OwnerPlayer1, e.CurrentPlayer())
	assert.Equal(t, states.PhaseAwaitingAction, e.Phase())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, core.OwnerNone, e.GetWinner())

	p1, ok := e.Player(core.OwnerPlayer1)
	require.True(t, ok)
	assert.Equal(t, core.NewCoordinate(0, 0), p1.King)
	assert.Equal(t, p1.King, p1.Cursor)

	p2, ok := e.Player(core.OwnerPlayer2)
	require.True(t, ok)
	assert.Equal(t, core.NewCoordinate(7, 7), p2.King)

	_, ok = e.Player(core.OwnerNone)
	assert.False(t, ok)

	snap := e.Snapshot()
	assert.Equal(t, 4, availableCount(snap))
	for _, c := range []core.Coordinate{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}} {
		cv, ok := snap.Cell(c)
		require.True(t, ok)
		assert.True(t, cv.Available, "cell %v should be available", c)
	}
}

func TestNewEngine_GeneratedBoard(t *testing.T) {
	e, err := NewEngine(context.Background(), GameConfig{
		Size:   20,
		Rng:    testutil.NewTestRNG(42),
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 16, e.Tier().Size)
	assert.Equal(t, 16, e.Snapshot().Size)
	assert.NotEmpty(t, e.MatchID())
	assert.Equal(t, abilities.DefaultConfig(), e.AbilityConfig())

	stats := e.Stats()
	assert.Equal(t, 25, stats.Players[0].CellsOwned)
	assert.Equal(t, 25, stats.Players[1].CellsOwned)

	p2, _ := e.Player(core.OwnerPlayer2)
	assert.Equal(t, core.NewCoordinate(15, 15), p2.King)
}

func TestNewEngine_SameSeedSameBoard(t *testing.T) {
	build := func() Snapshot {
		e, err := NewEngine(context.Background(), GameConfig{
			Size:    32,
			Rng:     testutil.NewTestRNG(99),
			Logger:  testutil.NopLogger(),
			MatchID: "seeded",
		})
		require.NoError(t, err)
		return e.Snapshot()
	}
	assert.Equal(t, build().Cells, build().Cells)
}

func TestNewEngine_Errors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		cfg     GameConfig
		wantErr error
	}{
		{
			name:    "cancelled context",
			ctx:     cancelled,
			cfg:     GameConfig{Size: 16},
			wantErr: context.Canceled,
		},
		{
			name:    "board without kings",
			ctx:     context.Background(),
			cfg:     GameConfig{Board: testutil.MustParseBoard(t, "...", "...", "...")},
			wantErr: core.ErrInvalidPlayer,
		},
		{
			name: "invalid tier table",
			ctx:  context.Background(),
			cfg:  GameConfig{Size: 16, Tiers: core.TierTable{{Size: 2}}},
		},
		{
			name: "invalid ability config",
			ctx:  context.Background(),
			cfg:  GameConfig{Size: 16, Abilities: abilities.Config{DiscountPercent: 150}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = testutil.NopLogger()
			e, err := NewEngine(tt.ctx, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, e)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewEngine_PublishesMatchStarted(t *testing.T) {
	bus := events.NewEventBus()
	var started []*events.MatchStartedEvent
	bus.SubscribeFunc(events.TypeMatchStarted, func(ev events.Event) {
		started = append(started, ev.(*events.MatchStartedEvent))
	})

	_, err := NewEngine(context.Background(), GameConfig{
		Logger:   testutil.NopLogger(),
		MatchID:  "m-1",
		FogOfWar: true,
		EventBus: bus,
		Board: testutil.MustParseBoard(t,
			"a..",
			".$.",
			"..b",
		),
	})
	require.NoError(t, err)

	require.Len(t, started, 1)
	assert.Equal(t, "m-1", started[0].MatchID())
	assert.Equal(t, 3, started[0].BoardSize)
	assert.Equal(t, 1, started[0].SabotageCells)
	assert.True(t, started[0].FogOfWar)
}

func TestEngine_CaptureNextToHomeBlock(t *testing.T) {
	bus := events.NewEventBus()
	var captured []*events.CellCapturedEvent
	bus.SubscribeFunc(events.TypeCellCaptured, func(ev events.Event) {
		captured = append(captured, ev.(*events.CellCapturedEvent))
	})

	e, err := NewEngine(context.Background(), GameConfig{
		Size:     16,
		Rng:      testutil.NewTestRNG(7),
		Logger:   testutil.NopLogger(),
		FogOfWar: true,
		EventBus: bus,
	})
	require.NoError(t, err)

	target := core.NewCoordinate(5, 0)
	moveTo(t, e, target)

	before, _ := e.Snapshot().Cell(target)
	require.True(t, before.Available)
	require.True(t, before.Visible)
	want := 1
	if before.Sabotage {
		want += before.SabotageValue
	}

	res, err := e.AttemptCapture()
	require.NoError(t, err)
	assert.True(t, res.TurnEnded)
	assert.Equal(t, want, res.Points)

	require.Len(t, captured, 1)
	assert.Equal(t, want, captured[0].Points)
	assert.Equal(t, target, captured[0].Location)

	p1, _ := e.Player(core.OwnerPlayer1)
	assert.Equal(t, want, p1.Score)

	after, _ := e.Snapshot().Cell(target)
	assert.Equal(t, core.OwnerPlayer1, after.Owner)
	assert.False(t, after.Available)
	assert.False(t, after.Sabotage)
	assert.Equal(t, core.OwnerPlayer2, e.CurrentPlayer())
	assert.Equal(t, 2, e.Turn())
}

func TestEngine_CaptureRejections(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		target  core.Coordinate
		wantErr error
	}{
		{
			name:    "own king",
			rows:    openBoard,
			target:  core.NewCoordinate(0, 0),
			wantErr: core.ErrNotCapturable,
		},
		{
			name:    "not adjacent",
			rows:    openBoard,
			target:  core.NewCoordinate(4, 4),
			wantErr: core.ErrNotCapturable,
		},
		{
			name: "fortified neighbor",
			rows: []string{
				"a1f.....",
				"11......",
				"........",
				"........",
				"........",
				"........",
				"......22",
				"......2b",
			},
			target:  core.NewCoordinate(2, 0),
			wantErr: core.ErrCellFortified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, false, tt.rows...)
			moveTo(t, e, tt.target)

			res, err := e.AttemptCapture()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var cmdErr *core.CommandError
			require.True(t, errors.As(err, &cmdErr))
			assert.Equal(t, 1, cmdErr.PlayerID)
			assert.False(t, res.TurnEnded)
			assert.Equal(t, core.OwnerPlayer1, e.CurrentPlayer())
			assert.Equal(t, 1, e.Turn())
		})
	}
}

func TestEngine_SingleCellEnclosure(t *testing.T) {
	e := newTestEngine(t, false,
		"a.......",
		"........",
		"..222...",
		"..2.2...",
		"..22....",
		"........",
		"........",
		".......b",
	)

	_, err := e.PassTurn()
	require.NoError(t, err)
	require.Equal(t, core.OwnerPlayer2, e.CurrentPlayer())

	moveTo(t, e, core.NewCoordinate(4, 4))
	res, err := e.AttemptCapture()
	require.NoError(t, err)

	// one point for the capture, two for the enclosed center
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, 2, res.CellsChanged)

	center, _ := e.Snapshot().Cell(core.NewCoordinate(3, 3))
	assert.Equal(t, core.OwnerPlayer2, center.Owner)

	p2, _ := e.Player(core.OwnerPlayer2)
	assert.Equal(t, 3, p2.Score)
	assert.Equal(t, 1, e.Stats().Players[1].CellsReclaimed)
}

func TestEngine_RegionEnclosure(t *testing.T) {
	bus := events.NewEventBus()
	var reclaimed []*events.RegionReclaimedEvent
	bus.SubscribeFunc(events.TypeRegionReclaimed, func(ev events.Event) {
		reclaimed = append(reclaimed, ev.(*events.RegionReclaimedEvent))
	})

	e, err := NewEngine(context.Background(), GameConfig{
		Logger:   testutil.NopLogger(),
		EventBus: bus,
		Board: testutil.MustParseBoard(t,
			"a.......",
			"........",
			"...1111.",
			"..1.$...",
			"...111..",
			"........",
			"........",
			".......b",
		),
	})
	require.NoError(t, err)

	moveTo(t, e, core.NewCoordinate(6, 3))
	res, err := e.AttemptCapture()
	require.NoError(t, err)

	// capture 1, three region cells 3, sabotage on the middle one 3
	sabotage := testutil.DefaultSabotageValue
	assert.Equal(t, 1+3+sabotage, res.Points)
	assert.Equal(t, 4, res.CellsChanged)

	snap := e.Snapshot()
	for x := 3; x <= 5; x++ {
		cv, _ := snap.Cell(core.NewCoordinate(x, 3))
		assert.Equal(t, core.OwnerPlayer1, cv.Owner, "cell (%d,3)", x)
		assert.False(t, cv.Sabotage)
	}

	require.Len(t, reclaimed, 1)
	assert.Equal(t, 1, reclaimed[0].Metadata.PlayerID)
	assert.Len(t, reclaimed[0].Cells, 3)
	assert.Equal(t, 3+sabotage, reclaimed[0].Points)

	stats := e.Stats().Players[0]
	assert.Equal(t, 3, stats.CellsReclaimed)
	assert.Equal(t, sabotage, stats.SabotageCollected)
	assert.Equal(t, 1, stats.Captures)
}

func TestEngine_FortifyOpponentCellLeavesBoardUntouched(t *testing.T) {
	bus := events.NewEventBus()
	var rejected []*events.CommandRejectedEvent
	bus.SubscribeFunc(events.TypeCommandRejected, func(ev events.Event) {
		rejected = append(rejected, ev.(*events.CommandRejectedEvent))
	})

	e, err := NewEngine(context.Background(), GameConfig{
		Logger:   testutil.NopLogger(),
		EventBus: bus,
		Board:    testutil.MustParseBoard(t, openBoard...),
	})
	require.NoError(t, err)
	e.players[0].Score = 20

	moveTo(t, e, core.NewCoordinate(6, 6))
	rowsBefore := testutil.OwnershipRows(e.board)
	before := e.Snapshot()

	_, err = e.InvokeAbility(int(abilities.Fortification), core.Right)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotOwned)
	assert.Contains(t, err.Error(), "not your cell")

	assert.Equal(t, rowsBefore, testutil.OwnershipRows(e.board))
	after := e.Snapshot()
	assert.Contains(t, after.LastRejection, "not your cell")
	after.LastRejection = before.LastRejection
	assert.Equal(t, before, after)

	p1, _ := e.Player(core.OwnerPlayer1)
	assert.Equal(t, 0, p1.Spent)
	assert.False(t, p1.AbilityUsedThisTurn)

	require.Len(t, rejected, 1)
	assert.Equal(t, "ability", rejected[0].Command)
	assert.Equal(t, "not your cell", rejected[0].Reason)
}

func TestEngine_RejectedCommandLeavesSnapshotUnchanged(t *testing.T) {
	e := newTestEngine(t, true, openBoard...)
	before := e.Snapshot()

	cases := []func() (Result, error){
		e.AttemptCapture,
		func() (Result, error) { return e.MoveCursor(core.NoDirection) },
		func() (Result, error) { return e.InvokeAbility(int(abilities.Artillery), core.NoDirection) },
		func() (Result, error) { return e.InvokeAbility(99, core.NoDirection) },
		func() (Result, error) { return e.InvokeAbility(int(abilities.AssaultLine), core.NoDirection) },
	}
	for i, run := range cases {
		_, err := run()
		require.Error(t, err, "case %d", i)

		after := e.Snapshot()
		assert.NotEmpty(t, after.LastRejection)
		after.LastRejection = before.LastRejection
		assert.Equal(t, before, after, "case %d", i)
	}
}

func TestEngine_AcceptedCommandClearsRejection(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)

	_, err := e.AttemptCapture()
	require.Error(t, err)
	require.NotEmpty(t, e.Snapshot().LastRejection)

	_, err = e.MoveCursor(core.Right)
	require.NoError(t, err)
	assert.Empty(t, e.Snapshot().LastRejection)
}

func TestEngine_MoveCursor(t *testing.T) {
	bus := events.NewEventBus()
	var moves []*events.CursorMovedEvent
	bus.SubscribeFunc(events.TypeCursorMoved, func(ev events.Event) {
		moves = append(moves, ev.(*events.CursorMovedEvent))
	})
	e, err := NewEngine(context.Background(), GameConfig{
		Logger:   testutil.NopLogger(),
		EventBus: bus,
		Board:    testutil.MustParseBoard(t, openBoard...),
	})
	require.NoError(t, err)

	res, err := e.MoveCursor(core.Down)
	require.NoError(t, err)
	assert.False(t, res.TurnEnded)
	assert.Equal(t, core.CommandMoveCursor, res.Command)

	// stays put at the edge
	_, err = e.MoveCursor(core.Left)
	require.NoError(t, err)

	p1, _ := e.Player(core.OwnerPlayer1)
	assert.Equal(t, core.NewCoordinate(0, 1), p1.Cursor)
	assert.Equal(t, 1, e.Turn())

	require.Len(t, moves, 2)
	assert.Equal(t, core.NewCoordinate(0, 0), moves[0].From)
	assert.Equal(t, core.NewCoordinate(0, 1), moves[0].To)
	assert.Equal(t, moves[1].From, moves[1].To)

	_, err = e.MoveCursor(core.Direction(9))
	assert.ErrorIs(t, err, core.ErrInvalidDirection)
}

func TestEngine_PassAlternatesPlayers(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)

	for turn := 1; turn <= 4; turn++ {
		require.Equal(t, turn, e.Turn())
		want := core.OwnerPlayer1
		if turn%2 == 0 {
			want = core.OwnerPlayer2
		}
		require.Equal(t, want, e.CurrentPlayer())

		res, err := e.PassTurn()
		require.NoError(t, err)
		assert.True(t, res.TurnEnded)
		assert.Equal(t, want, res.PlayerID)
	}

	// cursors are kept per player
	p2, _ := e.Player(core.OwnerPlayer2)
	assert.Equal(t, p2.King, p2.Cursor)
}

func TestEngine_Execute(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)

	_, err := e.Execute(core.Command{PlayerID: 2, Type: core.CommandPass})
	assert.ErrorIs(t, err, core.ErrNotYourTurn)
	assert.Equal(t, core.OwnerPlayer1, e.CurrentPlayer())

	_, err = e.Execute(core.Command{PlayerID: 1, Type: core.CommandType(42)})
	assert.ErrorIs(t, err, core.ErrUnknownCommand)

	for i := 0; i < 2; i++ {
		res, err := e.Execute(core.Command{PlayerID: 1, Type: core.CommandMoveCursor, Direction: core.Right})
		require.NoError(t, err)
		assert.Equal(t, core.CommandMoveCursor, res.Command)
	}

	res, err := e.Execute(core.Command{PlayerID: 1, Type: core.CommandCapture})
	require.NoError(t, err)
	assert.True(t, res.TurnEnded)

	res, err = e.Execute(core.Command{PlayerID: 2, Type: core.CommandPass})
	require.NoError(t, err)
	assert.True(t, res.TurnEnded)
	assert.Equal(t, 3, e.Turn())
}

func TestEngine_CaptureAfterAbilityFails(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)
	e.players[0].Score = 30

	moveTo(t, e, core.NewCoordinate(2, 0))
	res, err := e.InvokeAbility(int(abilities.Scouting), core.NoDirection)
	require.NoError(t, err)
	assert.False(t, res.TurnEnded)
	assert.Equal(t, core.OwnerPlayer1, e.CurrentPlayer())

	_, err = e.AttemptCapture()
	assert.ErrorIs(t, err, core.ErrAbilityAlreadyUsed)

	_, err = e.InvokeAbility(int(abilities.Fortification), core.Right)
	assert.ErrorIs(t, err, core.ErrAbilityAlreadyUsed)

	// the flag resets on the next own turn
	_, err = e.PassTurn()
	require.NoError(t, err)
	_, err = e.PassTurn()
	require.NoError(t, err)

	res, err = e.AttemptCapture()
	require.NoError(t, err)
	assert.True(t, res.TurnEnded)
}

func TestEngine_CommanderDiscount(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)
	e.players[0].Score = 100

	res, err := e.InvokeAbility(int(abilities.Commander), core.NoDirection)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CellsChanged)

	p1, _ := e.Player(core.OwnerPlayer1)
	assert.True(t, p1.CommanderActive)
	assert.Equal(t, 50, p1.Spent)
	assert.Equal(t, 50, p1.Balance())

	_, err = e.PassTurn()
	require.NoError(t, err)
	_, err = e.PassTurn()
	require.NoError(t, err)

	_, err = e.InvokeAbility(int(abilities.Commander), core.NoDirection)
	assert.ErrorIs(t, err, core.ErrCommanderActive)

	catalog := e.Catalog()
	require.Len(t, catalog, abilities.NumKinds)
	assert.Equal(t, 11, catalog[abilities.Paratrooper].EffectiveCost)
	assert.Equal(t, 18, catalog[abilities.Paratrooper].BaseCost)
	assert.False(t, catalog[abilities.Commander].Usable)
	assert.Equal(t, 1, catalog[abilities.Commander].Uses)
}

func TestEngine_AssaultLineTakesKing(t *testing.T) {
	bus := events.NewEventBus()
	var ended []*events.GameEndedEvent
	bus.SubscribeFunc(events.TypeGameEnded, func(ev events.Event) {
		ended = append(ended, ev.(*events.GameEndedEvent))
	})

	e, err := NewEngine(context.Background(), GameConfig{
		Logger:   testutil.NopLogger(),
		EventBus: bus,
		Board: testutil.MustParseBoard(t,
			"a.......",
			"........",
			"........",
			"........",
			"........",
			"........",
			"......22",
			"....1..b",
		),
	})
	require.NoError(t, err)
	e.players[0].Score = 10

	moveTo(t, e, core.NewCoordinate(5, 7))
	res, err := e.InvokeAbility(int(abilities.AssaultLine), core.Right)
	require.NoError(t, err)
	assert.True(t, res.MatchEnded)
	assert.Equal(t, 3, res.CellsChanged)

	assert.True(t, e.IsGameOver())
	assert.Equal(t, core.OwnerPlayer1, e.GetWinner())
	assert.Equal(t, states.PhaseMatchOver, e.Phase())

	require.Len(t, ended, 1)
	assert.Equal(t, 1, ended[0].Winner)

	// the king keeps its location
	king, ok := e.board.KingOf(core.OwnerPlayer2)
	require.True(t, ok)
	assert.Equal(t, core.NewCoordinate(7, 7), king)

	_, err = e.PassTurn()
	assert.ErrorIs(t, err, core.ErrGameOver)
	_, err = e.MoveCursor(core.Up)
	assert.ErrorIs(t, err, core.ErrGameOver)

	snap := e.Snapshot()
	assert.True(t, snap.GameOver)
	assert.Equal(t, core.OwnerPlayer1, snap.Winner)
}

func TestEngine_FogOfWar(t *testing.T) {
	e := newTestEngine(t, true, openBoard...)
	e.players[0].Score = 20

	snap := e.Snapshot()
	assert.True(t, snap.FogOfWar)

	visible := 0
	for _, cv := range snap.Cells {
		if cv.Visible {
			visible++
		}
	}
	// radius 3 around the 2x2 home block
	assert.Equal(t, 25, visible)

	far, _ := snap.Cell(core.NewCoordinate(5, 7))
	assert.False(t, far.Visible)
	assert.False(t, far.Explored)

	moveTo(t, e, core.NewCoordinate(6, 5))
	_, err := e.InvokeAbility(int(abilities.Scouting), core.NoDirection)
	require.NoError(t, err)

	far, _ = e.Snapshot().Cell(core.NewCoordinate(5, 7))
	assert.True(t, far.Visible)
	assert.True(t, far.Explored)

	enemyKing, _ := e.Snapshot().Cell(core.NewCoordinate(7, 7))
	assert.True(t, enemyKing.Visible)

	moveTo(t, e, core.NewCoordinate(1, 1))
	far, _ = e.Snapshot().Cell(core.NewCoordinate(5, 7))
	assert.True(t, far.Visible, "scouting reveal lasts for the turn")

	_, err = e.PassTurn()
	require.NoError(t, err)
	_, err = e.PassTurn()
	require.NoError(t, err)

	snap = e.Snapshot()
	far, _ = snap.Cell(core.NewCoordinate(5, 7))
	assert.False(t, far.Visible)
	assert.True(t, far.Explored)

	// explored kings stay in sight
	enemyKing, _ = snap.Cell(core.NewCoordinate(7, 7))
	assert.True(t, enemyKing.Visible)
}

func TestEngine_FogHidesUnseenTargets(t *testing.T) {
	blind := core.TierTable{{Size: 8, VisibilityRadius: 0, ScoutingRadius: 1, InitialTerritory: 2, SabotageDivisor: 10}}

	for _, fog := range []bool{false, true} {
		e, err := NewEngine(context.Background(), GameConfig{
			Logger:   testutil.NopLogger(),
			FogOfWar: fog,
			Tiers:    blind,
			Board:    testutil.MustParseBoard(t, openBoard...),
		})
		require.NoError(t, err)

		if !fog {
			assert.Equal(t, 4, availableCount(e.Snapshot()))
			continue
		}

		// with radius 0 only owned cells are in sight
		assert.Equal(t, 0, availableCount(e.Snapshot()))

		// the cursor cell is always visible
		moveTo(t, e, core.NewCoordinate(2, 0))
		snap := e.Snapshot()
		assert.Equal(t, 1, availableCount(snap))
		cv, _ := snap.Cell(core.NewCoordinate(2, 0))
		assert.True(t, cv.Available)
	}
}

func TestEngine_PlayerPropertiesOverRandomPlay(t *testing.T) {
	e, err := NewEngine(context.Background(), GameConfig{
		Size:     16,
		Rng:      testutil.NewTestRNG(3),
		Logger:   testutil.NopLogger(),
		FogOfWar: true,
	})
	require.NoError(t, err)

	kings := [core.NumPlayers]core.Coordinate{e.players[0].King, e.players[1].King}
	rng := testutil.NewTestRNG(11)
	dirs := []core.Direction{core.Up, core.Right, core.Down, core.Left}
	var lastScore [core.NumPlayers]int

	for step := 0; step < 3000 && !e.IsGameOver(); step++ {
		switch r := rng.Intn(10); {
		case r < 6:
			_, _ = e.MoveCursor(dirs[rng.Intn(len(dirs))])
		case r < 8:
			_, _ = e.AttemptCapture()
		case r < 9:
			_, _ = e.InvokeAbility(rng.Intn(abilities.NumKinds), dirs[rng.Intn(len(dirs))])
		default:
			_, _ = e.PassTurn()
		}

		for pid := range e.players {
			p := &e.players[pid]
			require.Equal(t, kings[pid], p.King)
			require.GreaterOrEqual(t, p.Score, lastScore[pid], "score never decreases")
			require.GreaterOrEqual(t, p.Balance(), 0)
			lastScore[pid] = p.Score

			king, ok := e.board.KingOf(p.ID)
			require.True(t, ok)
			require.Equal(t, kings[pid], king)
			if !e.IsGameOver() {
				require.Equal(t, p.ID, e.board.Cell(king).Owner)
			}
		}
		for i := range e.board.T {
			cell := &e.board.T[i]
			if cell.Available {
				require.NotEqual(t, e.CurrentPlayer(), cell.Owner)
				require.False(t, cell.IsKing())
				require.False(t, cell.Fortified)
			}
		}
	}
}

func TestEngine_TransitionHistory(t *testing.T) {
	e := newTestEngine(t, false, openBoard...)
	_, err := e.PassTurn()
	require.NoError(t, err)

	var phases []states.GamePhase
	for _, tr := range e.TransitionHistory() {
		phases = append(phases, tr.To)
	}
	assert.Equal(t, []states.GamePhase{
		states.PhaseTurnStart,
		states.PhaseAwaitingAction,
		states.PhaseTurnEnd,
		states.PhaseTurnStart,
		states.PhaseAwaitingAction,
	}, phases)
}

func BenchmarkEngine_Recompute(b *testing.B) {
	e, err := NewEngine(context.Background(), GameConfig{
		Size:     64,
		Rng:      testutil.NewTestRNG(1),
		Logger:   testutil.NopLogger(),
		FogOfWar: true,
	})
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.recompute()
	}
}

func BenchmarkEngine_Snapshot(b *testing.B) {
	e, err := NewEngine(context.Background(), GameConfig{
		Size:   32,
		Rng:    testutil.NewTestRNG(1),
		Logger: testutil.NopLogger(),
	})
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Snapshot()
	}
}
