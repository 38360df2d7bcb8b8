package events

import (
	"time"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Event type constants
const (
	TypeAll             = "*"
	TypeMatchStarted    = "match.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeCursorMoved     = "cursor.moved"
	TypeCellCaptured    = "cell.captured"
	TypeAbilityUsed     = "ability.used"
	TypeRegionReclaimed = "region.reclaimed"
	TypeCommandRejected = "command.rejected"
	TypeStateTransition = "state.transition"
)

func newBase(eventType, matchID string, meta EventMetadata) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Match:     matchID,
		Metadata:  meta,
	}
}

// MatchStartedEvent is published when a new match begins
type MatchStartedEvent struct {
	BaseEvent
	BoardSize     int
	SabotageCells int
	FogOfWar      bool
	InitialPlayer int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, boardSize, sabotageCells int, fogOfWar bool) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:     newBase(TypeMatchStarted, matchID, EventMetadata{}),
		BoardSize:     boardSize,
		SabotageCells: sabotageCells,
		FogOfWar:      fogOfWar,
		InitialPlayer: 1,
	}
}

// GameEndedEvent is published when a king is captured
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	Duration  time.Duration
	FinalTurn int
	Scores    [core.NumPlayers]int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(matchID string, winner int, duration time.Duration, finalTurn int, scores [core.NumPlayers]int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, matchID, EventMetadata{PlayerID: winner, Turn: finalTurn}),
		Winner:    winner,
		Duration:  duration,
		FinalTurn: finalTurn,
		Scores:    scores,
	}
}

// TurnStartedEvent is published at the beginning of each turn
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber     int
	AvailableCells int
	VisibleCells   int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(matchID string, turn, playerID, available, visible int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:      newBase(TypeTurnStarted, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		TurnNumber:     turn,
		AvailableCells: available,
		VisibleCells:   visible,
	}
}

// TurnEndedEvent is published at the end of each turn
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber int
	Reason     string // "capture" or "pass"
	Duration   time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(matchID string, turn, playerID int, reason string, duration time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:  newBase(TypeTurnEnded, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		TurnNumber: turn,
		Reason:     reason,
		Duration:   duration,
	}
}

// CursorMovedEvent is published when a player moves the cursor
type CursorMovedEvent struct {
	BaseEvent
	Direction core.Direction
	From      core.Coordinate
	To        core.Coordinate
}

// NewCursorMovedEvent creates a new CursorMovedEvent
func NewCursorMovedEvent(matchID string, playerID, turn int, dir core.Direction, from, to core.Coordinate) *CursorMovedEvent {
	return &CursorMovedEvent{
		BaseEvent: newBase(TypeCursorMoved, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		Direction: dir,
		From:      from,
		To:        to,
	}
}

// CellCapturedEvent is published after an ordinary capture
type CellCapturedEvent struct {
	BaseEvent
	Location      core.Coordinate
	PreviousOwner int
	Points        int
	SabotageBonus int
	KingCaptured  bool
}

// NewCellCapturedEvent creates a new CellCapturedEvent
func NewCellCapturedEvent(matchID string, playerID, turn int, location core.Coordinate, previousOwner, points, sabotage int, king bool) *CellCapturedEvent {
	return &CellCapturedEvent{
		BaseEvent:     newBase(TypeCellCaptured, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		Location:      location,
		PreviousOwner: previousOwner,
		Points:        points,
		SabotageBonus: sabotage,
		KingCaptured:  king,
	}
}

// AbilityUsedEvent is published after a successful ability
type AbilityUsedEvent struct {
	BaseEvent
	Ability                 string
	Target                  core.Coordinate
	Direction               core.Direction
	Cost                    int
	CellsChanged            int
	FortificationsDestroyed int
	SabotageBonus           int
}

// NewAbilityUsedEvent creates a new AbilityUsedEvent
func NewAbilityUsedEvent(matchID string, playerID, turn int, ability string, target core.Coordinate, dir core.Direction, cost, changed, fortsDestroyed, sabotage int) *AbilityUsedEvent {
	return &AbilityUsedEvent{
		BaseEvent:               newBase(TypeAbilityUsed, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		Ability:                 ability,
		Target:                  target,
		Direction:               dir,
		Cost:                    cost,
		CellsChanged:            changed,
		FortificationsDestroyed: fortsDestroyed,
		SabotageBonus:           sabotage,
	}
}

// RegionReclaimedEvent is published when enclosure reclamation transfers cells to a player
type RegionReclaimedEvent struct {
	BaseEvent
	Cells  []core.Coordinate
	Points int
}

// NewRegionReclaimedEvent creates a new RegionReclaimedEvent
func NewRegionReclaimedEvent(matchID string, playerID, turn int, cells []core.Coordinate, points int) *RegionReclaimedEvent {
	return &RegionReclaimedEvent{
		BaseEvent: newBase(TypeRegionReclaimed, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		Cells:     cells,
		Points:    points,
	}
}

// CommandRejectedEvent is published when a command fails validation
type CommandRejectedEvent struct {
	BaseEvent
	Command string
	Reason  string
}

// NewCommandRejectedEvent creates a new CommandRejectedEvent
func NewCommandRejectedEvent(matchID string, playerID, turn int, command string, err error) *CommandRejectedEvent {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return &CommandRejectedEvent{
		BaseEvent: newBase(TypeCommandRejected, matchID, EventMetadata{PlayerID: playerID, Turn: turn}),
		Command:   command,
		Reason:    reason,
	}
}

// StateTransitionEvent is published when the match state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, matchID, EventMetadata{}),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
