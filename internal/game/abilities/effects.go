package abilities

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/rules"
)

// Request is a single ability invocation.
type Request struct {
	Kind      Kind
	Board     *core.Board
	Caster    *core.Player
	Target    core.Coordinate
	Direction core.Direction

	// ScoutingRadius comes from the board tier.
	ScoutingRadius int
}

// Effect describes what an ability did to the board.
type Effect struct {
	Kind                    Kind
	Cost                    int
	Changed                 []core.Coordinate // cells whose owner changed
	SabotageBonus           int
	SabotageCleared         int
	FortificationsDestroyed int
	Fortified               []core.Coordinate
	Revealed                []core.Coordinate
	KingCaptured            bool
}

// Invoke validates the request, applies the effect, charges the caster and
// marks the ability used for this turn. On error nothing has changed.
func Invoke(cfg Config, req Request) (Effect, error) {
	if err := cfg.CanUse(req.Kind, req.Caster); err != nil {
		return Effect{}, err
	}
	cost := cfg.CostFor(req.Kind, req.Caster)

	effect, err := Apply(cfg, req)
	if err != nil {
		return Effect{}, err
	}

	if err := req.Caster.Spend(cost); err != nil {
		// Balance was checked above and effects only add points.
		return Effect{}, err
	}
	req.Caster.AbilityUsedThisTurn = true
	effect.Cost = cost
	return effect, nil
}

// Apply runs the board effect of req.Kind. It validates every precondition
// before mutating anything. It neither charges nor marks the ability used.
func Apply(cfg Config, req Request) (Effect, error) {
	if req.Board == nil || req.Caster == nil {
		return Effect{}, core.ErrInvalidPlayer
	}
	if !req.Kind.IsValid() {
		return Effect{}, core.ErrUnknownAbility
	}
	if !req.Board.Contains(req.Target) {
		return Effect{}, core.ErrInvalidCoordinates
	}
	if req.Kind.NeedsDirection() && !req.Direction.IsValid() {
		return Effect{}, core.ErrDirectionRequired
	}

	switch req.Kind {
	case Paratrooper:
		return paratrooper(cfg, req)
	case ClusterBomb:
		return clusterBomb(cfg, req), nil
	case AssaultLine:
		return assaultLine(cfg, req)
	case Commander:
		return commander(req)
	case Artillery:
		return artillery(cfg, req), nil
	case Fortification:
		return fortification(cfg, req)
	case Scouting:
		return scouting(req), nil
	}
	return Effect{}, core.ErrUnknownAbility
}

func paratrooper(cfg Config, req Request) (Effect, error) {
	b, caster := req.Board, req.Caster
	if king, ok := b.KingOf(caster.ID.Opponent()); ok && req.Target.ChebyshevTo(king) < cfg.ParatrooperMinKingDistance {
		return Effect{}, core.ErrTooCloseToKing
	}
	cell := b.Cell(req.Target)
	if cell.Fortified {
		return Effect{}, core.ErrCellFortified
	}
	if cell.Owner == caster.ID {
		return Effect{}, core.ErrAlreadyOwned
	}

	e := Effect{Kind: Paratrooper, Changed: []core.Coordinate{req.Target}}
	e.SabotageBonus = rules.Claim(b, caster, req.Target)
	return e, nil
}

func clusterBomb(cfg Config, req Request) Effect {
	e := Effect{Kind: ClusterBomb}
	for _, c := range req.Target.Square(cfg.ClusterBombRadius, req.Board.Size) {
		cell := req.Board.Cell(c)
		if cell.IsKing() || cell.Fortified {
			continue
		}
		if req.Board.TakeSabotage(c) > 0 {
			e.SabotageCleared++
		}
		if cell.Owner != core.OwnerNone {
			cell.Owner = core.OwnerNone
			e.Changed = append(e.Changed, c)
		}
	}
	return e
}

func assaultLine(cfg Config, req Request) (Effect, error) {
	b, caster := req.Board, req.Caster

	var claim []core.Coordinate
	for _, c := range req.Target.Line(req.Direction, cfg.AssaultLineLength) {
		cell := b.Cell(c)
		if cell == nil || cell.Fortified || cell.Owner == caster.ID {
			continue
		}
		claim = append(claim, c)
	}
	if len(claim) == 0 {
		return Effect{}, core.ErrNothingToClaim
	}

	e := Effect{Kind: AssaultLine, Changed: claim}
	enemyKing, hasEnemyKing := b.KingOf(caster.ID.Opponent())
	for _, c := range claim {
		e.SabotageBonus += rules.Claim(b, caster, c)
		if hasEnemyKing && c == enemyKing {
			e.KingCaptured = true
		}
	}
	return e, nil
}

func commander(req Request) (Effect, error) {
	if req.Caster.CommanderActive {
		return Effect{}, core.ErrCommanderActive
	}
	req.Caster.CommanderActive = true
	return Effect{Kind: Commander}, nil
}

func artillery(cfg Config, req Request) Effect {
	e := Effect{Kind: Artillery}
	for _, c := range req.Target.Square(cfg.ArtilleryRadius, req.Board.Size) {
		cell := req.Board.Cell(c)
		if cell.IsKing() {
			continue
		}
		if req.Board.TakeSabotage(c) > 0 {
			e.SabotageCleared++
		}
		if cell.Fortified {
			cell.Fortified = false
			e.FortificationsDestroyed++
		}
		if cell.Owner != core.OwnerNone {
			cell.Owner = core.OwnerNone
			e.Changed = append(e.Changed, c)
		}
	}
	return e
}

func fortification(cfg Config, req Request) (Effect, error) {
	b, caster := req.Board, req.Caster
	line := req.Target.Line(req.Direction, cfg.FortificationLength)

	for _, c := range line {
		cell := b.Cell(c)
		switch {
		case cell == nil:
			return Effect{}, core.ErrInvalidCoordinates
		case cell.IsKing():
			return Effect{}, core.ErrKingCell
		case cell.Owner != caster.ID:
			return Effect{}, core.ErrNotOwned
		case cell.Fortified:
			return Effect{}, core.ErrAlreadyFortified
		}
	}

	e := Effect{Kind: Fortification, Fortified: line}
	for _, c := range line {
		if b.TakeSabotage(c) > 0 {
			e.SabotageCleared++
		}
		if err := b.SetFortified(c, true); err != nil {
			return e, err
		}
	}
	return e, nil
}

func scouting(req Request) Effect {
	return Effect{
		Kind:     Scouting,
		Revealed: rules.Reveal(req.Board, req.Caster, req.Target, req.ScoutingRadius),
	}
}
