package core

// Player is one side of the match.
type Player struct {
	ID                  Owner
	Score               int // cumulative points earned; never decreases
	Spent               int // cumulative points paid for abilities
	King                Coordinate
	Cursor              Coordinate
	CommanderActive     bool
	AbilityUsedThisTurn bool
}

// NewPlayer creates a player whose cursor starts on its king cell.
func NewPlayer(id Owner, king Coordinate) Player {
	return Player{ID: id, King: king, Cursor: king}
}

// Index returns the player's slot (0 or 1).
func (p *Player) Index() int { return p.ID.PlayerIndex() }

// Balance is what the player can still spend.
func (p *Player) Balance() int { return p.Score - p.Spent }

// Award adds points. Negative awards are ignored so Score never decreases.
func (p *Player) Award(points int) {
	if points > 0 {
		p.Score += points
	}
}

// Spend charges cost against the balance.
func (p *Player) Spend(cost int) error {
	if cost < 0 {
		cost = 0
	}
	if p.Balance() < cost {
		return ErrInsufficientScore
	}
	p.Spent += cost
	return nil
}

// Opponent returns the other player's index in a two-player match.
func Opponent(playerIdx int) int { return 1 - playerIdx }
