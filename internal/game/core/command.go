package core

// CommandType enumerates the command surface exposed to the input layer.
type CommandType int

const (
	CommandMoveCursor CommandType = iota
	CommandCapture
	CommandAbility
	CommandPass
)

func (c CommandType) String() string {
	switch c {
	case CommandMoveCursor:
		return "move cursor"
	case CommandCapture:
		return "capture"
	case CommandAbility:
		return "ability"
	case CommandPass:
		return "pass"
	default:
		return "unknown command"
	}
}

// Command is a single player request. Only the fields relevant to Type are read.
type Command struct {
	PlayerID  int // 1 or 2
	Type      CommandType
	Direction Direction
	Ability   int // ability index for CommandAbility
}
