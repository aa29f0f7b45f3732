package sim

// Command is what a tap turns into.
type Command int

const (
	CommandJump Command = iota
	CommandRestart
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandJump:
		return "jump"
	case CommandRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Route maps a tap to a command for the current mode.
func Route(m Mode) Command {
	if m == ModeGameOver {
		return CommandRestart
	}
	return CommandJump
}
