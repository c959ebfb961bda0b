package player

// Command is one discrete input for a tick.
type Command uint8

const (
	Forward Command = iota
	Backward
	TurnLeft
	TurnRight
	Fire
)

var commandNames = [...]string{"forward", "backward", "turn_left", "turn_right", "fire"}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// CommandSet is the set of commands active during a tick.
type CommandSet uint8

// NewCommandSet builds a set from individual commands.
func NewCommandSet(cmds ...Command) CommandSet {
	var s CommandSet
	for _, c := range cmds {
		s = s.With(c)
	}
	return s
}

// With returns the set with c added.
func (s CommandSet) With(c Command) CommandSet {
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s CommandSet) Has(c Command) bool {
	return s&(1<<c) != 0
}

// Empty reports whether no command is active.
func (s CommandSet) Empty() bool {
	return s == 0
}
