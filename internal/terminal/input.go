package terminal

import (
	"unicode/utf8"

	"yaraycaster/internal/player"
)

// ParseInput converts raw terminal bytes into commands. It handles WASD,
// arrow key escape sequences, space to fire, and q or Ctrl-C to quit.
func ParseInput(data []byte) (cmds player.CommandSet, quit bool) {
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				cmds = cmds.With(player.Forward)
			case 'B':
				cmds = cmds.With(player.Backward)
			case 'C':
				cmds = cmds.With(player.TurnRight)
			case 'D':
				cmds = cmds.With(player.TurnLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if c, ok := runeCommand(r); ok {
			cmds = cmds.With(c)
		}
		switch r {
		case 'q', 'Q', 3: // 3 is Ctrl-C
			quit = true
		}
		i += size
	}
	return cmds, quit
}

func runeCommand(r rune) (player.Command, bool) {
	switch r {
	case 'w', 'W':
		return player.Forward, true
	case 's', 'S':
		return player.Backward, true
	case 'a', 'A':
		return player.TurnLeft, true
	case 'd', 'D':
		return player.TurnRight, true
	case ' ':
		return player.Fire, true
	}
	return 0, false
}
