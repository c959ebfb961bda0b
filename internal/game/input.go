package game

import (
	"yaraycaster/internal/game/keytracker"
	"yaraycaster/internal/player"

	"github.com/hajimehoshi/ebiten/v2"
)

// movementKeys maps held keys to movement commands. Arrows and WASD both work.
var movementKeys = []struct {
	key ebiten.Key
	cmd player.Command
}{
	{ebiten.KeyW, player.Forward},
	{ebiten.KeyUp, player.Forward},
	{ebiten.KeyS, player.Backward},
	{ebiten.KeyDown, player.Backward},
	{ebiten.KeyA, player.TurnLeft},
	{ebiten.KeyLeft, player.TurnLeft},
	{ebiten.KeyD, player.TurnRight},
	{ebiten.KeyRight, player.TurnRight},
}

// Input is what the player asked for during one tick.
type Input struct {
	Commands  player.CommandSet
	ToggleMap bool
	ToggleFPS bool
	Floor     bool
	Quit      bool
}

// InputHandler turns keyboard state into an Input each tick.
type InputHandler struct {
	keys    *keytracker.KeyStateTracker
	pressed func(ebiten.Key) bool
}

// NewInputHandler reads the live ebiten keyboard.
func NewInputHandler() *InputHandler {
	return newInputHandler(ebiten.IsKeyPressed)
}

func newInputHandler(pressed func(ebiten.Key) bool) *InputHandler {
	return &InputHandler{keys: keytracker.New(), pressed: pressed}
}

// HandleInput samples the keyboard. Movement keys count while held; fire and
// the toggles only on the frame they go down.
func (ih *InputHandler) HandleInput() Input {
	var in Input
	for _, mk := range movementKeys {
		if ih.pressed(mk.key) {
			in.Commands = in.Commands.With(mk.cmd)
		}
	}
	if ih.edge(ebiten.KeySpace) {
		in.Commands = in.Commands.With(player.Fire)
	}
	tab, m := ih.edge(ebiten.KeyTab), ih.edge(ebiten.KeyM)
	in.ToggleMap = tab || m
	in.ToggleFPS = ih.edge(ebiten.KeyF3)
	in.Floor = ih.edge(ebiten.KeyF)
	in.Quit = ih.pressed(ebiten.KeyEscape)
	return in
}

func (ih *InputHandler) edge(key ebiten.Key) bool {
	return ih.keys.Observe(key, ih.pressed(key))
}
