// keytracker.go - edge detection for toggle keys on Ebiten v2.8.8
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers the previous pressed state of every key it has
// been asked about.
type KeyStateTracker struct {
	prevPressed map[ebiten.Key]bool
}

// New returns an empty tracker.
func New() *KeyStateTracker {
	return &KeyStateTracker{prevPressed: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Observe(key, ebiten.IsKeyPressed(key))
}

// Observe records the current state of key and reports a rising edge.
func (k *KeyStateTracker) Observe(key ebiten.Key, pressed bool) bool {
	justPressed := pressed && !k.prevPressed[key]
	k.prevPressed[key] = pressed
	return justPressed
}
