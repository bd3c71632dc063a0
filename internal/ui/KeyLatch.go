package ui

import "github.com/Mshel/sshnake/internal/game"

// KeyLatch remembers the latest movement key until the round polls it.
type KeyLatch struct {
	pending game.Direction
	pressed bool
}

func (kl *KeyLatch) Press(dir game.Direction) {
	kl.pending = dir
	kl.pressed = true
}

func (kl *KeyLatch) PollDirection() (game.Direction, bool) {
	if !kl.pressed {
		return game.Up, false
	}
	kl.pressed = false
	return kl.pending, true
}
